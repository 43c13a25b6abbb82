package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/certsys/certdb/internal/app/models"
)

// CertificateFilter narrows certificate exports; empty fields match everything.
type CertificateFilter struct {
	AwardCategory string
	AwardLevel    string
	SubmitterRole string
}

// CertificateRecord is a certificate joined with its submitter for export.
type CertificateRecord struct {
	models.Certificate
	SubmitterAccountID string
	SubmitterName      string
	SubmitterRole      models.Role
}

// ICertificateRepository defines the interface for certificate_info operations
type ICertificateRepository interface {
	ListForExport(ctx context.Context, filter CertificateFilter) ([]*CertificateRecord, error)
	Count(ctx context.Context) (int64, error)
	CountSubmitted(ctx context.Context) (int64, error)
}

// CertificateRepository handles database operations for the certificate_info table
type CertificateRepository struct {
	db *pgxpool.Pool
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// ListForExport retrieves certificates joined with their submitting user,
// applying the optional filters.
func (r *CertificateRepository) ListForExport(ctx context.Context, filter CertificateFilter) ([]*CertificateRecord, error) {
	query := `
		SELECT c.cert_id, c.user_id, c.file_id, c.student_college, c.competition_project,
		       c.student_id, c.student_name, c.award_category, c.award_level,
		       c.competition_type, c.organizer, c.award_time, c.tutor_name,
		       c.is_submitted, c.submit_time, c.created_at, c.updated_at,
		       u.account_id, u.name, u.role
		FROM certificate_info c
		JOIN users u ON u.user_id = c.user_id
		WHERE 1=1`
	args := []interface{}{}

	if filter.AwardCategory != "" {
		args = append(args, filter.AwardCategory)
		query += fmt.Sprintf(" AND c.award_category = $%d", len(args))
	}
	if filter.AwardLevel != "" {
		args = append(args, filter.AwardLevel)
		query += fmt.Sprintf(" AND c.award_level = $%d", len(args))
	}
	if filter.SubmitterRole != "" {
		args = append(args, filter.SubmitterRole)
		query += fmt.Sprintf(" AND u.role = $%d", len(args))
	}
	query += " ORDER BY c.cert_id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing certificates: %w", err)
	}
	defer rows.Close()

	var records []*CertificateRecord
	for rows.Next() {
		rec := &CertificateRecord{}
		if err := rows.Scan(
			&rec.CertID, &rec.UserID, &rec.FileID, &rec.StudentCollege, &rec.CompetitionProject,
			&rec.StudentID, &rec.StudentName, &rec.AwardCategory, &rec.AwardLevel,
			&rec.CompetitionType, &rec.Organizer, &rec.AwardTime, &rec.TutorName,
			&rec.IsSubmitted, &rec.SubmitTime, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.SubmitterAccountID, &rec.SubmitterName, &rec.SubmitterRole); err != nil {
			return nil, fmt.Errorf("error scanning certificate: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the total number of certificate rows
func (r *CertificateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM certificate_info`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting certificates: %w", err)
	}
	return count, nil
}

// CountSubmitted returns the number of certificates flipped out of draft state
func (r *CertificateRepository) CountSubmitted(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM certificate_info WHERE is_submitted`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting submitted certificates: %w", err)
	}
	return count, nil
}
