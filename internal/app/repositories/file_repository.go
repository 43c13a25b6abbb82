package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/pkg/apperrors"
	"github.com/certsys/certdb/internal/pkg/dberrors"
)

// IFileRepository defines the interface for file-record operations
type IFileRepository interface {
	Create(ctx context.Context, file *models.File) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.File, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.File, error)
	Delete(ctx context.Context, id int64) error
	AllPaths(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

// FileRepository handles database operations for the files table
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create inserts a file record. The file type must be one of the
// conventional values and the owning user must exist; a foreign key
// violation surfaces as ErrUserNotFound.
func (r *FileRepository) Create(ctx context.Context, file *models.File) (int64, error) {
	if !file.FileType.Valid() {
		return 0, apperrors.ErrInvalidFileType
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO files (user_id, file_name, file_path, file_type, file_size)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING file_id`,
		file.UserID, file.FileName, file.FilePath, file.FileType, file.FileSize).Scan(&id)

	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, fmt.Errorf("error creating file record: %w", err)
	}

	return id, nil
}

// GetByID retrieves a file record by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	file := &models.File{}
	err := r.db.QueryRow(ctx, `
		SELECT file_id, user_id, file_name, file_path, file_type, file_size, upload_time
		FROM files
		WHERE file_id = $1`,
		id).Scan(
		&file.FileID, &file.UserID, &file.FileName, &file.FilePath,
		&file.FileType, &file.FileSize, &file.UploadTime)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error getting file record: %w", err)
	}

	return file, nil
}

// ListByUserID retrieves a user's file records, newest first
func (r *FileRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.File, error) {
	rows, err := r.db.Query(ctx, `
		SELECT file_id, user_id, file_name, file_path, file_type, file_size, upload_time
		FROM files
		WHERE user_id = $1
		ORDER BY upload_time DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing file records: %w", err)
	}
	defer rows.Close()

	var files []*models.File
	for rows.Next() {
		file := &models.File{}
		if err := rows.Scan(
			&file.FileID, &file.UserID, &file.FileName, &file.FilePath,
			&file.FileType, &file.FileSize, &file.UploadTime); err != nil {
			return nil, fmt.Errorf("error scanning file record: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// Delete removes a file record
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM files WHERE file_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}

	return nil
}

// AllPaths returns every stored file path. The storage janitor uses this to
// detect on-disk files with no matching record.
func (r *FileRepository) AllPaths(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT file_path FROM files`)
	if err != nil {
		return nil, fmt.Errorf("error listing file paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("error scanning file path: %w", err)
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}

// Count returns the total number of file rows
func (r *FileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM files`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting file records: %w", err)
	}
	return count, nil
}
