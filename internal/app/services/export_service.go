package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/certsys/certdb/internal/app/repositories"
	"github.com/certsys/certdb/internal/pkg/helpers"
)

// ExportService writes certificate data to Excel workbooks.
type ExportService struct {
	certificates repositories.ICertificateRepository
	logger       zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(certificates repositories.ICertificateRepository, lgr zerolog.Logger) *ExportService {
	return &ExportService{certificates: certificates, logger: lgr}
}

// ExportCertificates writes the filtered certificate records to an xlsx
// file and returns the number of exported rows.
func (s *ExportService) ExportCertificates(ctx context.Context, filter repositories.CertificateFilter, path string) (int, error) {
	records, err := s.certificates.ListForExport(ctx, filter)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{
		"Cert ID", "Student ID", "Student Name", "College", "Competition Project",
		"Award Category", "Award Level", "Competition Type", "Organizer", "Award Time",
		"Tutor", "Submitter Account", "Submitter Name", "Submitter Role", "Status", "Submit Time",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return 0, err
		}
	}

	for r, rec := range records {
		status := "draft"
		submitTime := ""
		if rec.IsSubmitted {
			status = "submitted"
		}
		if rec.SubmitTime != nil {
			submitTime = helpers.FormatDeadline(*rec.SubmitTime)
		}

		values := []interface{}{
			rec.CertID, rec.StudentID, rec.StudentName, rec.StudentCollege, rec.CompetitionProject,
			rec.AwardCategory, rec.AwardLevel, rec.CompetitionType, rec.Organizer, rec.AwardTime,
			rec.TutorName, rec.SubmitterAccountID, rec.SubmitterName, string(rec.SubmitterRole), status, submitTime,
		}
		for c, value := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return 0, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return 0, err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("failed to write export file: %w", err)
	}

	s.logger.Info().Int("rows", len(records)).Str("path", path).Msg("Certificate export written")
	return len(records), nil
}
