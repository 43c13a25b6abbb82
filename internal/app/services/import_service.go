package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/repositories"
	"github.com/certsys/certdb/internal/pkg/apperrors"
	"github.com/certsys/certdb/internal/pkg/auth"
)

// Import workbook column headers. The first worksheet must carry these in
// its first row; the initial password column is optional.
const (
	colAccountID = "Account ID"
	colName      = "Name"
	colRole      = "Role"
	colDept      = "Department"
	colEmail     = "Email"
	colPassword  = "Initial Password"
)

// ImportRow is one parsed workbook line plus any validation errors found.
type ImportRow struct {
	Line              int // 1-based workbook row number
	Input             CreateUserInput
	GeneratedPassword bool
	Errors            []string
}

// ImportDetail is the per-row outcome in an import report.
type ImportDetail struct {
	Line      int
	AccountID string
	Name      string
	Status    string // created, failed, duplicate
	Reason    string
	Password  string // generated initial password, blank when supplied by the sheet
}

// ImportReport summarizes a batch import run.
type ImportReport struct {
	BatchID   string
	Total     int
	Created   int
	Failed    int
	Duplicate int
	Details   []ImportDetail
}

// ImportService provisions user accounts in bulk from Excel workbooks.
type ImportService struct {
	userService *UserService
	users       repositories.IUserRepository
	logger      zerolog.Logger
}

// NewImportService creates a new ImportService
func NewImportService(userService *UserService, users repositories.IUserRepository, lgr zerolog.Logger) *ImportService {
	return &ImportService{userService: userService, users: users, logger: lgr}
}

// ParseWorkbook reads the first worksheet of an xlsx workbook into import
// rows. Field-level validation errors are attached to each row rather than
// aborting the parse, so a report can name every bad line.
func (s *ImportService) ParseWorkbook(r io.Reader) ([]ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrImportFileUnreadable, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrImportFileUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrImportHeaderMissing
	}

	index := map[string]int{}
	for i, header := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{colAccountID, colName, colRole, colDept, colEmail} {
		if _, ok := index[strings.ToLower(required)]; !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrImportHeaderMissing, required)
		}
	}

	cell := func(row []string, header string) string {
		i, ok := index[strings.ToLower(header)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var parsed []ImportRow
	for i, row := range rows[1:] {
		line := i + 2 // workbook rows are 1-based, row 1 is the header

		input := CreateUserInput{
			AccountID:  cell(row, colAccountID),
			Name:       cell(row, colName),
			Role:       cell(row, colRole),
			Department: cell(row, colDept),
			Email:      cell(row, colEmail),
			Password:   cell(row, colPassword),
			CreatedBy:  models.CreatedByAdminImport,
		}

		// Skip fully blank lines
		if input.AccountID == "" && input.Name == "" && input.Email == "" {
			continue
		}

		out := ImportRow{Line: line, Input: input}
		if input.Password == "" {
			pwd, err := auth.GeneratePassword(10)
			if err != nil {
				return nil, err
			}
			out.Input.Password = pwd
			out.GeneratedPassword = true
		}

		if err := s.userService.ValidateInput(out.Input); err != nil {
			out.Errors = append(out.Errors, err.Error())
		}
		parsed = append(parsed, out)
	}

	if len(parsed) == 0 {
		return nil, apperrors.ErrImportNoRows
	}
	return parsed, nil
}

// Import creates the parsed accounts, skipping rows with validation errors
// and rows whose account identifier already exists, and returns a per-row
// report.
func (s *ImportService) Import(ctx context.Context, rows []ImportRow) (*ImportReport, error) {
	report := &ImportReport{
		BatchID: uuid.New().String(),
		Total:   len(rows),
	}

	for _, row := range rows {
		detail := ImportDetail{
			Line:      row.Line,
			AccountID: row.Input.AccountID,
			Name:      row.Input.Name,
		}

		if len(row.Errors) > 0 {
			detail.Status = "failed"
			detail.Reason = strings.Join(row.Errors, "; ")
			report.Failed++
			report.Details = append(report.Details, detail)
			continue
		}

		exists, err := s.users.AccountExists(ctx, row.Input.AccountID)
		if err != nil {
			return nil, err
		}
		if exists {
			detail.Status = "duplicate"
			detail.Reason = "account identifier already exists"
			report.Duplicate++
			report.Details = append(report.Details, detail)
			continue
		}

		if _, err := s.userService.Create(ctx, row.Input); err != nil {
			detail.Status = "failed"
			detail.Reason = err.Error()
			report.Failed++
			report.Details = append(report.Details, detail)
			continue
		}

		detail.Status = "created"
		if row.GeneratedPassword {
			detail.Password = row.Input.Password
		}
		report.Created++
		report.Details = append(report.Details, detail)
	}

	s.logger.Info().
		Str("batchID", report.BatchID).
		Int("total", report.Total).
		Int("created", report.Created).
		Int("failed", report.Failed).
		Int("duplicate", report.Duplicate).
		Msg("User import finished")

	return report, nil
}

// WriteTemplate writes an import template workbook with the expected
// headers and two sample rows.
func (s *ImportService) WriteTemplate(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{colAccountID, colName, colRole, colDept, colEmail, colPassword}
	samples := [][]interface{}{
		{"2025000000001", "Zhang San", "student", "School of Computer Science", "zhangsan@school.edu.cn", "Passw0rd1"},
		{"88888889", "Li Si", "teacher", "Academic Affairs Office", "lisi@school.edu.cn", "Passw0rd2"},
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	for r, sample := range samples {
		for c, value := range sample {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}
	return nil
}
