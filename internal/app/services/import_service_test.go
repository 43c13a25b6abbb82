package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/pkg/apperrors"
)

// buildWorkbook renders header + rows into an in-memory xlsx workbook.
func buildWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	writeRow := func(rowIdx int, values []string) {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	writeRow(1, header)
	for i, row := range rows {
		writeRow(i+2, row)
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

var importHeader = []string{"Account ID", "Name", "Role", "Department", "Email", "Initial Password"}

func newImportServiceForTest() (*ImportService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	userSvc := NewUserService(repo, zerolog.Nop())
	return NewImportService(userSvc, repo, zerolog.Nop()), repo
}

func TestParseWorkbook(t *testing.T) {
	svc, _ := newImportServiceForTest()

	buf := buildWorkbook(t, importHeader, [][]string{
		{"2025000000001", "Zhang San", "student", "School of Computer Science", "zhangsan@school.edu.cn", "Passw0rd1"},
		{"88888889", "Li Si", "Teacher", "Academic Affairs Office", "lisi@school.edu.cn", ""},
		{"", "", "", "", "", ""}, // blank lines are skipped
		{"badid", "Wang Wu", "student", "School of Law", "wangwu@school.edu.cn", "Passw0rd3"},
	})

	rows, err := svc.ParseWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "2025000000001", rows[0].Input.AccountID)
	assert.False(t, rows[0].GeneratedPassword)
	assert.Empty(t, rows[0].Errors)

	// The blank password cell gets a generated one.
	assert.True(t, rows[1].GeneratedPassword)
	assert.NotEmpty(t, rows[1].Input.Password)
	assert.Empty(t, rows[1].Errors)

	// Bad account IDs are reported per row, not as a parse failure.
	assert.Equal(t, 5, rows[2].Line)
	assert.NotEmpty(t, rows[2].Errors)
}

func TestParseWorkbookMissingHeader(t *testing.T) {
	svc, _ := newImportServiceForTest()

	buf := buildWorkbook(t, []string{"Account ID", "Name", "Role"}, nil)
	_, err := svc.ParseWorkbook(buf)
	assert.ErrorIs(t, err, apperrors.ErrImportHeaderMissing)
}

func TestParseWorkbookNoRows(t *testing.T) {
	svc, _ := newImportServiceForTest()

	buf := buildWorkbook(t, importHeader, nil)
	_, err := svc.ParseWorkbook(buf)
	assert.ErrorIs(t, err, apperrors.ErrImportNoRows)
}

func TestParseWorkbookNotAnArchive(t *testing.T) {
	svc, _ := newImportServiceForTest()

	_, err := svc.ParseWorkbook(bytes.NewBufferString("definitely not xlsx"))
	assert.ErrorIs(t, err, apperrors.ErrImportFileUnreadable)
}

func TestImport(t *testing.T) {
	svc, repo := newImportServiceForTest()
	ctx := context.Background()

	// The second row collides with an existing account.
	existing := validStudentInput()
	existing.AccountID = "2025000000002"
	existing.Email = "taken@school.edu.cn"
	_, err := NewUserService(repo, zerolog.Nop()).Create(ctx, existing)
	require.NoError(t, err)

	rows := []ImportRow{
		{Line: 2, Input: CreateUserInput{
			AccountID: "2025000000001", Name: "Zhang San", Role: "student",
			Department: "School of Computer Science", Email: "zhangsan@school.edu.cn",
			Password: "Gener4ted1", CreatedBy: models.CreatedByAdminImport,
		}, GeneratedPassword: true},
		{Line: 3, Input: CreateUserInput{
			AccountID: "2025000000002", Name: "Li Si", Role: "student",
			Department: "School of Law", Email: "lisi@school.edu.cn",
			Password: "Passw0rd2", CreatedBy: models.CreatedByAdminImport,
		}},
		{Line: 4, Input: CreateUserInput{AccountID: "bad"}, Errors: []string{"invalid account identifier"}},
	}

	report, err := svc.Import(ctx, rows)
	require.NoError(t, err)

	assert.NotEmpty(t, report.BatchID)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Duplicate)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Details, 3)

	assert.Equal(t, "created", report.Details[0].Status)
	assert.Equal(t, "Gener4ted1", report.Details[0].Password, "generated passwords appear in the report")
	assert.Equal(t, "duplicate", report.Details[1].Status)
	assert.Empty(t, report.Details[1].Password)
	assert.Equal(t, "failed", report.Details[2].Status)

	created, ok := repo.users["2025000000001"]
	require.True(t, ok)
	assert.Equal(t, models.CreatedByAdminImport, created.CreatedBy)
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	svc, _ := newImportServiceForTest()

	path := t.TempDir() + "/template.xlsx"
	require.NoError(t, svc.WriteTemplate(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, importHeader, rows[0])
}
