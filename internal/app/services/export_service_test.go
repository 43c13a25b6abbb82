package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/repositories"
)

type fakeCertRepo struct {
	repositories.ICertificateRepository
	records []*repositories.CertificateRecord
	gotFilter repositories.CertificateFilter
}

func (f *fakeCertRepo) ListForExport(_ context.Context, filter repositories.CertificateFilter) ([]*repositories.CertificateRecord, error) {
	f.gotFilter = filter
	return f.records, nil
}

func TestExportCertificates(t *testing.T) {
	submitTime := time.Date(2025, 11, 1, 9, 30, 0, 0, time.UTC)
	repo := &fakeCertRepo{records: []*repositories.CertificateRecord{
		{
			Certificate: models.Certificate{
				CertID: 1, StudentID: "2025000000001", StudentName: "Zhang San",
				StudentCollege: "School of Computer Science", CompetitionProject: "ACM ICPC",
				AwardCategory: "national", AwardLevel: "first prize",
				IsSubmitted: true, SubmitTime: &submitTime,
			},
			SubmitterAccountID: "2025000000001",
			SubmitterName:      "Zhang San",
			SubmitterRole:      models.RoleStudent,
		},
		{
			Certificate: models.Certificate{
				CertID: 2, StudentID: "2025000000002", StudentName: "Li Si",
				AwardCategory: "provincial", AwardLevel: "second prize",
			},
			SubmitterAccountID: "88888889",
			SubmitterName:      "Wang Wu",
			SubmitterRole:      models.RoleTeacher,
		},
	}}

	svc := NewExportService(repo, zerolog.Nop())
	path := t.TempDir() + "/certs.xlsx"

	filter := repositories.CertificateFilter{AwardCategory: "national"}
	count, err := svc.ExportCertificates(context.Background(), filter, path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, filter, repo.gotFilter)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Cert ID", rows[0][0])
	assert.Equal(t, "Zhang San", rows[1][2])
	assert.Equal(t, "submitted", rows[1][14])
	assert.Equal(t, "2025-11-01 09:30:00", rows[1][15])
	assert.Equal(t, "draft", rows[2][14])
}

func TestExportCertificatesEmpty(t *testing.T) {
	svc := NewExportService(&fakeCertRepo{}, zerolog.Nop())
	path := t.TempDir() + "/empty.xlsx"

	count, err := svc.ExportCertificates(context.Background(), repositories.CertificateFilter{}, path)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
