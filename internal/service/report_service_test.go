package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-portal-api/internal/dto"
	"github.com/noah-isme/hostel-portal-api/internal/models"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
)

type fakeReportClient struct {
	reportData  []byte
	reportType  string
	reportErr   error
	lastResult  *models.AllocationResult
	lastErr     error
	reportCalls int
}

func (f *fakeReportClient) Report(ctx context.Context, resultID, format string) ([]byte, string, error) {
	f.reportCalls++
	return f.reportData, f.reportType, f.reportErr
}

func (f *fakeReportClient) LastResult(ctx context.Context) (*models.AllocationResult, error) {
	return f.lastResult, f.lastErr
}

func TestReportDownloadPrefersUpstream(t *testing.T) {
	client := &fakeReportClient{
		reportData: []byte("col1,col2\na,b\n"),
		reportType: "text/csv",
	}
	svc := NewReportService(client, nil, nil)

	download, err := svc.Download(context.Background(), dto.ReportRequest{ResultID: "res-1", Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "allocation-report-res-1.csv", download.FileName)
	assert.Equal(t, "text/csv", download.ContentType)
	assert.Equal(t, client.reportData, download.Data)
}

func TestReportDownloadFallsBackToLocalRender(t *testing.T) {
	client := &fakeReportClient{
		reportErr: appErrors.Clone(appErrors.ErrNotFound, "report not found"),
		lastResult: &models.AllocationResult{
			ID:     "res-7",
			Status: models.ResultCompleted,
			Allocations: []models.AllocationEntry{
				{StudentName: "Ada Obi", MatricNumber: "CSC/19/001", Block: "A", RoomNumber: "A-101"},
			},
			Conflicts: []models.AllocationConflict{
				{StudentName: "Ben Musa", Issue: "no matching room"},
			},
		},
	}
	svc := NewReportService(client, nil, nil)

	download, err := svc.Download(context.Background(), dto.ReportRequest{ResultID: "res-7", Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", download.ContentType)
	body := string(download.Data)
	assert.Contains(t, body, "Ada Obi")
	assert.Contains(t, body, "A-101")
	assert.Contains(t, body, "no matching room")
}

func TestReportDownloadLocalPDF(t *testing.T) {
	client := &fakeReportClient{
		reportErr: appErrors.Clone(appErrors.ErrNotFound, "report not found"),
		lastResult: &models.AllocationResult{
			ID:     "res-9",
			Status: models.ResultCompleted,
			Allocations: []models.AllocationEntry{
				{StudentName: "Ada Obi", MatricNumber: "CSC/19/001", Block: "A", RoomNumber: "A-101"},
			},
		},
	}
	svc := NewReportService(client, nil, nil)

	download, err := svc.Download(context.Background(), dto.ReportRequest{ResultID: "res-9", Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", download.ContentType)
	assert.Equal(t, "allocation-report-res-9.pdf", download.FileName)
	require.NotEmpty(t, download.Data)
	assert.Equal(t, "%PDF", string(download.Data[:4]))
}

func TestReportDownloadUnknownResult(t *testing.T) {
	client := &fakeReportClient{
		reportErr:  appErrors.Clone(appErrors.ErrNotFound, "report not found"),
		lastResult: &models.AllocationResult{ID: "res-1"},
	}
	svc := NewReportService(client, nil, nil)

	_, err := svc.Download(context.Background(), dto.ReportRequest{ResultID: "res-999", Format: "csv"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestReportDownloadPropagatesUpstreamFailures(t *testing.T) {
	client := &fakeReportClient{reportErr: appErrors.ErrUpstream}
	svc := NewReportService(client, nil, nil)

	_, err := svc.Download(context.Background(), dto.ReportRequest{ResultID: "res-1", Format: "csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUpstream)
}
