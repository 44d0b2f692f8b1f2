package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/hostel-portal-api/internal/dto"
	"github.com/noah-isme/hostel-portal-api/internal/models"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
	"github.com/noah-isme/hostel-portal-api/pkg/export"
	"github.com/noah-isme/hostel-portal-api/pkg/storage"
)

type reportClient interface {
	Report(ctx context.Context, resultID, format string) ([]byte, string, error)
	LastResult(ctx context.Context) (*models.AllocationResult, error)
}

// ReportService resolves allocation report downloads. The upstream rendered
// report is preferred; when the upstream has none for the result id, the
// report is rendered locally from the last allocation result and cached on
// disk.
type ReportService struct {
	client reportClient
	store  *storage.LocalStorage
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(client reportClient, store *storage.LocalStorage, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		client: client,
		store:  store,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Download resolves the report artifact for one allocation result.
func (s *ReportService) Download(ctx context.Context, req dto.ReportRequest) (*dto.ReportDownload, error) {
	format := strings.ToLower(req.Format)

	data, contentType, err := s.client.Report(ctx, req.ResultID, format)
	if err == nil {
		return &dto.ReportDownload{
			FileName:    reportFileName(req.ResultID, format),
			ContentType: contentType,
			Data:        data,
		}, nil
	}

	var appErr *appErrors.Error
	if !errors.As(err, &appErr) || appErr.Status != http.StatusNotFound {
		return nil, err
	}

	s.logger.Sugar().Infow("upstream report missing, rendering locally", "result_id", req.ResultID, "format", format)
	return s.renderLocal(ctx, req.ResultID, format)
}

// renderLocal builds the report from the last allocation result. A result id
// mismatch is a hard not-found: the gateway only holds the latest run.
func (s *ReportService) renderLocal(ctx context.Context, resultID, format string) (*dto.ReportDownload, error) {
	result, err := s.client.LastResult(ctx)
	if err != nil {
		return nil, err
	}
	if result == nil || (result.ID != "" && resultID != "" && result.ID != resultID) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no report available for this allocation result")
	}

	dataset := allocationDataset(result)
	var (
		data        []byte
		contentType string
	)
	switch format {
	case "pdf":
		data, err = s.pdf.Render(dataset, "Room Allocation Report")
		contentType = "application/pdf"
	case "csv":
		data, err = s.csv.Render(dataset)
		contentType = "text/csv"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report format: "+format)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render allocation report")
	}

	fileName := reportFileName(resultID, format)
	if s.store != nil {
		cacheName := uuid.NewString() + "-" + fileName
		if _, saveErr := s.store.Save(cacheName, data); saveErr != nil {
			s.logger.Sugar().Warnw("report cache write failed", "file", cacheName, "error", saveErr)
		}
	}

	return &dto.ReportDownload{
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Cleanup removes cached report files older than the TTL.
func (s *ReportService) Cleanup(ttl time.Duration) {
	if s.store == nil || ttl <= 0 {
		return
	}
	deleted, err := s.store.CleanupOlderThan(ttl)
	if err != nil {
		s.logger.Sugar().Warnw("report cache cleanup failed", "error", err)
		return
	}
	if len(deleted) > 0 {
		s.logger.Sugar().Infow("report cache cleaned", "removed", len(deleted))
	}
}

func allocationDataset(result *models.AllocationResult) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"Student", "Matric Number", "Block", "Room"},
	}
	for _, entry := range result.Allocations {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":       entry.StudentName,
			"Matric Number": entry.MatricNumber,
			"Block":         entry.Block,
			"Room":          entry.RoomNumber,
		})
	}
	for _, conflict := range result.Conflicts {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":       conflict.StudentName,
			"Matric Number": "",
			"Block":         "UNALLOCATED",
			"Room":          conflict.Issue,
		})
	}
	return dataset
}

func reportFileName(resultID, format string) string {
	id := resultID
	if id == "" {
		id = "latest"
	}
	return fmt.Sprintf("allocation-report-%s.%s", sanitizeFileID(id), format)
}

func sanitizeFileID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteString(strconv.Itoa(int(r) % 10))
		}
	}
	return b.String()
}
