package service

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/hostel-portal-api/internal/dto"
	"github.com/noah-isme/hostel-portal-api/internal/models"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
)

type documentClient interface {
	MyDocuments(ctx context.Context, studentID string) ([]models.DocumentFile, error)
	UploadDocument(ctx context.Context, studentID, docType, fileName string, file io.Reader) (*models.DocumentFile, error)
	DeleteDocument(ctx context.Context, fileID string) error
	DownloadDocument(ctx context.Context, fileID string) ([]byte, string, error)
	PendingDocuments(ctx context.Context) ([]models.PendingDocument, error)
	VerifyDocument(ctx context.Context, studentID, documentID string, state models.VerificationState, reason string) error
	Apply(ctx context.Context, documents []models.SubmissionEntry) error
}

type submissionStore interface {
	MarkSubmitted(ctx context.Context, studentID string) error
	ClearSubmitted(ctx context.Context, studentID string) error
	IsSubmitted(ctx context.Context, studentID string) (bool, error)
}

// DocumentService owns the student upload checklist: the fixed category
// catalogue, per-file validation before anything leaves the gateway, and the
// submit/edit gate backed by the durable submission flag.
type DocumentService struct {
	client           documentClient
	submissions      submissionStore
	logger           *zap.Logger
	passportMaxBytes int64
	receiptMaxBytes  int64
}

// NewDocumentService constructs the service.
func NewDocumentService(client documentClient, submissions submissionStore, passportMaxBytes, receiptMaxBytes int64, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		client:           client,
		submissions:      submissions,
		logger:           logger,
		passportMaxBytes: passportMaxBytes,
		receiptMaxBytes:  receiptMaxBytes,
	}
}

// Checklist merges the student's uploaded files into the category catalogue
// and derives the readiness flags the upload page renders.
func (s *DocumentService) Checklist(ctx context.Context, studentID string) (*dto.DocumentChecklist, error) {
	files, err := s.client.MyDocuments(ctx, studentID)
	if err != nil {
		return nil, err
	}

	categories := models.RequiredCategories(s.passportMaxBytes, s.receiptMaxBytes)
	for i := range categories {
		for _, file := range files {
			if strings.EqualFold(file.Type, categories[i].Type) {
				categories[i].Files = append(categories[i].Files, file)
			}
		}
	}

	submitted, err := s.submissions.IsSubmitted(ctx, studentID)
	if err != nil {
		s.logger.Sugar().Warnw("submission flag read failed", "student_id", studentID, "error", err)
		submitted = false
	}

	checklist := &dto.DocumentChecklist{
		Categories:          categories,
		AllRequiredUploaded: true,
		AllVerified:         true,
		Submitted:           submitted,
	}
	for i := range categories {
		if !categories[i].Required {
			continue
		}
		if len(categories[i].Files) == 0 {
			checklist.AllRequiredUploaded = false
			checklist.AllVerified = false
			continue
		}
		for _, file := range categories[i].Files {
			if file.State != models.VerificationVerified {
				checklist.AllVerified = false
			}
		}
	}
	return checklist, nil
}

// Upload validates one incoming file against its category before the bytes
// go anywhere. Categories capped at one file replace the existing upload.
func (s *DocumentService) Upload(ctx context.Context, studentID string, req dto.UploadRequest, file io.Reader) (*models.DocumentFile, error) {
	category := s.findCategory(req.CategoryID)
	if category == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown document category")
	}
	if !category.AcceptsExtension(req.FileName) {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			"file type not accepted, allowed: "+strings.Join(category.AcceptedFormats, ", "))
	}
	if category.MaxBytes > 0 && req.Size > category.MaxBytes {
		return nil, appErrors.ErrFileTooLarge
	}

	existing, err := s.client.MyDocuments(ctx, studentID)
	if err != nil {
		return nil, err
	}
	var current []models.DocumentFile
	for _, doc := range existing {
		if strings.EqualFold(doc.Type, category.Type) {
			current = append(current, doc)
		}
	}

	if category.MaxFiles > 0 && len(current) >= category.MaxFiles {
		if category.MaxFiles != 1 {
			return nil, appErrors.ErrTooManyFiles
		}
		// Single-slot categories swap the old file for the new one, but a
		// verified upload stays put until an admin reopens it.
		if current[0].State == models.VerificationVerified {
			return nil, appErrors.ErrFileVerified
		}
		if err := s.client.DeleteDocument(ctx, current[0].ID); err != nil {
			return nil, err
		}
	}

	uploaded, err := s.client.UploadDocument(ctx, studentID, category.Type, req.FileName, file)
	if err != nil {
		return nil, err
	}
	return uploaded, nil
}

// Remove deletes an uploaded file after the upstream confirms. Verified files
// are immutable from the student side.
func (s *DocumentService) Remove(ctx context.Context, studentID, fileID string) error {
	files, err := s.client.MyDocuments(ctx, studentID)
	if err != nil {
		return err
	}
	var target *models.DocumentFile
	for i := range files {
		if files[i].ID == fileID {
			target = &files[i]
			break
		}
	}
	if target == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}
	if target.State == models.VerificationVerified {
		return appErrors.ErrFileVerified
	}
	return s.client.DeleteDocument(ctx, fileID)
}

// Download streams back a stored file's bytes and content type.
func (s *DocumentService) Download(ctx context.Context, fileID string) ([]byte, string, error) {
	return s.client.DownloadDocument(ctx, fileID)
}

// SubmitAll completes the submission step: every required category must hold
// a file, the flattened list is posted upstream, and the durable flag flips.
func (s *DocumentService) SubmitAll(ctx context.Context, studentID string) error {
	checklist, err := s.Checklist(ctx, studentID)
	if err != nil {
		return err
	}
	if !checklist.AllRequiredUploaded {
		return appErrors.ErrDocumentsMissing
	}

	var entries []models.SubmissionEntry
	for _, category := range checklist.Categories {
		for _, file := range category.Files {
			entries = append(entries, models.SubmissionEntry{
				Type:     file.Type,
				FileName: file.FileName,
				MimeType: file.MimeType,
				FileSize: file.FileSize,
				FileURL:  file.FileURL,
			})
		}
	}
	if err := s.client.Apply(ctx, entries); err != nil {
		return err
	}
	if err := s.submissions.MarkSubmitted(ctx, studentID); err != nil {
		// Submission already landed upstream; a stale flag only re-enables
		// the submit button, so log instead of failing the request.
		s.logger.Sugar().Warnw("submission flag write failed", "student_id", studentID, "error", err)
	}
	return nil
}

// Edit reopens the checklist by clearing the durable submission flag.
func (s *DocumentService) Edit(ctx context.Context, studentID string) error {
	return s.submissions.ClearSubmitted(ctx, studentID)
}

// Pending lists students whose documents await admin review.
func (s *DocumentService) Pending(ctx context.Context) ([]models.PendingDocument, error) {
	return s.client.PendingDocuments(ctx)
}

// Verify records an admin verdict for one of a student's documents.
func (s *DocumentService) Verify(ctx context.Context, studentID string, req dto.VerifyRequest) error {
	state := models.ParseVerificationState(req.Status)
	if state == models.VerificationRejected && strings.TrimSpace(req.Reason) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "a rejection reason is required")
	}
	return s.client.VerifyDocument(ctx, studentID, req.DocumentID, state, req.Reason)
}

func (s *DocumentService) findCategory(id string) *models.DocumentCategory {
	categories := models.RequiredCategories(s.passportMaxBytes, s.receiptMaxBytes)
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
