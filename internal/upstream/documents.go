package upstream

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/noah-isme/hostel-portal-api/internal/models"
)

type documentFilePayload struct {
	ID              flexID     `json:"id"`
	FileName        string     `json:"fileName"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejectionReason"`
	MimeType        string     `json:"mimeType"`
	FileSize        int64      `json:"fileSize"`
	FileURL         string     `json:"fileUrl"`
	UploadedAt      *time.Time `json:"uploadedAt"`
}

func (p *documentFilePayload) toFile() models.DocumentFile {
	name := p.FileName
	if name == "" {
		name = p.Name
	}
	file := models.DocumentFile{
		ID:              p.ID.String(),
		FileName:        name,
		Type:            p.Type,
		State:           models.ParseVerificationState(p.Status),
		RejectionReason: p.RejectionReason,
		MimeType:        p.MimeType,
		FileSize:        p.FileSize,
		FileURL:         p.FileURL,
	}
	if p.UploadedAt != nil {
		file.UploadedAt = *p.UploadedAt
	}
	return file
}

// MyDocuments lists the files a student has already uploaded.
func (c *Client) MyDocuments(ctx context.Context, studentID string) ([]models.DocumentFile, error) {
	var payload []documentFilePayload
	path := "/documents/my-documents/" + url.PathEscape(studentID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &payload); err != nil {
		return nil, err
	}
	files := make([]models.DocumentFile, 0, len(payload))
	for i := range payload {
		files = append(files, payload[i].toFile())
	}
	return files, nil
}

// UploadDocument streams one file upstream and returns the confirmed record.
func (c *Client) UploadDocument(ctx context.Context, studentID, docType, fileName string, file io.Reader) (*models.DocumentFile, error) {
	var payload documentFilePayload
	path := "/documents/upload/" + url.PathEscape(studentID)
	fields := map[string]string{"type": docType}
	if err := c.doMultipart(ctx, path, "file", fileName, file, fields, &payload); err != nil {
		return nil, err
	}
	confirmed := payload.toFile()
	if confirmed.Type == "" {
		confirmed.Type = docType
	}
	if confirmed.FileName == "" {
		confirmed.FileName = fileName
	}
	return &confirmed, nil
}

// DeleteDocument removes an uploaded file. Local state must only drop the
// file after this confirms.
func (c *Client) DeleteDocument(ctx context.Context, fileID string) error {
	path := "/documents/delete/" + url.PathEscape(fileID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// DownloadDocument fetches the stored file bytes.
func (c *Client) DownloadDocument(ctx context.Context, fileID string) ([]byte, string, error) {
	path := "/documents/download/" + url.PathEscape(fileID)
	return c.doRaw(ctx, path, nil)
}

type pendingDocumentPayload struct {
	StudentID    flexID                `json:"studentId"`
	StudentName  string                `json:"studentName"`
	MatricNumber string                `json:"matricNumber"`
	Documents    []documentFilePayload `json:"documents"`
}

// PendingDocuments lists students whose documents await admin review.
func (c *Client) PendingDocuments(ctx context.Context) ([]models.PendingDocument, error) {
	var payload []pendingDocumentPayload
	if err := c.doJSON(ctx, http.MethodGet, "/documents/pending", nil, nil, &payload); err != nil {
		return nil, err
	}
	pending := make([]models.PendingDocument, 0, len(payload))
	for _, item := range payload {
		entry := models.PendingDocument{
			StudentID:    item.StudentID.String(),
			StudentName:  item.StudentName,
			MatricNumber: item.MatricNumber,
		}
		for i := range item.Documents {
			entry.Documents = append(entry.Documents, item.Documents[i].toFile())
		}
		pending = append(pending, entry)
	}
	return pending, nil
}

// VerifyDocument records an admin verdict for one of a student's documents.
func (c *Client) VerifyDocument(ctx context.Context, studentID, documentID string, state models.VerificationState, reason string) error {
	path := "/documents/verify/" + url.PathEscape(studentID)
	body := map[string]interface{}{
		"documentId": documentID,
		"status":     string(state),
	}
	if reason != "" {
		body["rejectionReason"] = reason
	}
	return c.doJSON(ctx, http.MethodPatch, path, nil, body, nil)
}
