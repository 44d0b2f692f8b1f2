package dto

import "github.com/noah-isme/hostel-portal-api/internal/models"

// DocumentChecklist is the student upload page state: the category catalogue
// populated with already-uploaded files plus the derived readiness flags.
type DocumentChecklist struct {
	Categories          []models.DocumentCategory `json:"categories"`
	AllRequiredUploaded bool                      `json:"all_required_uploaded"`
	AllVerified         bool                      `json:"all_verified"`
	Submitted           bool                      `json:"submitted"`
}

// UploadRequest describes one incoming file before it is streamed upstream.
type UploadRequest struct {
	CategoryID string `validate:"required"`
	FileName   string `validate:"required"`
	MimeType   string
	Size       int64 `validate:"gte=0"`
}

// VerifyRequest carries an admin verdict for a student's document.
type VerifyRequest struct {
	DocumentID string `json:"document_id" validate:"required"`
	Status     string `json:"status" validate:"required,oneof=verified rejected"`
	Reason     string `json:"reason"`
}
