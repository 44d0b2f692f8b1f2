package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Document category identifiers, matching the upstream document types.
const (
	CategoryPassportPhoto = "passport photo"
	CategoryFeeReceipt    = "fee receipt"
	CategoryHallDues      = "hall dues"
)

// DocumentFile is one uploaded file tracked under a category.
type DocumentFile struct {
	ID              string            `json:"id"`
	FileName        string            `json:"file_name"`
	Type            string            `json:"type"`
	State           VerificationState `json:"state"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	MimeType        string            `json:"mime_type"`
	FileSize        int64             `json:"file_size"`
	FileURL         string            `json:"file_url,omitempty"`
	UploadedAt      time.Time         `json:"uploaded_at"`
}

// DocumentCategory bounds uploads for one required document type.
type DocumentCategory struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Type            string         `json:"type"`
	Required        bool           `json:"required"`
	MaxFiles        int            `json:"max_files"`
	MaxBytes        int64          `json:"max_bytes"`
	AcceptedFormats []string       `json:"accepted_formats"`
	Files           []DocumentFile `json:"files"`
}

// AcceptsExtension checks a filename against the category's accepted formats.
func (c *DocumentCategory) AcceptsExtension(fileName string) bool {
	if len(c.AcceptedFormats) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range c.AcceptedFormats {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// RequiredCategories builds the fixed catalogue of required documents. The
// size limits come from configuration so deployments can tighten them.
func RequiredCategories(passportMaxBytes, receiptMaxBytes int64) []DocumentCategory {
	return []DocumentCategory{
		{
			ID:              "passport-photos",
			Title:           "Passport Photograph",
			Description:     "A recent passport photograph",
			Type:            CategoryPassportPhoto,
			Required:        true,
			MaxFiles:        1,
			MaxBytes:        passportMaxBytes,
			AcceptedFormats: []string{".jpg", ".jpeg", ".png"},
		},
		{
			ID:              "school-fees",
			Title:           "School Fees Receipt",
			Description:     "Current session school fees payment receipt",
			Type:            CategoryFeeReceipt,
			Required:        true,
			MaxFiles:        1,
			MaxBytes:        receiptMaxBytes,
			AcceptedFormats: []string{".pdf", ".jpg", ".jpeg", ".png"},
		},
		{
			ID:              "accommodation-receipt",
			Title:           "Accommodation Receipt",
			Description:     "Hostel accommodation (hall dues) payment receipt",
			Type:            CategoryHallDues,
			Required:        true,
			MaxFiles:        1,
			MaxBytes:        receiptMaxBytes,
			AcceptedFormats: []string{".pdf", ".jpg", ".jpeg", ".png"},
		},
	}
}

// SubmissionEntry is the flattened per-file payload posted when a student
// submits their application.
type SubmissionEntry struct {
	Type     string `json:"type"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
	FileURL  string `json:"fileUrl"`
}

// PendingDocument is an admin-facing verification queue entry.
type PendingDocument struct {
	StudentID    string         `json:"student_id"`
	StudentName  string         `json:"student_name"`
	MatricNumber string         `json:"matric_number"`
	Documents    []DocumentFile `json:"documents"`
}
