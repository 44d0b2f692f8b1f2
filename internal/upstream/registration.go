package upstream

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/noah-isme/hostel-portal-api/internal/models"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
)

type registrationPayload struct {
	ApplicationID   string            `json:"applicationId"`
	Status          string            `json:"status"`
	SubmittedAt     *time.Time        `json:"submittedAt"`
	UpdatedAt       *time.Time        `json:"updatedAt"`
	RejectionReason string            `json:"rejectionReason"`
	RoomID          flexID            `json:"roomId"`
	Documents       []documentPayload `json:"documents"`
}

type documentPayload struct {
	ID     flexID `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

func (p *registrationPayload) toRecord() *models.RegistrationRecord {
	record := &models.RegistrationRecord{
		ApplicationID:   p.ApplicationID,
		Status:          models.ParseRegistrationStatus(p.Status),
		SubmittedAt:     p.SubmittedAt,
		RejectionReason: p.RejectionReason,
		RoomID:          p.RoomID.String(),
	}
	if p.UpdatedAt != nil {
		record.UpdatedAt = *p.UpdatedAt
	} else {
		record.UpdatedAt = time.Now().UTC()
	}
	for _, doc := range p.Documents {
		record.Documents = append(record.Documents, models.DocumentStatus{
			ID:    doc.ID.String(),
			Type:  doc.Type,
			State: models.ParseVerificationState(doc.Status),
		})
	}
	return record
}

// Registration fetches the caller's registration snapshot. A 404 means no
// application exists yet and maps to a NOT_SUBMITTED record.
func (c *Client) Registration(ctx context.Context) (*models.RegistrationRecord, error) {
	var payload registrationPayload
	err := c.doJSON(ctx, http.MethodGet, "/hostel/registration", nil, nil, &payload)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Status == http.StatusNotFound {
			return models.NotSubmittedRecord(), nil
		}
		return nil, err
	}
	return payload.toRecord(), nil
}

// Register submits a new hostel application form.
func (c *Client) Register(ctx context.Context, form map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPost, "/hostel/register", nil, form, nil)
}

// UpdateRegistration amends an existing application form.
func (c *Client) UpdateRegistration(ctx context.Context, form map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPut, "/hostel/registration", nil, form, nil)
}

// Apply posts the flattened document list, completing the submission step.
func (c *Client) Apply(ctx context.Context, documents []models.SubmissionEntry) error {
	body := map[string]interface{}{"documents": documents}
	return c.doJSON(ctx, http.MethodPost, "/registration/apply", nil, body, nil)
}

type profilePayload struct {
	ID           flexID `json:"id"`
	FullName     string `json:"fullName"`
	MatricNumber string `json:"matricNumber"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
	Level        string `json:"level"`
	Department   string `json:"department"`
}

// Profile returns the student's profile record.
func (c *Client) Profile(ctx context.Context) (*models.StudentProfile, error) {
	var payload profilePayload
	if err := c.doJSON(ctx, http.MethodGet, "/students/profile", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &models.StudentProfile{
		ID:           payload.ID.String(),
		FullName:     payload.FullName,
		MatricNumber: payload.MatricNumber,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Gender:       payload.Gender,
		Level:        payload.Level,
		Department:   payload.Department,
	}, nil
}

// UpdateProfile pushes profile edits upstream.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPut, "/students/profile", nil, fields, nil)
}

type overviewPayload struct {
	StudentID    flexID            `json:"studentId"`
	StudentName  string            `json:"studentName"`
	MatricNumber string            `json:"matricNumber"`
	Status       string            `json:"status"`
	RoomID       flexID            `json:"roomId"`
	Documents    []documentPayload `json:"documents"`
}

// RegistrationsOverview lists every student's registration state for the
// admin dashboard.
func (c *Client) RegistrationsOverview(ctx context.Context) ([]models.RegistrationOverview, error) {
	var payload []overviewPayload
	if err := c.doJSON(ctx, http.MethodGet, "/students/registrations/status", nil, nil, &payload); err != nil {
		return nil, err
	}
	rows := make([]models.RegistrationOverview, 0, len(payload))
	for _, item := range payload {
		record := models.RegistrationRecord{}
		for _, doc := range item.Documents {
			record.Documents = append(record.Documents, models.DocumentStatus{
				ID:    doc.ID.String(),
				Type:  doc.Type,
				State: models.ParseVerificationState(doc.Status),
			})
		}
		rows = append(rows, models.RegistrationOverview{
			StudentID:    item.StudentID.String(),
			StudentName:  item.StudentName,
			MatricNumber: item.MatricNumber,
			Status:       models.ParseRegistrationStatus(item.Status),
			Verification: record.AggregateVerification(),
			RoomID:       item.RoomID.String(),
		})
	}
	return rows, nil
}
