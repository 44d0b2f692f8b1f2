package dto

import "github.com/noah-isme/hostel-portal-api/internal/models"

// RegistrationStatusResponse bundles everything the student status page
// renders: the normalised record, the derived timeline and its summary.
type RegistrationStatusResponse struct {
	Record   *models.RegistrationRecord `json:"record"`
	Steps    []models.TimelineStep      `json:"steps"`
	Progress int                        `json:"progress"`
	Label    string                     `json:"label"`
}

// RegistrationFormRequest carries the application form fields, forwarded
// upstream as-is.
type RegistrationFormRequest struct {
	Form map[string]interface{} `json:"form" validate:"required"`
}

// ProfileUpdateRequest carries profile edits.
type ProfileUpdateRequest struct {
	Fields map[string]interface{} `json:"fields" validate:"required"`
}
