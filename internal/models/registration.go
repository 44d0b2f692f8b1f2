package models

import (
	"strings"
	"time"
)

// RegistrationStatus is the server-reported lifecycle state of a hostel
// application.
type RegistrationStatus string

const (
	StatusNotSubmitted RegistrationStatus = "NOT_SUBMITTED"
	StatusSubmitted    RegistrationStatus = "SUBMITTED"
	StatusApproved     RegistrationStatus = "APPROVED"
	StatusRejected     RegistrationStatus = "REJECTED"
)

// ParseRegistrationStatus normalises the status strings the upstream service
// emits (casing and separator drift across endpoints) into the fixed enum.
// Unknown values default to NOT_SUBMITTED rather than propagating raw
// strings.
func ParseRegistrationStatus(raw string) RegistrationStatus {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch RegistrationStatus(normalized) {
	case StatusSubmitted:
		return StatusSubmitted
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	default:
		return StatusNotSubmitted
	}
}

// VerificationState is the review outcome of a single uploaded document.
type VerificationState string

const (
	VerificationPending  VerificationState = "pending"
	VerificationVerified VerificationState = "verified"
	VerificationRejected VerificationState = "rejected"
)

// ParseVerificationState normalises per-document states, defaulting unknown
// values to pending.
func ParseVerificationState(raw string) VerificationState {
	switch VerificationState(strings.ToLower(strings.TrimSpace(raw))) {
	case VerificationVerified:
		return VerificationVerified
	case VerificationRejected:
		return VerificationRejected
	default:
		return VerificationPending
	}
}

// DocumentStatus is one document's verification entry on a registration.
type DocumentStatus struct {
	ID    string            `json:"id"`
	Type  string            `json:"type"`
	State VerificationState `json:"state"`
}

// RegistrationRecord is the normalised registration snapshot. roomId may be
// present while status is still SUBMITTED; the two fields are independent.
type RegistrationRecord struct {
	ApplicationID   string             `json:"application_id,omitempty"`
	Status          RegistrationStatus `json:"status"`
	SubmittedAt     *time.Time         `json:"submitted_at,omitempty"`
	UpdatedAt       time.Time          `json:"updated_at"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	RoomID          string             `json:"room_id,omitempty"`
	Documents       []DocumentStatus   `json:"documents"`
}

// NotSubmittedRecord is the default snapshot used when the upstream service
// reports no registration (404).
func NotSubmittedRecord() *RegistrationRecord {
	return &RegistrationRecord{
		Status:    StatusNotSubmitted,
		UpdatedAt: time.Now().UTC(),
		Documents: nil,
	}
}

// AggregateVerification derives the record-level verification state: all
// verified wins, any rejected loses, otherwise pending. An empty document
// list is pending.
func (r *RegistrationRecord) AggregateVerification() VerificationState {
	if r == nil || len(r.Documents) == 0 {
		return VerificationPending
	}
	allVerified := true
	for _, doc := range r.Documents {
		switch doc.State {
		case VerificationRejected:
			return VerificationRejected
		case VerificationVerified:
		default:
			allVerified = false
		}
	}
	if allVerified {
		return VerificationVerified
	}
	return VerificationPending
}

// HasRoom reports whether an allocation has already produced a room for this
// record, independent of the status field.
func (r *RegistrationRecord) HasRoom() bool {
	return r != nil && r.RoomID != ""
}
