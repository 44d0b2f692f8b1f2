package models

import "time"

// StepState is the derived display state of a timeline step.
type StepState string

const (
	StepCompleted StepState = "completed"
	StepCurrent   StepState = "current"
	StepPending   StepState = "pending"
	StepRejected  StepState = "rejected"
)

// Timeline step identifiers, always emitted in this order.
const (
	StepIDSubmission   = "submission"
	StepIDVerification = "verification"
	StepIDReview       = "review"
	StepIDAllocation   = "allocation"
)

// TimelineStep is one of the four fixed stages of the registration lifecycle.
// Steps are a pure projection of a RegistrationRecord and are never persisted.
type TimelineStep struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	State       StepState  `json:"state"`
	Description string     `json:"description"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
