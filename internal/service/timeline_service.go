package service

import (
	"github.com/noah-isme/hostel-portal-api/internal/models"
)

// Step titles shown on the student status page.
const (
	titleSubmission   = "Application Submission"
	titleVerification = "Document Verification"
	titleReview       = "Application Review"
	titleAllocation   = "Room Allocation"
)

// Human-readable status labels.
const (
	labelNotSubmitted   = "Not Submitted"
	labelActionRequired = "Action Required"
	labelRoomAllocated  = "Room Allocated"
	labelUnderReview    = "Under Review"
)

const defaultRejectionReason = "Please review your application and resubmit."

// TimelineService derives the four-stage registration timeline from a
// registration snapshot. It is a pure projection: no state, no side effects,
// recomputed on every request.
type TimelineService struct{}

// NewTimelineService constructs the service.
func NewTimelineService() *TimelineService {
	return &TimelineService{}
}

// Build produces the fixed 4-step timeline for a record. A nil record is
// treated as a not-yet-submitted application.
func (s *TimelineService) Build(record *models.RegistrationRecord) []models.TimelineStep {
	if record == nil {
		record = models.NotSubmittedRecord()
	}

	steps := []models.TimelineStep{
		{ID: models.StepIDSubmission, Title: titleSubmission, State: models.StepPending, Description: "Fill out and submit your hostel application form."},
		{ID: models.StepIDVerification, Title: titleVerification, State: models.StepPending, Description: "Documents are being reviewed by administration."},
		{ID: models.StepIDReview, Title: titleReview, State: models.StepPending, Description: "Your application is being reviewed for approval."},
		{ID: models.StepIDAllocation, Title: titleAllocation, State: models.StepPending, Description: "Awaiting room and bed assignment."},
	}

	// Step 1: submission.
	if record.Status != models.StatusNotSubmitted {
		steps[0].State = models.StepCompleted
		steps[0].Description = "Your application has been received."
		steps[0].CompletedAt = record.SubmittedAt
	} else {
		steps[0].State = models.StepCurrent
		steps[3].Description = "Room allocation will be available once you submit your application."
	}

	// Step 2: document verification, meaningful once an application exists.
	switch record.Status {
	case models.StatusSubmitted, models.StatusApproved:
		switch record.AggregateVerification() {
		case models.VerificationVerified:
			steps[1].State = models.StepCompleted
			steps[1].Description = "All documents have been verified."
		case models.VerificationRejected:
			steps[1].State = models.StepRejected
			steps[1].Description = "One or more documents were rejected."
		default:
			steps[1].State = models.StepCurrent
		}
	case models.StatusRejected:
		// A rejection verdict implies the documents already went through
		// review.
		steps[1].State = models.StepCompleted
	}

	// Step 3: application review. A rejected application overrides the
	// verification gate.
	switch {
	case record.Status == models.StatusRejected:
		steps[2].State = models.StepRejected
		reason := record.RejectionReason
		if reason == "" {
			reason = defaultRejectionReason
		}
		steps[2].Description = reason
		steps[3].Description = "Room allocation not possible for rejected applications."
	case steps[1].State == models.StepCompleted:
		steps[2].State = models.StepCompleted
		steps[2].Description = "Your application has been accepted."
	}

	// Step 4: allocation depends only on the room reference, not on the
	// overall status.
	if record.HasRoom() {
		steps[3].State = models.StepCompleted
		steps[3].Description = "A hostel room and bed have been assigned to you."
		updated := record.UpdatedAt
		steps[3].CompletedAt = &updated
	}

	return steps
}

// Progress returns the overall completion percentage. Rejected steps count
// neither as completed nor as blockers.
func (s *TimelineService) Progress(steps []models.TimelineStep) int {
	if len(steps) == 0 {
		return 0
	}
	completed := 0
	for _, step := range steps {
		if step.State == models.StepCompleted {
			completed++
		}
	}
	return int(float64(completed)/float64(len(steps))*100 + 0.5)
}

// StatusLabel derives the single human-readable status string.
func (s *TimelineService) StatusLabel(record *models.RegistrationRecord, steps []models.TimelineStep) string {
	if record == nil || record.Status == models.StatusNotSubmitted {
		return labelNotSubmitted
	}
	if record.Status == models.StatusRejected {
		return labelActionRequired
	}
	if record.HasRoom() {
		return labelRoomAllocated
	}
	for _, step := range steps {
		if step.State == models.StepCurrent {
			return step.Title
		}
	}
	return labelUnderReview
}
