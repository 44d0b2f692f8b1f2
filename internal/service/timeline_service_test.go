package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-portal-api/internal/models"
)

func stepStates(steps []models.TimelineStep) []models.StepState {
	states := make([]models.StepState, 0, len(steps))
	for _, step := range steps {
		states = append(states, step.State)
	}
	return states
}

func TestTimelineNotSubmitted(t *testing.T) {
	svc := NewTimelineService()
	record := models.NotSubmittedRecord()

	steps := svc.Build(record)

	require.Len(t, steps, 4)
	assert.Equal(t, []models.StepState{
		models.StepCurrent, models.StepPending, models.StepPending, models.StepPending,
	}, stepStates(steps))
	assert.Equal(t, 0, svc.Progress(steps))
	assert.Equal(t, "Not Submitted", svc.StatusLabel(record, steps))
}

func TestTimelineNilRecordBehavesAsNotSubmitted(t *testing.T) {
	svc := NewTimelineService()

	steps := svc.Build(nil)

	assert.Equal(t, models.StepCurrent, steps[0].State)
	assert.Equal(t, 0, svc.Progress(steps))
	assert.Equal(t, "Not Submitted", svc.StatusLabel(nil, steps))
}

func TestTimelineFullyAllocated(t *testing.T) {
	svc := NewTimelineService()
	submitted := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	record := &models.RegistrationRecord{
		Status:      models.StatusSubmitted,
		SubmittedAt: &submitted,
		UpdatedAt:   submitted.Add(48 * time.Hour),
		RoomID:      "room-12",
		Documents: []models.DocumentStatus{
			{Type: models.CategoryPassportPhoto, State: models.VerificationVerified},
			{Type: models.CategoryFeeReceipt, State: models.VerificationVerified},
			{Type: models.CategoryHallDues, State: models.VerificationVerified},
		},
	}

	steps := svc.Build(record)

	assert.Equal(t, []models.StepState{
		models.StepCompleted, models.StepCompleted, models.StepCompleted, models.StepCompleted,
	}, stepStates(steps))
	assert.Equal(t, 100, svc.Progress(steps))
	assert.Equal(t, "Room Allocated", svc.StatusLabel(record, steps))
	require.NotNil(t, steps[3].CompletedAt)
	assert.Equal(t, record.UpdatedAt, *steps[3].CompletedAt)
}

func TestTimelineRejectedCarriesReason(t *testing.T) {
	svc := NewTimelineService()
	record := &models.RegistrationRecord{
		Status:          models.StatusRejected,
		UpdatedAt:       time.Now().UTC(),
		RejectionReason: "Fee receipt does not match session",
	}

	steps := svc.Build(record)

	assert.Equal(t, models.StepRejected, steps[2].State)
	assert.Equal(t, "Fee receipt does not match session", steps[2].Description)
	assert.Equal(t, "Action Required", svc.StatusLabel(record, steps))
}

func TestTimelineRejectedWithoutReasonUsesDefault(t *testing.T) {
	svc := NewTimelineService()
	record := &models.RegistrationRecord{Status: models.StatusRejected, UpdatedAt: time.Now().UTC()}

	steps := svc.Build(record)

	assert.Equal(t, models.StepRejected, steps[2].State)
	assert.NotEmpty(t, steps[2].Description)
}

func TestTimelineSubmittedWithPendingDocument(t *testing.T) {
	svc := NewTimelineService()
	record := &models.RegistrationRecord{
		Status:    models.StatusSubmitted,
		UpdatedAt: time.Now().UTC(),
		Documents: []models.DocumentStatus{
			{Type: models.CategoryPassportPhoto, State: models.VerificationVerified},
			{Type: models.CategoryFeeReceipt, State: models.VerificationPending},
		},
	}

	steps := svc.Build(record)

	assert.Equal(t, []models.StepState{
		models.StepCompleted, models.StepCurrent, models.StepPending, models.StepPending,
	}, stepStates(steps))
	assert.Equal(t, 25, svc.Progress(steps))
	assert.Equal(t, "Document Verification", svc.StatusLabel(record, steps))
}

func TestTimelineRejectedDocumentDoesNotBlockAllocation(t *testing.T) {
	svc := NewTimelineService()
	record := &models.RegistrationRecord{
		Status:    models.StatusSubmitted,
		UpdatedAt: time.Now().UTC(),
		RoomID:    "room-3",
		Documents: []models.DocumentStatus{
			{Type: models.CategoryPassportPhoto, State: models.VerificationRejected},
		},
	}

	steps := svc.Build(record)

	// A rejected verification neither completes nor gates the later steps;
	// the room reference alone completes allocation.
	assert.Equal(t, models.StepRejected, steps[1].State)
	assert.Equal(t, models.StepPending, steps[2].State)
	assert.Equal(t, models.StepCompleted, steps[3].State)
	assert.Equal(t, 50, svc.Progress(steps))
	assert.Equal(t, "Room Allocated", svc.StatusLabel(record, steps))
}

func TestTimelineIsDeterministic(t *testing.T) {
	svc := NewTimelineService()
	record := &models.RegistrationRecord{
		Status:    models.StatusSubmitted,
		UpdatedAt: time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC),
		Documents: []models.DocumentStatus{
			{Type: models.CategoryPassportPhoto, State: models.VerificationPending},
		},
	}

	first := svc.Build(record)
	second := svc.Build(record)

	assert.Equal(t, first, second)
}
