package models

import (
	"strings"
	"time"
)

// AllocationJob is the server-reported snapshot of the batch allocation run.
// It is mutated only by polled upstream snapshots; the run itself is opaque
// to the gateway.
type AllocationJob struct {
	IsRunning           bool       `json:"is_running"`
	Progress            int        `json:"progress"`
	CurrentStep         string     `json:"current_step"`
	StartTime           *time.Time `json:"start_time,omitempty"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
}

// ResultStatus classifies a finished allocation run.
type ResultStatus string

const (
	ResultCompleted ResultStatus = "completed"
	ResultPartial   ResultStatus = "partial"
	ResultFailed    ResultStatus = "failed"
)

// ParseResultStatus normalises upstream result statuses; unknown values are
// treated as failed so they surface rather than disappear.
func ParseResultStatus(raw string) ResultStatus {
	switch ResultStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case ResultCompleted:
		return ResultCompleted
	case ResultPartial:
		return ResultPartial
	default:
		return ResultFailed
	}
}

// AllocationEntry is a single student-to-room assignment.
type AllocationEntry struct {
	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name"`
	MatricNumber string `json:"matric_number"`
	Block        string `json:"block"`
	RoomNumber   string `json:"room_number"`
}

// AllocationConflict describes a student the run could not place.
type AllocationConflict struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Issue       string `json:"issue"`
}

// AllocationResult is the immutable outcome of one allocation run. It is
// superseded only by a subsequent run.
type AllocationResult struct {
	ID                  string               `json:"id"`
	Timestamp           time.Time            `json:"timestamp"`
	Status              ResultStatus         `json:"status"`
	StudentsAllocated   int                  `json:"students_allocated"`
	StudentsUnallocated int                  `json:"students_unallocated"`
	TotalStudents       int                  `json:"total_students"`
	Errors              []string             `json:"errors"`
	Conflicts           []AllocationConflict `json:"conflicts"`
	Allocations         []AllocationEntry    `json:"allocations"`
}

// BlockAvailability summarises free capacity per hostel block.
type BlockAvailability struct {
	Block             string `json:"block"`
	AvailableSpaces   int    `json:"available_spaces"`
	EstimatedStudents int    `json:"estimated_students"`
}

// PreAllocationCheck is the server-side eligibility snapshot gating the
// start command.
type PreAllocationCheck struct {
	ApprovedStudents  int                 `json:"approved_students"`
	AvailableSpaces   int                 `json:"available_spaces"`
	CanAllocateAll    bool                `json:"can_allocate_all"`
	Warnings          []string            `json:"warnings"`
	BlockAvailability []BlockAvailability `json:"block_availability"`
}

// CanStart reports whether the precondition for a new run holds: at least
// one approved-but-unallocated student and no job in flight.
func (p *PreAllocationCheck) CanStart(job *AllocationJob) bool {
	if p == nil || p.ApprovedStudents <= 0 {
		return false
	}
	return job == nil || !job.IsRunning
}
