package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/noah-isme/hostel-portal-api/internal/models"
)

type allocationStatusPayload struct {
	IsRunning           bool       `json:"isRunning"`
	Progress            int        `json:"progress"`
	CurrentStep         string     `json:"currentStep"`
	StartTime           *time.Time `json:"startTime"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion"`
}

// AllocationStatus polls the state of the server-side allocation run.
func (c *Client) AllocationStatus(ctx context.Context) (*models.AllocationJob, error) {
	var payload allocationStatusPayload
	if err := c.doJSON(ctx, http.MethodGet, "/allocation/status", nil, nil, &payload); err != nil {
		return nil, err
	}
	progress := payload.Progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return &models.AllocationJob{
		IsRunning:           payload.IsRunning,
		Progress:            progress,
		CurrentStep:         payload.CurrentStep,
		StartTime:           payload.StartTime,
		EstimatedCompletion: payload.EstimatedCompletion,
	}, nil
}

type preCheckPayload struct {
	ApprovedStudents  int      `json:"approvedStudents"`
	AvailableSpaces   int      `json:"availableSpaces"`
	CanAllocateAll    bool     `json:"canAllocateAll"`
	Warnings          []string `json:"warnings"`
	BlockAvailability []struct {
		Block             string `json:"block"`
		AvailableSpaces   int    `json:"availableSpaces"`
		EstimatedStudents int    `json:"estimatedStudents"`
	} `json:"blockAvailability"`
}

// PreCheck fetches the eligibility snapshot gating the start command.
func (c *Client) PreCheck(ctx context.Context) (*models.PreAllocationCheck, error) {
	var payload preCheckPayload
	if err := c.doJSON(ctx, http.MethodGet, "/allocation/pre-check", nil, nil, &payload); err != nil {
		return nil, err
	}
	check := &models.PreAllocationCheck{
		ApprovedStudents: payload.ApprovedStudents,
		AvailableSpaces:  payload.AvailableSpaces,
		CanAllocateAll:   payload.CanAllocateAll,
		Warnings:         payload.Warnings,
	}
	for _, block := range payload.BlockAvailability {
		check.BlockAvailability = append(check.BlockAvailability, models.BlockAvailability{
			Block:             block.Block,
			AvailableSpaces:   block.AvailableSpaces,
			EstimatedStudents: block.EstimatedStudents,
		})
	}
	return check, nil
}

// StartAllocation triggers a new server-side allocation run.
func (c *Client) StartAllocation(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/allocation/start", nil, nil, nil)
}

type allocationResultPayload struct {
	ID                  flexID     `json:"id"`
	Timestamp           *time.Time `json:"timestamp"`
	Status              string     `json:"status"`
	StudentsAllocated   int        `json:"studentsAllocated"`
	StudentsUnallocated int        `json:"studentsUnallocated"`
	TotalStudents       int        `json:"totalStudents"`
	Errors              []string   `json:"errors"`
	Conflicts           []struct {
		StudentID   flexID `json:"studentId"`
		StudentName string `json:"studentName"`
		Issue       string `json:"issue"`
	} `json:"conflicts"`
	Allocations []struct {
		StudentID    flexID `json:"studentId"`
		StudentName  string `json:"studentName"`
		MatricNumber string `json:"matricNumber"`
		Block        string `json:"block"`
		RoomNumber   string `json:"roomNumber"`
	} `json:"allocations"`
}

// LastResult fetches the outcome of the most recent allocation run.
func (c *Client) LastResult(ctx context.Context) (*models.AllocationResult, error) {
	var payload allocationResultPayload
	if err := c.doJSON(ctx, http.MethodGet, "/allocation/last-result", nil, nil, &payload); err != nil {
		return nil, err
	}
	result := &models.AllocationResult{
		ID:                  payload.ID.String(),
		Status:              models.ParseResultStatus(payload.Status),
		StudentsAllocated:   payload.StudentsAllocated,
		StudentsUnallocated: payload.StudentsUnallocated,
		TotalStudents:       payload.TotalStudents,
		Errors:              payload.Errors,
	}
	if payload.Timestamp != nil {
		result.Timestamp = *payload.Timestamp
	}
	for _, conflict := range payload.Conflicts {
		result.Conflicts = append(result.Conflicts, models.AllocationConflict{
			StudentID:   conflict.StudentID.String(),
			StudentName: conflict.StudentName,
			Issue:       conflict.Issue,
		})
	}
	for _, entry := range payload.Allocations {
		result.Allocations = append(result.Allocations, models.AllocationEntry{
			StudentID:    entry.StudentID.String(),
			StudentName:  entry.StudentName,
			MatricNumber: entry.MatricNumber,
			Block:        entry.Block,
			RoomNumber:   entry.RoomNumber,
		})
	}
	return result, nil
}

// Report fetches the rendered allocation report for a result id. The path is
// a single configured value; the legacy client probed several candidates.
func (c *Client) Report(ctx context.Context, resultID, format string) ([]byte, string, error) {
	query := url.Values{}
	query.Set("format", format)
	path := strings.TrimRight(c.reportsPath, "/") + "/" + url.PathEscape(resultID)
	return c.doRaw(ctx, path, query)
}
