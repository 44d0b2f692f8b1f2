package dto

import "github.com/noah-isme/hostel-portal-api/internal/models"

// AllocationOverview is the initial page load for the trigger-allocation
// screen: each slice may be absent when its upstream fetch failed.
type AllocationOverview struct {
	Status     *models.AllocationJob      `json:"status"`
	LastResult *models.AllocationResult   `json:"last_result,omitempty"`
	PreCheck   *models.PreAllocationCheck `json:"pre_check,omitempty"`
	Polling    bool                       `json:"polling"`
}

// ReportRequest selects the artifact format for an allocation report.
type ReportRequest struct {
	ResultID string `json:"result_id" validate:"required"`
	Format   string `json:"format" validate:"required,oneof=csv pdf"`
}

// ReportDownload is a resolved report artifact.
type ReportDownload struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}
