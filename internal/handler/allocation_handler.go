package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/hostel-portal-api/internal/dto"
	"github.com/noah-isme/hostel-portal-api/internal/service"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
	"github.com/noah-isme/hostel-portal-api/pkg/response"
)

// AllocationHandler exposes the admin allocation trigger endpoints.
type AllocationHandler struct {
	allocations *service.AllocationService
	reports     *service.ReportService
	validator   *validator.Validate
}

// NewAllocationHandler constructs handler.
func NewAllocationHandler(allocations *service.AllocationService, reports *service.ReportService, validate *validator.Validate) *AllocationHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &AllocationHandler{allocations: allocations, reports: reports, validator: validate}
}

// Overview godoc
// @Summary Allocation page state: status, last result, pre-check
// @Tags Allocation
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/allocation [get]
func (h *AllocationHandler) Overview(c *gin.Context) {
	overview, err := h.allocations.Load(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// Start godoc
// @Summary Trigger a new allocation run
// @Tags Allocation
// @Produce json
// @Success 202 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /admin/allocation/start [post]
func (h *AllocationHandler) Start(c *gin.Context) {
	overview, err := h.allocations.Start(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, overview, nil)
}

// Status godoc
// @Summary Current allocation run status
// @Tags Allocation
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/allocation/status [get]
func (h *AllocationHandler) Status(c *gin.Context) {
	job := h.allocations.Status(c.Request.Context())
	response.JSON(c, http.StatusOK, job, nil)
}

// Report godoc
// @Summary Download the allocation report
// @Tags Allocation
// @Produce octet-stream
// @Param id path string true "Allocation result ID"
// @Param format query string true "Report format (csv or pdf)"
// @Router /admin/allocation/reports/{id} [get]
func (h *AllocationHandler) Report(c *gin.Context) {
	req := dto.ReportRequest{
		ResultID: c.Param("id"),
		Format:   c.DefaultQuery("format", "csv"),
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report request"))
		return
	}

	download, err := h.reports.Download(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+download.FileName+"\"")
	c.Data(http.StatusOK, download.ContentType, download.Data)
}
