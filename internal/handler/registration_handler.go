package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hostel-portal-api/internal/dto"
	"github.com/noah-isme/hostel-portal-api/internal/service"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
	"github.com/noah-isme/hostel-portal-api/pkg/response"
)

// RegistrationHandler exposes the student registration lifecycle endpoints.
type RegistrationHandler struct {
	registrations *service.RegistrationService
}

// NewRegistrationHandler constructs handler.
func NewRegistrationHandler(registrations *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Status godoc
// @Summary Registration status with timeline
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registration/status [get]
func (h *RegistrationHandler) Status(c *gin.Context) {
	status, err := h.registrations.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Register godoc
// @Summary Submit a new hostel application
// @Tags Registration
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /registration [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var form map[string]interface{}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid application payload"))
		return
	}
	status, err := h.registrations.Register(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, status, nil)
}

// Update godoc
// @Summary Amend an existing hostel application
// @Tags Registration
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registration [put]
func (h *RegistrationHandler) Update(c *gin.Context) {
	var form map[string]interface{}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid application payload"))
		return
	}
	status, err := h.registrations.Update(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Profile godoc
// @Summary Student profile
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/profile [get]
func (h *RegistrationHandler) Profile(c *gin.Context) {
	profile, err := h.registrations.Profile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// UpdateProfile godoc
// @Summary Update student profile
// @Tags Registration
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/profile [put]
func (h *RegistrationHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Fields) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid profile payload"))
		return
	}
	if err := h.registrations.UpdateProfile(c.Request.Context(), req.Fields); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true}, nil)
}

// Overview godoc
// @Summary Admin overview of all registrations
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/registrations [get]
func (h *RegistrationHandler) Overview(c *gin.Context) {
	rows, err := h.registrations.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
