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

// RoomHandler exposes the room inventory endpoints.
type RoomHandler struct {
	rooms     *service.RoomService
	validator *validator.Validate
}

// NewRoomHandler constructs handler.
func NewRoomHandler(rooms *service.RoomService, validate *validator.Validate) *RoomHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &RoomHandler{rooms: rooms, validator: validate}
}

// List godoc
// @Summary List hostel rooms
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.Rooms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// Blocks godoc
// @Summary List hostel blocks with capacity summaries
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms/blocks [get]
func (h *RoomHandler) Blocks(c *gin.Context) {
	blocks, err := h.rooms.Blocks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks, nil)
}

// Create godoc
// @Summary Register a new room
// @Tags Rooms
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /admin/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid room payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload"))
		return
	}
	room, err := h.rooms.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Update godoc
// @Summary Patch room attributes
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /admin/rooms/{id} [patch]
func (h *RoomHandler) Update(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid room payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload"))
		return
	}
	room, err := h.rooms.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// Delete godoc
// @Summary Remove a room
// @Tags Rooms
// @Param id path string true "Room ID"
// @Success 204
// @Router /admin/rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.rooms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
