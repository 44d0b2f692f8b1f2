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

// DocumentHandler exposes the document upload and verification endpoints.
type DocumentHandler struct {
	documents *service.DocumentService
	validator *validator.Validate
}

// NewDocumentHandler constructs handler.
func NewDocumentHandler(documents *service.DocumentService, validate *validator.Validate) *DocumentHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &DocumentHandler{documents: documents, validator: validate}
}

// Checklist godoc
// @Summary Document checklist with upload state
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /documents [get]
func (h *DocumentHandler) Checklist(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	checklist, err := h.documents.Checklist(c.Request.Context(), claims.SubjectID())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, checklist, nil)
}

// Upload godoc
// @Summary Upload a document into a category
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param category formData string true "Category ID"
// @Param file formData file true "Document file"
// @Success 201 {object} response.Envelope
// @Router /documents/upload [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "a file is required"))
		return
	}

	req := dto.UploadRequest{
		CategoryID: c.PostForm("category"),
		FileName:   fileHeader.Filename,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		Size:       fileHeader.Size,
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid upload request"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read uploaded file"))
		return
	}
	defer file.Close() //nolint:errcheck

	uploaded, err := h.documents.Upload(c.Request.Context(), claims.SubjectID(), req, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, uploaded, nil)
}

// Remove godoc
// @Summary Remove an uploaded document
// @Tags Documents
// @Produce json
// @Param id path string true "File ID"
// @Success 204
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Remove(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.documents.Remove(c.Request.Context(), claims.SubjectID(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Download godoc
// @Summary Download a stored document
// @Tags Documents
// @Produce octet-stream
// @Param id path string true "File ID"
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	data, contentType, err := h.documents.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

// Submit godoc
// @Summary Submit all uploaded documents
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /documents/submit [post]
func (h *DocumentHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.documents.SubmitAll(c.Request.Context(), claims.SubjectID()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"submitted": true}, nil)
}

// Edit godoc
// @Summary Reopen the checklist for editing
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /documents/edit [post]
func (h *DocumentHandler) Edit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.documents.Edit(c.Request.Context(), claims.SubjectID()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"submitted": false}, nil)
}

// Pending godoc
// @Summary Admin queue of students with documents awaiting review
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/documents/pending [get]
func (h *DocumentHandler) Pending(c *gin.Context) {
	pending, err := h.documents.Pending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pending, nil)
}

// Verify godoc
// @Summary Record a verification verdict for a student's document
// @Tags Documents
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /admin/documents/verify/{studentId} [patch]
func (h *DocumentHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid verification payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid verification payload"))
		return
	}
	if err := h.documents.Verify(c.Request.Context(), c.Param("studentId"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"verified": true}, nil)
}
