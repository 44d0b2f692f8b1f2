package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-portal-api/internal/middleware"
	"github.com/noah-isme/hostel-portal-api/internal/models"
	"github.com/noah-isme/hostel-portal-api/internal/service"
	"github.com/noah-isme/hostel-portal-api/pkg/response"
)

type registrationClientMock struct {
	record    *models.RegistrationRecord
	recordErr error
	forms     []map[string]interface{}
}

func (m *registrationClientMock) Registration(ctx context.Context) (*models.RegistrationRecord, error) {
	return m.record, m.recordErr
}

func (m *registrationClientMock) Register(ctx context.Context, form map[string]interface{}) error {
	m.forms = append(m.forms, form)
	return nil
}

func (m *registrationClientMock) UpdateRegistration(ctx context.Context, form map[string]interface{}) error {
	m.forms = append(m.forms, form)
	return nil
}

func (m *registrationClientMock) Profile(ctx context.Context) (*models.StudentProfile, error) {
	return &models.StudentProfile{ID: "stu-1", FullName: "Ada Obi"}, nil
}

func (m *registrationClientMock) UpdateProfile(ctx context.Context, fields map[string]interface{}) error {
	return nil
}

func (m *registrationClientMock) RegistrationsOverview(ctx context.Context) ([]models.RegistrationOverview, error) {
	return []models.RegistrationOverview{{StudentID: "stu-1", Status: models.StatusSubmitted}}, nil
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestRegistrationHandlerStatusNotSubmitted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &registrationClientMock{record: models.NotSubmittedRecord()}
	handler := NewRegistrationHandler(service.NewRegistrationService(mock, nil, nil))

	c, w := newGinContext(http.MethodGet, "/registration/status", nil)
	handler.Status(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)
	assert.Equal(t, "Not Submitted", data["label"])
	assert.Equal(t, float64(0), data["progress"])
	steps, ok := data["steps"].([]interface{})
	require.True(t, ok)
	assert.Len(t, steps, 4)
}

func TestRegistrationHandlerStatusAllocated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &registrationClientMock{record: &models.RegistrationRecord{
		Status: models.StatusApproved,
		RoomID: "room-12",
		Documents: []models.DocumentStatus{
			{ID: "d1", State: models.VerificationVerified},
		},
	}}
	handler := NewRegistrationHandler(service.NewRegistrationService(mock, nil, nil))

	c, w := newGinContext(http.MethodGet, "/registration/status", nil)
	handler.Status(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)
	assert.Equal(t, "Room Allocated", data["label"])
	assert.Equal(t, float64(100), data["progress"])
}

func TestRegistrationHandlerRegisterRejectsBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &registrationClientMock{record: models.NotSubmittedRecord()}
	handler := NewRegistrationHandler(service.NewRegistrationService(mock, nil, nil))

	c, w := newGinContext(http.MethodPost, "/registration", []byte("not-json"))
	handler.Register(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mock.forms)
}

func TestRegistrationHandlerRegisterForwardsForm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &registrationClientMock{record: models.NotSubmittedRecord()}
	handler := NewRegistrationHandler(service.NewRegistrationService(mock, nil, nil))

	payload, _ := json.Marshal(map[string]interface{}{"level": "300", "department": "CSC"})
	c, w := newGinContext(http.MethodPost, "/registration", payload)
	handler.Register(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, mock.forms, 1)
	assert.Equal(t, "300", mock.forms[0]["level"])
}

func TestRegistrationHandlerOverview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &registrationClientMock{}
	handler := NewRegistrationHandler(service.NewRegistrationService(mock, nil, nil))

	c, w := newGinContext(http.MethodGet, "/admin/registrations", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	handler.Overview(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
}
