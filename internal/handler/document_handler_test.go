package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-portal-api/internal/middleware"
	"github.com/noah-isme/hostel-portal-api/internal/models"
	"github.com/noah-isme/hostel-portal-api/internal/service"
)

type documentClientMock struct {
	files    []models.DocumentFile
	uploads  []string
	deletes  []string
	applied  int
	verdicts []string
}

func (m *documentClientMock) MyDocuments(ctx context.Context, studentID string) ([]models.DocumentFile, error) {
	return m.files, nil
}

func (m *documentClientMock) UploadDocument(ctx context.Context, studentID, docType, fileName string, file io.Reader) (*models.DocumentFile, error) {
	m.uploads = append(m.uploads, fileName)
	return &models.DocumentFile{ID: "up-1", FileName: fileName, Type: docType}, nil
}

func (m *documentClientMock) DeleteDocument(ctx context.Context, fileID string) error {
	m.deletes = append(m.deletes, fileID)
	return nil
}

func (m *documentClientMock) DownloadDocument(ctx context.Context, fileID string) ([]byte, string, error) {
	return []byte("binary"), "image/png", nil
}

func (m *documentClientMock) PendingDocuments(ctx context.Context) ([]models.PendingDocument, error) {
	return []models.PendingDocument{{StudentID: "stu-1"}}, nil
}

func (m *documentClientMock) VerifyDocument(ctx context.Context, studentID, documentID string, state models.VerificationState, reason string) error {
	m.verdicts = append(m.verdicts, documentID+":"+string(state))
	return nil
}

func (m *documentClientMock) Apply(ctx context.Context, documents []models.SubmissionEntry) error {
	m.applied++
	return nil
}

type submissionStoreMock struct {
	flags map[string]bool
}

func (m *submissionStoreMock) MarkSubmitted(ctx context.Context, studentID string) error {
	m.flags[studentID] = true
	return nil
}

func (m *submissionStoreMock) ClearSubmitted(ctx context.Context, studentID string) error {
	delete(m.flags, studentID)
	return nil
}

func (m *submissionStoreMock) IsSubmitted(ctx context.Context, studentID string) (bool, error) {
	return m.flags[studentID], nil
}

func newDocumentHandler(client *documentClientMock) *DocumentHandler {
	store := &submissionStoreMock{flags: map[string]bool{}}
	svc := service.NewDocumentService(client, store, 2<<20, 5<<20, nil)
	return NewDocumentHandler(svc, nil)
}

func studentClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-1", StudentID: "stu-1", Role: models.RoleStudent}
}

func newMultipartContext(t *testing.T, category, fileName string, content []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("category", category))
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/documents/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req
	return c, w
}

func TestDocumentHandlerChecklistRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDocumentHandler(&documentClientMock{})

	c, w := newGinContext(http.MethodGet, "/documents", nil)
	handler.Checklist(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDocumentHandlerChecklist(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := &documentClientMock{files: []models.DocumentFile{
		{ID: "f1", Type: models.CategoryPassportPhoto, State: models.VerificationPending},
	}}
	handler := newDocumentHandler(client)

	c, w := newGinContext(http.MethodGet, "/documents", nil)
	c.Set(middleware.ContextUserKey, studentClaims())
	handler.Checklist(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)
	assert.Equal(t, false, data["all_required_uploaded"])
	categories, ok := data["categories"].([]interface{})
	require.True(t, ok)
	assert.Len(t, categories, 3)
}

func TestDocumentHandlerUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := &documentClientMock{}
	handler := newDocumentHandler(client)

	c, w := newMultipartContext(t, "passport-photos", "photo.jpg", []byte("jpeg-bytes"))
	c.Set(middleware.ContextUserKey, studentClaims())
	handler.Upload(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"photo.jpg"}, client.uploads)
}

func TestDocumentHandlerUploadRejectsBadExtension(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := &documentClientMock{}
	handler := newDocumentHandler(client)

	c, w := newMultipartContext(t, "passport-photos", "malware.exe", []byte("mz"))
	c.Set(middleware.ContextUserKey, studentClaims())
	handler.Upload(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, client.uploads)
}

func TestDocumentHandlerSubmitGuardsMissingDocuments(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := &documentClientMock{files: []models.DocumentFile{
		{ID: "f1", Type: models.CategoryPassportPhoto, State: models.VerificationPending},
	}}
	handler := newDocumentHandler(client)

	c, w := newGinContext(http.MethodPost, "/documents/submit", nil)
	c.Set(middleware.ContextUserKey, studentClaims())
	handler.Submit(c)

	require.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.Zero(t, client.applied)
}

func TestDocumentHandlerSubmitAndEdit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := &documentClientMock{files: []models.DocumentFile{
		{ID: "f1", Type: models.CategoryPassportPhoto, FileName: "p.jpg"},
		{ID: "f2", Type: models.CategoryFeeReceipt, FileName: "r.pdf"},
		{ID: "f3", Type: models.CategoryHallDues, FileName: "h.pdf"},
	}}
	handler := newDocumentHandler(client)

	c, w := newGinContext(http.MethodPost, "/documents/submit", nil)
	c.Set(middleware.ContextUserKey, studentClaims())
	handler.Submit(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, client.applied)

	c, w = newGinContext(http.MethodPost, "/documents/edit", nil)
	c.Set(middleware.ContextUserKey, studentClaims())
	handler.Edit(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDocumentHandlerVerify(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := &documentClientMock{}
	handler := newDocumentHandler(client)

	payload := []byte(`{"document_id":"d1","status":"rejected","reason":"blurry photo"}`)
	c, w := newGinContext(http.MethodPatch, "/admin/documents/verify/stu-1", payload)
	c.Params = gin.Params{{Key: "studentId", Value: "stu-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin", Role: models.RoleAdmin})
	handler.Verify(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"d1:rejected"}, client.verdicts)
}
