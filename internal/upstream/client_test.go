package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-portal-api/internal/models"
	"github.com/noah-isme/hostel-portal-api/pkg/config"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(config.UpstreamConfig{
		BaseURL:     server.URL,
		Timeout:     5 * time.Second,
		ReportsPath: "/allocation/report",
	}, nil, nil)
	return client, server
}

type observedCall struct {
	method string
	path   string
	status int
}

type requestObserverStub struct {
	mu    sync.Mutex
	calls []observedCall
}

func (o *requestObserverStub) ObserveUpstreamRequest(method, path string, status int, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, observedCall{method: method, path: path, status: status})
}

func TestRegistrationForwardsBearerAndNormalises(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/hostel/registration", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "submitted",
			"roomId": 42,
			"updatedAt": "2025-09-01T10:00:00Z",
			"documents": [
				{"id": 7, "type": "passport photo", "status": "Verified"},
				{"id": 8, "type": "fee receipt", "status": "pending"}
			]
		}`))
	}))

	ctx := WithToken(context.Background(), "token-123")
	record, err := client.Registration(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, models.StatusSubmitted, record.Status)
	assert.Equal(t, "42", record.RoomID)
	require.Len(t, record.Documents, 2)
	assert.Equal(t, "7", record.Documents[0].ID)
	assert.Equal(t, models.VerificationVerified, record.Documents[0].State)
	assert.Equal(t, models.VerificationPending, record.Documents[1].State)
}

func TestRegistrationNotFoundMeansNotSubmitted(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	record, err := client.Registration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotSubmitted, record.Status)
	assert.Empty(t, record.Documents)
	assert.False(t, record.HasRoom())
}

func TestUnauthorizedMapsToTypedError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "token expired"}`))
	}))

	_, err := client.Registration(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
	assert.Equal(t, "token expired", appErr.Message)
}

func TestBlocksNotFoundMeansNoneConfigured(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	blocks, err := client.Blocks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestReportUsesConfiguredPath(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/allocation/report/run-9", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	}))

	data, contentType, err := client.Report(context.Background(), "run-9", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestAllocationStatusClampsProgress(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"isRunning": true, "progress": 140, "currentStep": "Placing block A"}`))
	}))

	job, err := client.AllocationStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, job.IsRunning)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, "Placing block A", job.CurrentStep)
}

func TestUpstreamBusinessErrorSurfacesMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "cannot allocate, no approved students"}`))
	}))

	err := client.StartAllocation(context.Background())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, "cannot allocate, no approved students", appErr.Message)
}

func TestClientReportsTimingsToObserver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/hostel/registration" {
			_, _ = w.Write([]byte(`{"status": "submitted"}`))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	observer := &requestObserverStub{}
	client := NewClient(config.UpstreamConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, observer, nil)

	_, err := client.Registration(context.Background())
	require.NoError(t, err)
	_, err = client.Rooms(context.Background())
	require.Error(t, err)

	observer.mu.Lock()
	defer observer.mu.Unlock()
	require.Len(t, observer.calls, 2)
	assert.Equal(t, observedCall{method: http.MethodGet, path: "/hostel/registration", status: http.StatusOK}, observer.calls[0])
	assert.Equal(t, http.StatusNotFound, observer.calls[1].status)
}
