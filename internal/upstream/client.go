// Package upstream is the typed boundary to the hostel REST service. All
// payload normalisation happens here so the loosely shaped upstream JSON
// (optional fields, drifting enum casing, numeric ids) never leaks into the
// rest of the gateway.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hostel-portal-api/pkg/config"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
)

type tokenKey struct{}

// WithToken returns a context carrying the caller's bearer token. Every
// upstream call forwards it unchanged.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom extracts the forwarded bearer token, if any.
func TokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestObserver receives timing for every upstream call that produced a
// response. A nil observer disables instrumentation.
type RequestObserver interface {
	ObserveUpstreamRequest(method, path string, status int, duration time.Duration)
}

// Client talks to the upstream hostel service.
type Client struct {
	baseURL     string
	reportsPath string
	httpClient  *http.Client
	observer    RequestObserver
	logger      *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.UpstreamConfig, observer RequestObserver, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		reportsPath: cfg.ReportsPath,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		observer:    observer,
		logger:      logger,
	}
}

// errorBody captures the message shapes the upstream service uses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal upstream request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "hostel service unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck
	c.observe(method, path, resp.StatusCode, started)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
	}
	return nil
}

// doRaw fetches a binary artifact, returning the bytes and content type.
func (c *Client) doRaw(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, "", err
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "hostel service unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck
	c.observe(http.MethodGet, path, resp.StatusCode, started)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, "", c.statusError(resp.StatusCode, data)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// doMultipart uploads a file as a multipart form under the given field name.
func (c *Client) doMultipart(ctx context.Context, path string, field, fileName string, file io.Reader, fields map[string]string, out interface{}) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(field, fileName)
	if err != nil {
		return fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy upload data: %w", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write multipart field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "hostel service unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck
	c.observe(http.MethodPost, path, resp.StatusCode, started)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upload response")
	}
	return nil
}

func (c *Client) observe(method, path string, status int, started time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstreamRequest(method, path, status, time.Since(started))
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) statusError(status int, body []byte) error {
	message := upstreamMessage(body)
	switch status {
	case http.StatusUnauthorized:
		return appErrors.Clone(appErrors.ErrUnauthorized, message)
	case http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, message)
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	default:
		if message == "" {
			message = fmt.Sprintf("upstream returned status %d", status)
		}
		c.logger.Sugar().Warnw("upstream error", "status", status, "message", message)
		return appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, message)
	}
}

func upstreamMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	return parsed.Message
}

// flexID accepts the string-or-number ids the upstream service emits.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }
