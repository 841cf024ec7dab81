package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/govhub/helpdesk-portal/internal/config"
	"github.com/govhub/helpdesk-portal/internal/observability"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID attaches the portal request id so it is forwarded upstream.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// Request describes one call to the helpdesk REST API.
type Request struct {
	Method string
	// Path is relative to the base URL, e.g. "/tickets/123".
	Path string
	// Endpoint is the path template used as a metrics label, e.g. "/tickets/:id".
	Endpoint string
	Token    string
	Body     any
}

// Client talks JSON to the helpdesk REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// New builds a client for cfg.BaseURL.
func New(cfg config.BackendConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
		metrics: metrics,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Do performs req and decodes a 2xx JSON body into out (when out is non-nil).
// Transport failures become BACKEND_UNAVAILABLE; non-2xx responses keep the
// backend's message. Nothing is retried.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Path
	}
	start := time.Now()

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return apperrors.NewInternalError(fmt.Errorf("encode %s %s: %w", req.Method, endpoint, err))
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	if rid, ok := ctx.Value(requestIDKey).(string); ok && rid != "" {
		httpReq.Header.Set("X-Request-Id", rid)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.metrics.RecordBackend(req.Method, endpoint, "transport_error", time.Since(start))
		c.logger.Error("backend unreachable",
			zap.String("method", req.Method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return apperrors.NewUnavailable(ctx.Err())
		}
		return apperrors.NewUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		c.metrics.RecordBackend(req.Method, endpoint, "transport_error", time.Since(start))
		return apperrors.NewUnavailable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RecordBackend(req.Method, endpoint, fmt.Sprintf("status_%d", resp.StatusCode), time.Since(start))
		msg := errorMessage(raw)
		c.logger.Warn("backend rejected request",
			zap.String("method", req.Method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return apperrors.NewBackendError(resp.StatusCode, msg)
	}

	c.metrics.RecordBackend(req.Method, endpoint, "ok", time.Since(start))
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Error("backend response undecodable",
			zap.String("method", req.Method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return apperrors.NewBackendError(http.StatusBadGateway, "unexpected response from helpdesk backend")
	}
	return nil
}

// Get is shorthand for a GET request.
func (c *Client) Get(ctx context.Context, token, path, endpoint string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Endpoint: endpoint, Token: token}, out)
}

// Post is shorthand for a POST request.
func (c *Client) Post(ctx context.Context, token, path, endpoint string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Endpoint: endpoint, Token: token, Body: body}, out)
}

// Put is shorthand for a PUT request.
func (c *Client) Put(ctx context.Context, token, path, endpoint string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Endpoint: endpoint, Token: token, Body: body}, out)
}

// Delete is shorthand for a DELETE request. Some backend deletes take a body.
func (c *Client) Delete(ctx context.Context, token, path, endpoint string, body any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Endpoint: endpoint, Token: token, Body: body}, nil)
}

// Ping checks that the backend answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/departments", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend status %d", resp.StatusCode)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}
