// Package backend is the HTTP transport to the course-management API. It
// performs the call, decodes JSON bodies and turns every non-2xx response
// into a *ResponseError carrying the server's message.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/pkg/config"
	"github.com/noah-isme/afterschool-console/pkg/middleware/requestid"
)

const maxPlainMessage = 512

// Observer receives timing information for each backend round-trip.
type Observer interface {
	ObserveBackendCall(method, route string, status int, duration time.Duration)
}

// Request describes one backend call. Route is the templated path used for
// metrics and logs; Path is the concrete path that is requested.
type Request struct {
	Method string
	Route  string
	Path   string
	Token  string
	Query  map[string]string
	Body   interface{}
	Result interface{}
}

// ResponseError is returned when the backend answers with a non-2xx status.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Message)
}

// Client wraps a resty client bound to the backend base URL.
type Client struct {
	http     *resty.Client
	logger   *zap.Logger
	observer Observer
}

// New builds a backend client. Retries stay disabled: callers decide whether
// to re-trigger a failed gesture.
func New(cfg config.BackendConfig, logger *zap.Logger, observer Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &Client{http: rc, logger: logger, observer: observer}
}

// Do executes the request and decodes a successful body into req.Result.
func (c *Client) Do(ctx context.Context, req Request) error {
	route := req.Route
	if route == "" {
		route = req.Path
	}

	r := c.http.R().SetContext(ctx)
	if req.Token != "" {
		r.SetAuthToken(req.Token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		r.SetHeader(requestid.Header, id)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method, req.Path)
	duration := time.Since(start)
	if err != nil {
		c.observe(req.Method, route, 0, duration)
		c.logger.Warn("backend call failed", zap.String("method", req.Method), zap.String("route", route), zap.Duration("latency", duration), zap.Error(err))
		return fmt.Errorf("%s %s: %w", req.Method, route, err)
	}

	status := resp.StatusCode()
	c.observe(req.Method, route, status, duration)

	if !resp.IsSuccess() {
		respErr := &ResponseError{StatusCode: status, Message: extractMessage(resp.Body())}
		c.logger.Info("backend rejected call", zap.String("method", req.Method), zap.String("route", route), zap.Int("status", status), zap.String("message", respErr.Message))
		return respErr
	}

	if req.Result == nil || status == http.StatusNoContent || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), req.Result); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, route, err)
	}
	return nil
}

func (c *Client) observe(method, route string, status int, duration time.Duration) {
	if c.observer != nil {
		c.observer.ObserveBackendCall(method, route, status, duration)
	}
}

// extractMessage prefers the JSON "message" field, then "error", then a short
// plain-text body.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		return strings.TrimSpace(payload.Error)
	}
	if strings.HasPrefix(trimmed, "<") {
		return ""
	}
	if len(trimmed) > maxPlainMessage {
		trimmed = trimmed[:maxPlainMessage]
	}
	return trimmed
}
