package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/pkg/config"
	"github.com/noah-isme/afterschool-console/pkg/middleware/requestid"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveBackendCall(method, route string, status int, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, method+" "+route)
}

func TestClientDoDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "TEACHER", r.URL.Query().Get("role"))
		assert.Equal(t, "req-42", r.Header.Get(requestid.Header))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Kim"}]`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := New(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}, zap.NewNop(), obs)

	var out []map[string]string
	ctx := requestid.WithValue(context.Background(), "req-42")
	err := client.Do(ctx, Request{Method: http.MethodGet, Route: "/api/admin/users", Path: "/api/admin/users", Token: "token-1", Query: map[string]string{"role": "TEACHER"}, Result: &out})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Kim", out[0]["name"])
	assert.Equal(t, []string{"GET /api/admin/users"}, obs.calls)
}

func TestClientDoSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "APPROVED", body["status"])
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(config.BackendConfig{BaseURL: srv.URL}, nil, nil)
	err := client.Do(context.Background(), Request{Method: http.MethodPut, Path: "/api/admin/courses/7/status", Body: map[string]string{"status": "APPROVED"}})
	require.NoError(t, err)
}

func TestClientDoSurfacesBackendMessage(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "message field", status: http.StatusNotFound, body: `{"error":"Not Found","message":"수강 정보를 찾을 수 없습니다."}`, message: "수강 정보를 찾을 수 없습니다."},
		{name: "error field", status: http.StatusForbidden, body: `{"error":"Forbidden"}`, message: "Forbidden"},
		{name: "plain text", status: http.StatusBadRequest, body: "이미 수강 신청된 학생입니다.", message: "이미 수강 신청된 학생입니다."},
		{name: "html page", status: http.StatusBadGateway, body: "<html>bad gateway</html>", message: ""},
		{name: "empty", status: http.StatusInternalServerError, body: "", message: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := New(config.BackendConfig{BaseURL: srv.URL}, nil, nil)
			err := client.Do(context.Background(), Request{Method: http.MethodDelete, Path: "/api/admin/courses/1/unenroll/2"})

			var respErr *ResponseError
			require.True(t, errors.As(err, &respErr))
			assert.Equal(t, tc.status, respErr.StatusCode)
			assert.Equal(t, tc.message, respErr.Message)
		})
	}
}

func TestClientDoTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := New(config.BackendConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil, nil)
	err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/admin/courses"})
	require.Error(t, err)

	var respErr *ResponseError
	assert.False(t, errors.As(err, &respErr))
}
