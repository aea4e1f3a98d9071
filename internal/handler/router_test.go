package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/internal/repository"
	"github.com/noah-isme/afterschool-console/internal/service"
	"github.com/noah-isme/afterschool-console/pkg/backend"
	"github.com/noah-isme/afterschool-console/pkg/config"
)

// rosterBackend serves the user roster and role changes.
type rosterBackend struct {
	mu    sync.Mutex
	roles map[int64]string
}

func (b *rosterBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer opaque-token" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/admin/users":
		role := r.URL.Query().Get("role")
		users := []map[string]interface{}{}
		for id := int64(1); id <= int64(len(b.roles)); id++ {
			if role == "" || b.roles[id] == role {
				users = append(users, map[string]interface{}{"userId": id, "name": "user", "role": b.roles[id]})
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(users)
	case r.Method == http.MethodPut && r.URL.Path == "/api/admin/users/2/role":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.roles[2] = body["role"]
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	srv := httptest.NewServer(&rosterBackend{roles: map[int64]string{1: "TEACHER", 2: "TEACHER", 3: "TEACHER", 4: "STUDENT"}})
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Session: config.SessionConfig{TTL: time.Hour, Header: "X-Console-Session"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	metrics := service.NewMetricsService()
	client := backend.New(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil, metrics)
	sessions := service.NewSessionService(repository.NewSessionRepository(rdb, "", nil), cfg.Session, nil, nil)
	workspaces := service.NewWorkspaceManager(service.WorkspaceDeps{
		NewAdminAPI: func(token string) service.AdminAPI {
			return repository.NewAdminRepository(client, token)
		},
		NewTeacherAPI: func(token string) service.TeacherAPI {
			return repository.NewTeacherCourseRepository(client, token)
		},
		Metrics: metrics,
	}, time.Minute)

	return NewRouter(RouterDeps{
		Config:     cfg,
		Sessions:   sessions,
		Workspaces: workspaces,
		Exports:    service.NewExportService(nil),
		Metrics:    metrics,
	})
}

func serve(router *gin.Engine, method, path, session, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set("X-Console-Session", session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterAdminRosterFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, http.MethodPost, "/console/sessions", "", `{"token":"opaque-token","role":"관리자","name":"Admin"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var opened struct {
		Data dto.SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))
	sessionID := opened.Data.SessionID
	require.NotEmpty(t, sessionID)
	assert.Equal(t, "ADMIN", opened.Data.Role)
	assert.Contains(t, opened.Data.Views, "user_roster")

	rec = serve(router, http.MethodGet, "/console/views/user_roster?role=TEACHER", sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Data struct {
			Users []struct {
				ID int64 `json:"userId"`
			} `json:"users"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data.Users, 3)

	rec = serve(router, http.MethodPut, "/console/admin/users/2/role", sessionID, `{"role":"STUDENT"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodGet, "/console/views/user_roster/snapshot", sessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data.Users, 2)

	rec = serve(router, http.MethodPost, "/console/teacher/courses", sessionID, `{}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(router, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console_transitions_total")

	rec = serve(router, http.MethodDelete, "/console/sessions/current", sessionID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = serve(router, http.MethodGet, "/console/views/user_roster", sessionID, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterRejectsStudentSession(t *testing.T) {
	router := newTestRouter(t)

	rec := serve(router, http.MethodPost, "/console/sessions", "", `{"token":"opaque-token","role":"STUDENT"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(router, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
