package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/internal/middleware"
	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/internal/service"
	"github.com/noah-isme/afterschool-console/pkg/response"
)

type sessionService interface {
	Open(ctx context.Context, req dto.OpenSessionRequest) (*models.Session, error)
	Close(ctx context.Context, id string) error
}

type workspaceCloser interface {
	Close(sessionID string)
}

// SessionHandler opens and closes console sessions.
type SessionHandler struct {
	service    sessionService
	workspaces workspaceCloser
	header     string
}

// NewSessionHandler creates a new handler.
func NewSessionHandler(svc sessionService, workspaces workspaceCloser, header string) *SessionHandler {
	return &SessionHandler{service: svc, workspaces: workspaces, header: header}
}

// Open godoc
// @Summary Open console session
// @Description Hand the backend credential and identity to the console after login
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.OpenSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /console/sessions [post]
func (h *SessionHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindJSON(c, &req, "invalid session payload") {
		return
	}

	session, err := h.service.Open(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, sessionResponse(session, h.header))
}

// Current godoc
// @Summary Current console session
// @Tags Sessions
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /console/sessions/current [get]
func (h *SessionHandler) Current(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, sessionResponse(session, h.header), nil)
}

// Close godoc
// @Summary Close console session
// @Tags Sessions
// @Param X-Console-Session header string true "Console session id"
// @Success 204
// @Failure 401 {object} response.Envelope
// @Router /console/sessions/current [delete]
func (h *SessionHandler) Close(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	if err := h.service.Close(c.Request.Context(), session.ID); err != nil {
		response.Error(c, err)
		return
	}
	if h.workspaces != nil {
		h.workspaces.Close(session.ID)
	}
	response.NoContent(c)
}

func sessionResponse(session *models.Session, header string) dto.SessionResponse {
	res := dto.SessionResponse{
		SessionID: session.ID,
		Header:    header,
		Name:      session.Name,
		Email:     session.Email,
		Role:      string(session.Role),
		RoleLabel: session.Role.Label(),
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
		Views:     []string{},
	}
	for _, view := range service.ViewsForRole(session.Role) {
		res.Views = append(res.Views, string(view))
	}
	return res
}
