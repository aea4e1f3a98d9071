package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/pkg/response"
)

// AdminHandler binds admin gestures to the session's transition executor.
type AdminHandler struct {
	resolve workspaceResolver
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(resolve workspaceResolver) *AdminHandler {
	return &AdminHandler{resolve: resolve}
}

// ChangeRole godoc
// @Summary Change user role
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param id path int true "User ID"
// @Param payload body dto.ChangeRoleRequest true "Role payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/admin/users/{id}/role [put]
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if !bindJSON(c, &req, "invalid role payload") {
		return
	}

	outcome, err := ws.ChangeUserRole(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transitionResponse(outcome), nil)
}

// DeleteUser godoc
// @Summary Delete user
// @Tags Admin
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	outcome, err := ws.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transitionResponse(outcome), nil)
}

// ChangeCourseStatus godoc
// @Summary Approve or reject course
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param id path int true "Course ID"
// @Param payload body dto.ChangeCourseStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/admin/courses/{id}/status [put]
func (h *AdminHandler) ChangeCourseStatus(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ChangeCourseStatusRequest
	if !bindJSON(c, &req, "invalid status payload") {
		return
	}

	outcome, err := ws.ChangeCourseStatus(c.Request.Context(), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transitionResponse(outcome), nil)
}

// ForceEnroll godoc
// @Summary Force enroll student
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param id path int true "Course ID"
// @Param payload body dto.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/admin/courses/{id}/enrollments [post]
func (h *AdminHandler) ForceEnroll(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if !bindJSON(c, &req, "invalid enrollment payload") {
		return
	}

	outcome, err := ws.ForceEnroll(c.Request.Context(), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, transitionResponse(outcome))
}

// ForceUnenroll godoc
// @Summary Force unenroll student
// @Tags Admin
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/admin/courses/{id}/enrollments/{studentId} [delete]
func (h *AdminHandler) ForceUnenroll(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	studentID, ok := pathID(c, "studentId")
	if !ok {
		return
	}

	outcome, err := ws.ForceUnenroll(c.Request.Context(), courseID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transitionResponse(outcome), nil)
}

// CreateNotice godoc
// @Summary Publish global notice
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param payload body dto.NoticeRequest true "Notice payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/admin/notices [post]
func (h *AdminHandler) CreateNotice(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	var req dto.NoticeRequest
	if !bindJSON(c, &req, "invalid notice payload") {
		return
	}

	outcome, err := ws.CreateNotice(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, transitionResponse(outcome))
}

// CreateSurvey godoc
// @Summary Publish global survey
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param payload body dto.SurveyRequest true "Survey payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/admin/surveys [post]
func (h *AdminHandler) CreateSurvey(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	var req dto.SurveyRequest
	if !bindJSON(c, &req, "invalid survey payload") {
		return
	}

	outcome, err := ws.CreateSurvey(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, transitionResponse(outcome))
}
