package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/pkg/response"
)

// TeacherHandler binds teacher course gestures.
type TeacherHandler struct {
	resolve workspaceResolver
}

// NewTeacherHandler creates a new teacher handler.
func NewTeacherHandler(resolve workspaceResolver) *TeacherHandler {
	return &TeacherHandler{resolve: resolve}
}

// CreateCourse godoc
// @Summary Create course
// @Description Submit a new course for approval
// @Tags Teacher
// @Accept json
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/teacher/courses [post]
func (h *TeacherHandler) CreateCourse(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !bindJSON(c, &req, "invalid course payload") {
		return
	}

	outcome, err := ws.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, transitionResponse(outcome))
}

// UpdateCourse godoc
// @Summary Update course
// @Tags Teacher
// @Accept json
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param id path int true "Course ID"
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/teacher/courses/{id} [put]
func (h *TeacherHandler) UpdateCourse(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !bindJSON(c, &req, "invalid course payload") {
		return
	}

	outcome, err := ws.UpdateCourse(c.Request.Context(), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transitionResponse(outcome), nil)
}
