package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/afterschool-console/internal/middleware"
	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/internal/service"
	"github.com/noah-isme/afterschool-console/pkg/response"
)

type pageExporter interface {
	Export(page *models.ViewPage, format string) (*service.ExportFile, error)
}

// ViewHandler synchronizes, inspects and exports console lists.
type ViewHandler struct {
	resolve workspaceResolver
	exports pageExporter
}

// NewViewHandler creates a new view handler.
func NewViewHandler(resolve workspaceResolver, exports pageExporter) *ViewHandler {
	return &ViewHandler{resolve: resolve, exports: exports}
}

type viewSummary struct {
	Name    models.ViewName `json:"name"`
	Title   string          `json:"title"`
	Filters []string        `json:"filters"`
}

// List godoc
// @Summary List views
// @Description Views the session role may open, with the filters each understands
// @Tags Views
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Success 200 {object} response.Envelope
// @Router /console/views [get]
func (h *ViewHandler) List(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	views := []viewSummary{}
	for _, name := range service.ViewsForRole(session.Role) {
		def, _ := service.LookupView(name)
		views = append(views, viewSummary{Name: def.Name, Title: def.Title, Filters: def.Filters()})
	}
	response.JSON(c, http.StatusOK, views, nil)
}

// Synchronize godoc
// @Summary Synchronize view
// @Description Fetch the view with the given filters and return the committed rows
// @Tags Views
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param view path string true "View name"
// @Param role query string false "Role filter (user_roster)"
// @Param name query string false "Name filter (user_roster)"
// @Param keyword query string false "Keyword filter (course views)"
// @Param status query string false "Status filter (course views)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /console/views/{view} [get]
func (h *ViewHandler) Synchronize(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}

	values := map[string]string{}
	for key, vals := range c.Request.URL.Query() {
		if len(vals) > 0 {
			values[key] = vals[0]
		}
	}

	page, err := ws.Synchronize(c.Request.Context(), models.ViewName(c.Param("view")), values)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetMeta(c, "stale", page.Stale)
	response.JSON(c, http.StatusOK, page, middleware.ExtractMeta(c))
}

// Snapshot godoc
// @Summary View snapshot
// @Description Return the committed rows of a view without fetching
// @Tags Views
// @Produce json
// @Param X-Console-Session header string true "Console session id"
// @Param view path string true "View name"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /console/views/{view}/snapshot [get]
func (h *ViewHandler) Snapshot(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	page, err := ws.Page(models.ViewName(c.Param("view")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// Teardown godoc
// @Summary Tear down view
// @Description Discard the view; in-flight responses for it are dropped
// @Tags Views
// @Param X-Console-Session header string true "Console session id"
// @Param view path string true "View name"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /console/views/{view} [delete]
func (h *ViewHandler) Teardown(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	if err := ws.Teardown(models.ViewName(c.Param("view"))); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export view
// @Description Download the rows the view currently shows
// @Tags Views
// @Produce octet-stream
// @Param X-Console-Session header string true "Console session id"
// @Param view path string true "View name"
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /console/views/{view}/export [get]
func (h *ViewHandler) Export(c *gin.Context) {
	ws, ok := workspaceFromContext(c, h.resolve)
	if !ok {
		return
	}
	page, err := ws.Page(models.ViewName(c.Param("view")))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Export(page, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
