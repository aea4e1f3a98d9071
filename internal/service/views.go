package service

import (
	"github.com/noah-isme/afterschool-console/internal/models"
)

// RowMode selects the action table applied to course rows.
type RowMode int

const (
	RowModeRoster RowMode = iota
	RowModePendingQueue
	RowModeConsolidated
	RowModeTeacher
)

// ViewDefinition describes one console list: who may open it, which
// filters travel to the backend and which the renderer applies locally.
type ViewDefinition struct {
	Name   models.ViewName
	Title  string
	Role   models.UserRole
	Pushed []string
	Local  []string
	Mode   RowMode
}

// Filters returns every filter the view understands.
func (d ViewDefinition) Filters() []string {
	out := make([]string, 0, len(d.Pushed)+len(d.Local))
	out = append(out, d.Pushed...)
	return append(out, d.Local...)
}

var viewCatalog = map[models.ViewName]ViewDefinition{
	models.ViewUserRoster: {
		Name:   models.ViewUserRoster,
		Title:  "User roster",
		Role:   models.RoleAdmin,
		Pushed: []string{models.FilterRole, models.FilterName},
		Mode:   RowModeRoster,
	},
	models.ViewPendingCourses: {
		Name:  models.ViewPendingCourses,
		Title: "Pending courses",
		Role:  models.RoleAdmin,
		Local: []string{models.FilterKeyword, models.FilterStatus},
		Mode:  RowModePendingQueue,
	},
	models.ViewAllCourses: {
		Name:  models.ViewAllCourses,
		Title: "All courses",
		Role:  models.RoleAdmin,
		Local: []string{models.FilterKeyword, models.FilterStatus},
		Mode:  RowModeConsolidated,
	},
	models.ViewMyCourses: {
		Name:  models.ViewMyCourses,
		Title: "My courses",
		Role:  models.RoleTeacher,
		Local: []string{models.FilterKeyword, models.FilterStatus},
		Mode:  RowModeTeacher,
	},
}

// LookupView returns the definition of a view by name.
func LookupView(name models.ViewName) (ViewDefinition, bool) {
	def, ok := viewCatalog[name]
	return def, ok
}

// ViewsForRole lists the views a role may open, in a stable order.
func ViewsForRole(role models.UserRole) []models.ViewName {
	order := []models.ViewName{models.ViewUserRoster, models.ViewPendingCourses, models.ViewAllCourses, models.ViewMyCourses}
	var out []models.ViewName
	for _, name := range order {
		if viewCatalog[name].Role == role {
			out = append(out, name)
		}
	}
	return out
}
