package service

import (
	"strings"

	"github.com/noah-isme/afterschool-console/internal/models"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
)

// ComposeQuery turns raw filter control values into a descriptor holding only
// the view's non-empty filters, with role and status reduced to canonical
// codes. It is pure: equal inputs give equal descriptors. Seq stays zero until
// the coordinator issues the fetch.
func ComposeQuery(view models.ViewName, values map[string]string) (models.QueryDescriptor, error) {
	def, ok := LookupView(view)
	if !ok {
		return models.QueryDescriptor{}, appErrors.Clone(appErrors.ErrNotFound, "unknown view "+string(view))
	}

	filters := models.FilterState{}
	for _, name := range def.Filters() {
		value := strings.TrimSpace(values[name])
		if value == "" {
			continue
		}
		switch name {
		case models.FilterRole:
			role, ok := models.NormalizeRole(value)
			if !ok {
				return models.QueryDescriptor{}, appErrors.Clone(appErrors.ErrValidation, "unknown role filter "+value)
			}
			value = string(role)
		case models.FilterStatus:
			status, ok := models.NormalizeStatus(value)
			if !ok {
				return models.QueryDescriptor{}, appErrors.Clone(appErrors.ErrValidation, "unknown status filter "+value)
			}
			value = string(status)
		}
		filters[name] = value
	}

	return models.QueryDescriptor{View: view, Filters: filters}, nil
}
