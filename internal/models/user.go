package models

import (
	"encoding/json"
	"strings"
)

// UserRole is the canonical role code used by the backend.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

var roleLabels = map[UserRole]string{
	RoleStudent: "학생",
	RoleTeacher: "교사",
	RoleAdmin:   "관리자",
}

// Roles lists every role in selector order.
func Roles() []UserRole {
	return []UserRole{RoleStudent, RoleTeacher, RoleAdmin}
}

// NormalizeRole maps a role code (any case, optional ROLE_ prefix) or its
// localized label onto the canonical role.
func NormalizeRole(raw string) (UserRole, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	for role, label := range roleLabels {
		if value == label {
			return role, true
		}
	}
	code := UserRole(strings.TrimPrefix(strings.ToUpper(value), "ROLE_"))
	if _, ok := roleLabels[code]; ok {
		return code, true
	}
	return "", false
}

// Label returns the localized label, falling back to the raw code.
func (r UserRole) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// Valid reports whether r is one of the canonical roles.
func (r UserRole) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// UnmarshalJSON normalizes codes and labels at the ingestion boundary. An
// unrecognized value is kept verbatim so rendering can still show it.
func (r *UserRole) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if role, ok := NormalizeRole(raw); ok {
		*r = role
		return nil
	}
	*r = UserRole(strings.TrimSpace(raw))
	return nil
}

// User is a roster entry as returned by the backend.
type User struct {
	ID    int64    `json:"userId"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}
