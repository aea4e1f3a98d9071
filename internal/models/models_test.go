package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoleDecodesCodesAndLabels(t *testing.T) {
	var users []User
	payload := `[
		{"userId":1,"name":"A","email":"a@x","role":"ADMIN"},
		{"userId":2,"name":"B","email":"b@x","role":"관리자"},
		{"userId":3,"name":"C","email":"c@x","role":"teacher"},
		{"userId":4,"name":"D","email":"d@x","role":"ROLE_STUDENT"},
		{"userId":5,"name":"E","email":"e@x","role":"GUEST"}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &users))

	assert.Equal(t, RoleAdmin, users[0].Role)
	assert.Equal(t, RoleAdmin, users[1].Role)
	assert.Equal(t, RoleTeacher, users[2].Role)
	assert.Equal(t, RoleStudent, users[3].Role)
	assert.Equal(t, UserRole("GUEST"), users[4].Role)
	assert.False(t, users[4].Role.Valid())
	assert.Equal(t, "관리자", users[1].Role.Label())
}

func TestCourseStatusDecoding(t *testing.T) {
	var courses []Course
	payload := `[
		{"courseId":1,"status":"approved","capacity":20,"currentEnrollmentCount":25},
		{"courseId":2,"status":"ARCHIVED"},
		{"courseId":3},
		{"courseId":4,"status":null,"createdAt":"2024-03-01T09:00:00Z","endDate":"2024-06-30"},
		{"courseId":5,"status":3},
		{"courseId":6,"status":{"code":"APPROVED"}}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &courses))

	assert.Equal(t, CourseStatusApproved, courses[0].Status)
	assert.Equal(t, int64(25), courses[0].CurrentEnrollmentCount)
	assert.Equal(t, CourseStatus(""), courses[1].Status)
	assert.Equal(t, CourseStatus(""), courses[2].Status)
	assert.Equal(t, CourseStatusPending, courses[3].Status.Presented())
	require.NotNil(t, courses[3].CreatedAt)
	assert.Equal(t, "2024-06-30", courses[3].EndDate)
	require.Len(t, courses, 6)
	assert.Equal(t, CourseStatusPending, courses[4].Status.Presented())
	assert.Equal(t, CourseStatus(""), courses[5].Status)
}

func TestFilterStateHelpers(t *testing.T) {
	f := FilterState{FilterRole: "TEACHER", FilterKeyword: "robot"}
	clone := f.Clone()
	clone[FilterName] = "kim"

	assert.Len(t, f, 2)
	assert.Equal(t, FilterState{FilterRole: "TEACHER"}, f.Only(FilterRole, FilterName))
	assert.Equal(t, FilterState{FilterRole: "TEACHER", FilterKeyword: "robot"}, f)
	assert.Equal(t, "kim", clone[FilterName])
}
