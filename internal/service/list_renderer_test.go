package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-console/internal/models"
)

func enabledActions(states []models.ActionState) []models.Action {
	var out []models.Action
	for _, s := range states {
		if s.Enabled {
			out = append(out, s.Action)
		}
	}
	return out
}

func TestRenderUsersCodeAndLabelRenderIdentically(t *testing.T) {
	rows := RenderUsers([]models.User{
		{ID: 1, Name: "Kim", Role: models.RoleAdmin},
		{ID: 1, Name: "Kim", Role: mustRole(t, "관리자")},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, rows[0], rows[1])
	assert.Equal(t, "관리자", rows[0].RoleLabel)

	require.Len(t, rows[0].RoleOptions, 3)
	assert.Equal(t, []string{"학생", "교사", "관리자"}, []string{rows[0].RoleOptions[0].Label, rows[0].RoleOptions[1].Label, rows[0].RoleOptions[2].Label})
	assert.True(t, rows[0].RoleOptions[2].Selected)
	assert.False(t, rows[0].RoleOptions[0].Selected)
}

func mustRole(t *testing.T, raw string) models.UserRole {
	t.Helper()
	role, ok := models.NormalizeRole(raw)
	require.True(t, ok)
	return role
}

func TestRenderCoursesOverCapacityIsNotClamped(t *testing.T) {
	rows := RenderCourses(RowModeConsolidated, []models.Course{
		{ID: 7, Name: "Robotics", Capacity: 20, CurrentEnrollmentCount: 25, Status: models.CourseStatusApproved},
	}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "25/20", rows[0].Enrollment)
	assert.Equal(t, int64(25), rows[0].EnrollmentCount)
	assert.True(t, rows[0].OverCapacity)
}

func TestRenderCoursesActionTable(t *testing.T) {
	cases := []struct {
		mode   RowMode
		status models.CourseStatus
		want   []models.Action
	}{
		{RowModePendingQueue, models.CourseStatusPending, []models.Action{models.ActionApprove, models.ActionReject}},
		{RowModePendingQueue, models.CourseStatusApproved, nil},
		{RowModePendingQueue, models.CourseStatusRejected, nil},
		{RowModeConsolidated, models.CourseStatusPending, []models.Action{models.ActionApprove, models.ActionReject}},
		{RowModeConsolidated, models.CourseStatusApproved, []models.Action{models.ActionForceEnroll, models.ActionForceUnenroll}},
		{RowModeConsolidated, models.CourseStatusRejected, nil},
		{RowModeConsolidated, models.CourseStatusClosed, nil},
		{RowModeTeacher, models.CourseStatusApproved, []models.Action{models.ActionManage}},
		{RowModeTeacher, models.CourseStatusPending, []models.Action{models.ActionEdit}},
		{RowModeTeacher, models.CourseStatusRejected, []models.Action{models.ActionEdit}},
		{RowModeTeacher, models.CourseStatusClosed, nil},
	}
	for _, tc := range cases {
		rows := RenderCourses(tc.mode, []models.Course{{ID: 1, Capacity: 10, Status: tc.status}}, nil)
		require.Len(t, rows, 1)
		assert.Equal(t, tc.want, enabledActions(rows[0].Actions), "mode %d status %s", tc.mode, tc.status)
	}
}

func TestRenderCoursesUnknownStatusDegradesToPending(t *testing.T) {
	rows := RenderCourses(RowModePendingQueue, []models.Course{{ID: 1, Capacity: 5}}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, models.CourseStatusPending, rows[0].Status)
	assert.Equal(t, models.BadgeWarning, rows[0].Badge)
	assert.Equal(t, "승인 대기", rows[0].StatusLabel)
	assert.Equal(t, []models.Action{models.ActionApprove, models.ActionReject}, enabledActions(rows[0].Actions))
}

func TestBadgeFor(t *testing.T) {
	assert.Equal(t, models.BadgeWarning, BadgeFor(models.CourseStatusPending))
	assert.Equal(t, models.BadgeSuccess, BadgeFor(models.CourseStatusApproved))
	assert.Equal(t, models.BadgeDanger, BadgeFor(models.CourseStatusRejected))
	assert.Equal(t, models.BadgeSecondary, BadgeFor(models.CourseStatusClosed))
	assert.Equal(t, models.BadgeWarning, BadgeFor("ARCHIVED"))
}

func TestRenderCoursesClientSideFilters(t *testing.T) {
	courses := []models.Course{
		{ID: 1, Name: "Robot Coding", TeacherName: "Park", Status: models.CourseStatusApproved, Capacity: 10},
		{ID: 2, Name: "Drawing", TeacherName: "ROBinson", Status: models.CourseStatusPending, Capacity: 10},
		{ID: 3, Name: "Choir", TeacherName: "Lee", Status: models.CourseStatusApproved, Capacity: 10},
	}

	rows := RenderCourses(RowModeConsolidated, courses, models.FilterState{models.FilterKeyword: "rob"})
	assert.Equal(t, []int64{1, 2}, rowIDs(rows))

	rows = RenderCourses(RowModeConsolidated, courses, models.FilterState{models.FilterKeyword: "rob", models.FilterStatus: "APPROVED"})
	assert.Equal(t, []int64{1}, rowIDs(rows))

	rows = RenderCourses(RowModeConsolidated, courses, models.FilterState{models.FilterStatus: "PENDING"})
	assert.Equal(t, []int64{2}, rowIDs(rows))
}

func rowIDs(rows []models.CourseRow) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}
