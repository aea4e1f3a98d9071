package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/afterschool-console/internal/models"
)

var statusBadges = map[models.CourseStatus]models.Badge{
	models.CourseStatusPending:  models.BadgeWarning,
	models.CourseStatusApproved: models.BadgeSuccess,
	models.CourseStatusRejected: models.BadgeDanger,
	models.CourseStatusClosed:   models.BadgeSecondary,
}

// BadgeFor maps a status onto its badge; unknown status renders as PENDING.
func BadgeFor(status models.CourseStatus) models.Badge {
	return statusBadges[status.Presented()]
}

// RenderUsers projects roster entries into rows with a pre-selected role
// selector. Roster filters are applied by the backend.
func RenderUsers(users []models.User) []models.UserRow {
	rows := make([]models.UserRow, 0, len(users))
	for _, u := range users {
		options := make([]models.RoleOption, 0, 3)
		for _, role := range models.Roles() {
			options = append(options, models.RoleOption{Value: role, Label: role.Label(), Selected: role == u.Role})
		}
		rows = append(rows, models.UserRow{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			Role:        u.Role,
			RoleLabel:   u.Role.Label(),
			RoleOptions: options,
			Actions: []models.ActionState{
				{Action: models.ActionChangeRole, Enabled: u.Role.Valid()},
				{Action: models.ActionDeleteUser, Enabled: true},
			},
		})
	}
	return rows
}

// RenderCourses applies the client-side keyword and status filters and
// projects the remaining courses into rows for mode.
func RenderCourses(mode RowMode, courses []models.Course, filters models.FilterState) []models.CourseRow {
	keyword := strings.ToLower(filters.Get(models.FilterKeyword))
	status := strings.ToLower(filters.Get(models.FilterStatus))

	rows := make([]models.CourseRow, 0, len(courses))
	for _, c := range courses {
		presented := c.Status.Presented()
		if keyword != "" && !matchesKeyword(c, keyword) {
			continue
		}
		if status != "" && strings.ToLower(string(presented)) != status {
			continue
		}
		rows = append(rows, models.CourseRow{
			ID:              c.ID,
			Name:            c.Name,
			TeacherName:     c.TeacherName,
			Category:        c.Category,
			Schedule:        strings.TrimSpace(c.CourseDays + " " + c.CourseTime),
			Location:        c.Location,
			Quarter:         c.Quarter,
			EndDate:         c.EndDate,
			Status:          presented,
			StatusLabel:     presented.Label(),
			Badge:           BadgeFor(presented),
			Enrollment:      fmt.Sprintf("%d/%d", c.CurrentEnrollmentCount, c.Capacity),
			EnrollmentCount: c.CurrentEnrollmentCount,
			Capacity:        c.Capacity,
			OverCapacity:    c.CurrentEnrollmentCount > int64(c.Capacity),
			Actions:         courseActions(mode, presented),
		})
	}
	return rows
}

func matchesKeyword(c models.Course, keyword string) bool {
	return strings.Contains(strings.ToLower(c.Name), keyword) ||
		strings.Contains(strings.ToLower(c.TeacherName), keyword)
}

func courseActions(mode RowMode, status models.CourseStatus) []models.ActionState {
	pending := status == models.CourseStatusPending
	approved := status == models.CourseStatusApproved
	switch mode {
	case RowModePendingQueue:
		return []models.ActionState{
			{Action: models.ActionApprove, Enabled: pending},
			{Action: models.ActionReject, Enabled: pending},
		}
	case RowModeConsolidated:
		return []models.ActionState{
			{Action: models.ActionApprove, Enabled: pending},
			{Action: models.ActionReject, Enabled: pending},
			{Action: models.ActionForceEnroll, Enabled: approved},
			{Action: models.ActionForceUnenroll, Enabled: approved},
		}
	case RowModeTeacher:
		return []models.ActionState{
			{Action: models.ActionManage, Enabled: approved},
			{Action: models.ActionEdit, Enabled: pending || status == models.CourseStatusRejected},
		}
	default:
		return nil
	}
}
