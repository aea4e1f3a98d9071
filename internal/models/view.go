package models

// ViewName identifies a synchronized console list.
type ViewName string

const (
	ViewUserRoster     ViewName = "user_roster"
	ViewPendingCourses ViewName = "pending_courses"
	ViewAllCourses     ViewName = "all_courses"
	ViewMyCourses      ViewName = "my_courses"
)

// Badge is the presentation color class of a status.
type Badge string

const (
	BadgeWarning   Badge = "warning"
	BadgeSuccess   Badge = "success"
	BadgeDanger    Badge = "danger"
	BadgeSecondary Badge = "secondary"
)

// Action names a row gesture.
type Action string

const (
	ActionChangeRole    Action = "change_role"
	ActionDeleteUser    Action = "delete"
	ActionApprove       Action = "approve"
	ActionReject        Action = "reject"
	ActionForceEnroll   Action = "force_enroll"
	ActionForceUnenroll Action = "force_unenroll"
	ActionManage        Action = "manage"
	ActionEdit          Action = "edit"
)

// ActionState is a row button and whether it is enabled.
type ActionState struct {
	Action  Action `json:"action"`
	Enabled bool   `json:"enabled"`
}

// RoleOption is one entry of a roster row's role selector.
type RoleOption struct {
	Value    UserRole `json:"value"`
	Label    string   `json:"label"`
	Selected bool     `json:"selected"`
}

// UserRow is the rendered roster row.
type UserRow struct {
	ID          int64         `json:"userId"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Role        UserRole      `json:"role"`
	RoleLabel   string        `json:"roleLabel"`
	RoleOptions []RoleOption  `json:"roleOptions"`
	Actions     []ActionState `json:"actions"`
}

// CourseRow is the rendered course row shared by admin and teacher lists.
type CourseRow struct {
	ID              int64         `json:"courseId"`
	Name            string        `json:"courseName"`
	TeacherName     string        `json:"teacherName,omitempty"`
	Category        string        `json:"category,omitempty"`
	Schedule        string        `json:"schedule,omitempty"`
	Location        string        `json:"location,omitempty"`
	Quarter         int           `json:"quarter,omitempty"`
	EndDate         string        `json:"endDate,omitempty"`
	Status          CourseStatus  `json:"status"`
	StatusLabel     string        `json:"statusLabel"`
	Badge           Badge         `json:"badge"`
	Enrollment      string        `json:"enrollment"`
	EnrollmentCount int64         `json:"enrollmentCount"`
	Capacity        int           `json:"capacity"`
	OverCapacity    bool          `json:"overCapacity"`
	Actions         []ActionState `json:"actions"`
}

// ViewPage is what a synchronized view hands to the rendering surface.
type ViewPage struct {
	View     ViewName    `json:"view"`
	Seq      uint64      `json:"seq"`
	Filters  FilterState `json:"filters"`
	Total    int         `json:"total"`
	Users    []UserRow   `json:"users,omitempty"`
	Courses  []CourseRow `json:"courses,omitempty"`
	Stale    bool        `json:"stale,omitempty"`
	Mounted  bool        `json:"mounted"`
	Warnings []string    `json:"warnings,omitempty"`
}

// Len returns the number of rendered rows.
func (p ViewPage) Len() int {
	return len(p.Users) + len(p.Courses)
}
