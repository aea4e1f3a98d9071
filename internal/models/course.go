package models

import (
	"encoding/json"
	"strings"
	"time"
)

// CourseStatus is the canonical lifecycle status of a course.
type CourseStatus string

const (
	CourseStatusPending  CourseStatus = "PENDING"
	CourseStatusApproved CourseStatus = "APPROVED"
	CourseStatusRejected CourseStatus = "REJECTED"
	CourseStatusClosed   CourseStatus = "CLOSED"
)

var statusLabels = map[CourseStatus]string{
	CourseStatusPending:  "승인 대기",
	CourseStatusApproved: "승인",
	CourseStatusRejected: "반려",
	CourseStatusClosed:   "마감",
}

// NormalizeStatus maps a status in any case onto its canonical code.
func NormalizeStatus(raw string) (CourseStatus, bool) {
	status := CourseStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := statusLabels[status]; ok {
		return status, true
	}
	return "", false
}

// Presented returns the status used for display: unknown or missing status
// degrades to PENDING.
func (s CourseStatus) Presented() CourseStatus {
	if _, ok := statusLabels[s]; ok {
		return s
	}
	return CourseStatusPending
}

// Label returns the localized label of the presented status.
func (s CourseStatus) Label() string {
	return statusLabels[s.Presented()]
}

// UnmarshalJSON decodes case-insensitively. Unknown values, null and
// non-string values become "".
func (s *CourseStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = ""
		return nil
	}
	status, _ := NormalizeStatus(raw)
	*s = status
	return nil
}

// Course is a course as returned by the admin and teacher listings.
type Course struct {
	ID                     int64        `json:"courseId"`
	Name                   string       `json:"courseName"`
	TeacherName            string       `json:"teacherName,omitempty"`
	Category               string       `json:"category,omitempty"`
	Description            string       `json:"description,omitempty"`
	CourseDays             string       `json:"courseDays,omitempty"`
	CourseTime             string       `json:"courseTime,omitempty"`
	Location               string       `json:"location,omitempty"`
	Capacity               int          `json:"capacity"`
	CurrentEnrollmentCount int64        `json:"currentEnrollmentCount"`
	Status                 CourseStatus `json:"status"`
	Quarter                int          `json:"quarter,omitempty"`
	EndDate                string       `json:"endDate,omitempty"`
	CreatedAt              *time.Time   `json:"createdAt,omitempty"`
}
