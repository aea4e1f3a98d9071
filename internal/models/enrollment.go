package models

// Enrollment identifies a (course, student) relation targeted by a forced
// enrollment override.
type Enrollment struct {
	CourseID  int64 `json:"courseId"`
	StudentID int64 `json:"studentId"`
}
