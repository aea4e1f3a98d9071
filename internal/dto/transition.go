package dto

import "strings"

// ChangeRoleRequest carries the target role for a roster row.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ChangeCourseStatusRequest carries the admin decision for a course.
type ChangeCourseStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// EnrollRequest identifies the student of a forced enrollment.
type EnrollRequest struct {
	StudentID int64 `json:"studentId" validate:"required,gt=0"`
}

// NoticeRequest is a global notice published by an admin.
type NoticeRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=5000"`
}

// Normalize trims free-text fields.
func (r *NoticeRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
}

// Survey question types accepted by the backend.
const (
	QuestionMultipleChoice = "MULTIPLE_CHOICE"
	QuestionText           = "TEXT"
)

// SurveyQuestion is one question of a global survey. Options is a
// comma-separated list used by multiple-choice questions.
type SurveyQuestion struct {
	QuestionText string `json:"questionText" validate:"required,max=1000"`
	QuestionType string `json:"questionType" validate:"required,oneof=MULTIPLE_CHOICE TEXT"`
	Options      string `json:"options,omitempty"`
}

// SurveyRequest is a global survey published by an admin.
type SurveyRequest struct {
	Title     string           `json:"title" validate:"required,max=200"`
	StartDate string           `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string           `json:"endDate" validate:"required,datetime=2006-01-02"`
	Questions []SurveyQuestion `json:"questions" validate:"required,min=1,dive"`
}

// Normalize trims free-text fields and upper-cases question types.
func (r *SurveyRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	for i := range r.Questions {
		q := &r.Questions[i]
		q.QuestionText = strings.TrimSpace(q.QuestionText)
		q.QuestionType = strings.ToUpper(strings.TrimSpace(q.QuestionType))
		q.Options = strings.TrimSpace(q.Options)
	}
}

// CourseRequest is a teacher's course submission, validated as a whole.
type CourseRequest struct {
	CourseName  string `json:"courseName" validate:"required,max=100"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	CourseDays  string `json:"courseDays" validate:"required,max=50"`
	CourseTime  string `json:"courseTime" validate:"required,max=50"`
	Location    string `json:"location" validate:"required,max=100"`
	Capacity    int    `json:"capacity" validate:"required,min=1"`
	Quarter     int    `json:"quarter" validate:"required,min=1,max=4"`
	EndDate     string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// Normalize trims free-text fields.
func (r *CourseRequest) Normalize() {
	r.CourseName = strings.TrimSpace(r.CourseName)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.CourseDays = strings.TrimSpace(r.CourseDays)
	r.CourseTime = strings.TrimSpace(r.CourseTime)
	r.Location = strings.TrimSpace(r.Location)
	r.EndDate = strings.TrimSpace(r.EndDate)
}

// TransitionResponse reports a confirmed mutation and the views it refreshed.
type TransitionResponse struct {
	Kind           string            `json:"kind"`
	TargetID       string            `json:"targetId,omitempty"`
	RefreshedViews []string          `json:"refreshedViews"`
	RefreshErrors  map[string]string `json:"refreshErrors,omitempty"`
}
