package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TransitionKind names a mutation applied through the console.
type TransitionKind string

const (
	TransitionChangeRole   TransitionKind = "CHANGE_ROLE"
	TransitionDeleteUser   TransitionKind = "DELETE_USER"
	TransitionCourseStatus TransitionKind = "CHANGE_COURSE_STATUS"
	TransitionForceEnroll  TransitionKind = "FORCE_ENROLL"
	TransitionForceUnenrol TransitionKind = "FORCE_UNENROLL"
	TransitionCreateCourse TransitionKind = "CREATE_COURSE"
	TransitionUpdateCourse TransitionKind = "UPDATE_COURSE"
	TransitionCreateNotice TransitionKind = "CREATE_NOTICE"
	TransitionCreateSurvey TransitionKind = "CREATE_SURVEY"
)

// Transition outcomes recorded in the journal and metrics.
const (
	OutcomeSucceeded = "SUCCEEDED"
	OutcomeFailed    = "FAILED"
	OutcomeRejected  = "REJECTED"
)

// AuditEntry is one row of the transition journal.
type AuditEntry struct {
	ID        string             `db:"id" json:"id"`
	SessionID string             `db:"session_id" json:"session_id"`
	ActorRole UserRole           `db:"actor_role" json:"actor_role"`
	ActorName string             `db:"actor_name" json:"actor_name"`
	Kind      TransitionKind     `db:"kind" json:"kind"`
	TargetID  string             `db:"target_id" json:"target_id"`
	Payload   types.NullJSONText `db:"payload" json:"payload"`
	Outcome   string             `db:"outcome" json:"outcome"`
	Message   string             `db:"message" json:"message,omitempty"`
	RequestID string             `db:"request_id" json:"request_id,omitempty"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}
