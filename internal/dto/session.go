package dto

// OpenSessionRequest is the login handoff the front-end posts after
// authenticating against the backend.
type OpenSessionRequest struct {
	Token  string `json:"token" validate:"required"`
	Role   string `json:"role" validate:"required"`
	Name   string `json:"name" validate:"omitempty,max=100"`
	Email  string `json:"email" validate:"omitempty,email"`
	UserID int64  `json:"userId" validate:"gte=0"`
}

// SessionResponse is returned when a session is opened or inspected.
type SessionResponse struct {
	SessionID string   `json:"sessionId"`
	Header    string   `json:"header"`
	Name      string   `json:"name"`
	Email     string   `json:"email,omitempty"`
	Role      string   `json:"role"`
	RoleLabel string   `json:"roleLabel"`
	ExpiresAt string   `json:"expiresAt"`
	Views     []string `json:"views"`
}
