package models

import "time"

// Session is the explicit identity context of one console user. It is opened
// once from the login handoff and passed to everything that needs the
// caller's credential or role.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	UserID    int64     `json:"userId,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
