package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/internal/models"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
)

// DefaultSessionKeyPrefix namespaces console sessions in Redis.
const DefaultSessionKeyPrefix = "console:session:"

type sessionRecord struct {
	models.Session
	Token string `json:"token"`
}

// SessionRepository stores console sessions in Redis with a TTL matching
// the session expiry.
type SessionRepository struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(client *redis.Client, prefix string, logger *zap.Logger) *SessionRepository {
	if prefix == "" {
		prefix = DefaultSessionKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{client: client, prefix: prefix, logger: logger}
}

func (r *SessionRepository) key(id string) string {
	return r.prefix + id
}

// Save persists the session until ttl elapses.
func (r *SessionRepository) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id required")
	}
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	payload, err := json.Marshal(sessionRecord{Session: *session, Token: session.Token})
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, r.key(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", session.ID, err)
	}
	return nil
}

// Find loads a session. A missing or expired key yields appErrors.ErrNotFound.
func (r *SessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}

	var record sessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		r.logger.Warn("discarding unreadable session", zap.String("session_id", id), zap.Error(err))
		_ = r.client.Del(ctx, r.key(id)).Err()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	session := record.Session
	session.Token = record.Token
	return &session, nil
}

// Delete removes a session; deleting a missing session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}
