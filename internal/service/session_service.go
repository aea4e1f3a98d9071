package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/pkg/config"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
)

type sessionStore interface {
	Save(ctx context.Context, session *models.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionService opens, resolves and closes console sessions. The session is
// the single place the bearer credential and the caller's role come from.
type SessionService struct {
	store     sessionStore
	cfg       config.SessionConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(store sessionStore, cfg config.SessionConfig, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	return &SessionService{store: store, cfg: cfg, validator: validate, logger: logger, now: time.Now}
}

// Open validates the login handoff and stores a new session. Only staff
// roles may open the console.
func (s *SessionService) Open(ctx context.Context, req dto.OpenSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	role, ok := models.NormalizeRole(req.Role)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role "+req.Role)
	}
	if role != models.RoleAdmin && role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "the console is limited to teachers and administrators")
	}

	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(req.Token), "Bearer "))
	now := s.now()
	expiresAt := now.Add(s.cfg.TTL)
	tokenExpiry, err := s.tokenExpiry(token)
	if err != nil {
		return nil, err
	}
	if tokenExpiry != nil {
		if !tokenExpiry.After(now) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token already expired")
		}
		if tokenExpiry.Before(expiresAt) {
			expiresAt = *tokenExpiry
		}
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    req.UserID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Role:      role,
		CreatedAt: now.UTC(),
		ExpiresAt: expiresAt.UTC(),
	}
	if err := s.store.Save(ctx, session, expiresAt.Sub(now)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	s.logger.Info("console session opened", zap.String("session_id", session.ID), zap.String("role", string(role)))
	return session, nil
}

// Resolve loads the session addressed by id.
func (s *SessionService) Resolve(ctx context.Context, id string) (*models.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing console session")
	}
	session, err := s.store.Find(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "console session expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.Expired(s.now()) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "console session expired")
	}
	return session, nil
}

// Close ends the session.
func (s *SessionService) Close(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close session")
	}
	return nil
}

// tokenExpiry reads the exp claim of the bearer token. With a configured
// secret the token must be a valid HS256 JWT; without one the claims are read
// unverified and opaque tokens are accepted as-is.
func (s *SessionService) tokenExpiry(token string) (*time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if s.cfg.JWTSecret != "" {
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(s.cfg.JWTSecret), nil
		}, jwt.WithTimeFunc(s.now))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
		}
		if !parsed.Valid {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
		}
	} else if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.logger.Debug("treating console token as opaque", zap.Error(err))
		return nil, nil
	}
	if claims.ExpiresAt == nil {
		return nil, nil
	}
	exp := claims.ExpiresAt.Time
	return &exp, nil
}
