package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-console/internal/dto"
	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/pkg/config"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
)

type memorySessionStore struct {
	items map[string]*models.Session
	ttls  map[string]time.Duration
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{items: map[string]*models.Session{}, ttls: map[string]time.Duration{}}
}

func (m *memorySessionStore) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	cp := *session
	m.items[session.ID] = &cp
	m.ttls[session.ID] = ttl
	return nil
}

func (m *memorySessionStore) Find(ctx context.Context, id string) (*models.Session, error) {
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
}

func (m *memorySessionStore) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "admin@school.kr", ExpiresAt: jwt.NewNumericDate(exp)})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newSessionService(store *memorySessionStore, secret string) *SessionService {
	svc := NewSessionService(store, config.SessionConfig{TTL: 12 * time.Hour, JWTSecret: secret}, nil, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestOpenSessionNormalizesLabelRole(t *testing.T) {
	store := newMemorySessionStore()
	svc := newSessionService(store, "")

	session, err := svc.Open(context.Background(), dto.OpenSessionRequest{Token: "opaque-token", Role: "관리자", Name: " Kim "})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, session.Role)
	assert.Equal(t, "Kim", session.Name)
	assert.Equal(t, 12*time.Hour, store.ttls[session.ID])

	resolved, err := svc.Resolve(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", resolved.Token)
}

func TestOpenSessionCapsTTLAtTokenExpiry(t *testing.T) {
	store := newMemorySessionStore()
	svc := newSessionService(store, "secret")

	token := signToken(t, "secret", fixedNow.Add(time.Hour))
	session, err := svc.Open(context.Background(), dto.OpenSessionRequest{Token: "Bearer " + token, Role: "TEACHER"})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, store.ttls[session.ID])
	assert.Equal(t, fixedNow.Add(time.Hour), session.ExpiresAt)
}

func TestOpenSessionRejectsBadSignature(t *testing.T) {
	svc := newSessionService(newMemorySessionStore(), "secret")
	token := signToken(t, "other", fixedNow.Add(time.Hour))

	_, err := svc.Open(context.Background(), dto.OpenSessionRequest{Token: token, Role: "ADMIN"})
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestOpenSessionRejectsExpiredUnverifiedToken(t *testing.T) {
	svc := newSessionService(newMemorySessionStore(), "")
	token := signToken(t, "whatever", fixedNow.Add(-time.Minute))

	_, err := svc.Open(context.Background(), dto.OpenSessionRequest{Token: token, Role: "ADMIN"})
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestOpenSessionRejectsStudents(t *testing.T) {
	svc := newSessionService(newMemorySessionStore(), "")
	_, err := svc.Open(context.Background(), dto.OpenSessionRequest{Token: "t", Role: "학생"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestOpenSessionValidatesPayload(t *testing.T) {
	svc := newSessionService(newMemorySessionStore(), "")
	_, err := svc.Open(context.Background(), dto.OpenSessionRequest{Role: "ADMIN"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestResolveAndCloseSession(t *testing.T) {
	store := newMemorySessionStore()
	svc := newSessionService(store, "")

	_, err := svc.Resolve(context.Background(), "")
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	session, err := svc.Open(context.Background(), dto.OpenSessionRequest{Token: "t", Role: "TEACHER"})
	require.NoError(t, err)
	require.NoError(t, svc.Close(context.Background(), session.ID))

	_, err = svc.Resolve(context.Background(), session.ID)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestResolveRejectsExpiredSession(t *testing.T) {
	store := newMemorySessionStore()
	svc := newSessionService(store, "")
	session, err := svc.Open(context.Background(), dto.OpenSessionRequest{Token: "t", Role: "ADMIN"})
	require.NoError(t, err)

	svc.now = func() time.Time { return fixedNow.Add(13 * time.Hour) }
	_, err = svc.Resolve(context.Background(), session.ID)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}
