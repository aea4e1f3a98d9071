package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/afterschool-console/internal/models"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
)

func newSessionRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionRepository(client, "", nil), mr
}

func TestSessionRepositoryRoundTripKeepsToken(t *testing.T) {
	repo, mr := newSessionRepo(t)
	ctx := context.Background()

	session := &models.Session{ID: "s-1", Token: "bearer-abc", Name: "관리자", Role: models.RoleAdmin}
	require.NoError(t, repo.Save(ctx, session, time.Hour))
	assert.True(t, mr.Exists(DefaultSessionKeyPrefix+"s-1"))
	assert.Equal(t, time.Hour, mr.TTL(DefaultSessionKeyPrefix+"s-1"))

	loaded, err := repo.Find(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "bearer-abc", loaded.Token)
	assert.Equal(t, models.RoleAdmin, loaded.Role)
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo, mr := newSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.Session{ID: "s-2", Token: "t"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := repo.Find(ctx, "s-2")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestSessionRepositoryDiscardsCorruptRecord(t *testing.T) {
	repo, mr := newSessionRepo(t)
	require.NoError(t, mr.Set(DefaultSessionKeyPrefix+"s-3", "{not json"))

	_, err := repo.Find(context.Background(), "s-3")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.False(t, mr.Exists(DefaultSessionKeyPrefix+"s-3"))
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo, mr := newSessionRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &models.Session{ID: "s-4", Token: "t"}, time.Minute))

	require.NoError(t, repo.Delete(ctx, "s-4"))
	require.NoError(t, repo.Delete(ctx, "s-4"))
	assert.False(t, mr.Exists(DefaultSessionKeyPrefix+"s-4"))
}

func TestSessionRepositoryRejectsExpiredTTL(t *testing.T) {
	repo, _ := newSessionRepo(t)
	err := repo.Save(context.Background(), &models.Session{ID: "s-5"}, 0)
	assert.Error(t, err)
}
