package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"sahayak/internal/models"
	"sahayak/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSessionService(ttl time.Duration, maxSessions int) *SessionService {
	repo := repository.NewMemorySessionRepository(zap.NewNop())
	return NewSessionService(repo, ttl, maxSessions, zap.NewNop())
}

func TestSessionCreateAndGet(t *testing.T) {
	svc := newTestSessionService(30*time.Minute, 100)
	ctx := context.Background()

	session, err := svc.Create(ctx, "hi", "user-1", map[string]string{"state": "Bihar"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.SessionID, "sess_"))
	assert.True(t, session.IsActive)
	assert.Equal(t, "Bihar", session.Context.CollectedInformation["state"])

	got, err := svc.Get(ctx, session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.SessionID, got.SessionID)
	assert.Equal(t, "hi", got.Language)

	missing, err := svc.Get(ctx, "sess_unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionUpdateAppendsAndSlidesExpiry(t *testing.T) {
	svc := newTestSessionService(30*time.Minute, 100)
	ctx := context.Background()

	session, err := svc.Create(ctx, "hi", "", nil)
	require.NoError(t, err)
	firstExpiry := session.ExpiresAt

	intent := models.IntentSchemeDiscovery
	updated, err := svc.Update(ctx, session.SessionID,
		&models.Message{Role: models.RoleUser, Content: "mujhe yojana chahiye", Language: "hi"},
		&models.ContextUpdate{
			Intent:           &intent,
			Info:             map[string]string{"occupation": "farmer"},
			MentionedSchemes: []string{"PM-KISAN-001"},
		})
	require.NoError(t, err)
	require.NotNil(t, updated)

	require.Len(t, updated.Messages, 1)
	assert.Equal(t, models.RoleUser, updated.Messages[0].Role)
	assert.False(t, updated.Messages[0].Timestamp.IsZero())
	assert.Equal(t, models.IntentSchemeDiscovery, updated.Context.CurrentIntent)
	assert.Equal(t, "farmer", updated.Context.CollectedInformation["occupation"])
	assert.Equal(t, []string{"PM-KISAN-001"}, updated.Context.MentionedSchemes)
	assert.False(t, updated.ExpiresAt.Before(firstExpiry))

	// Tagged context merges extend lists and overwrite scalars.
	topic := "pension"
	again, err := svc.Update(ctx, session.SessionID, nil, &models.ContextUpdate{
		MentionedSchemes: []string{"APY-007"},
		Topic:            &topic,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"PM-KISAN-001", "APY-007"}, again.Context.MentionedSchemes)
	assert.Equal(t, "pension", again.Context.LastTopic)
}

func TestSessionExpiryPurgedOnGet(t *testing.T) {
	svc := newTestSessionService(-time.Minute, 100)
	ctx := context.Background()

	session, err := svc.Create(ctx, "en", "", nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// The expired entry was removed, not just hidden.
	count, err := svc.repo.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSessionEndIsSoft(t *testing.T) {
	svc := newTestSessionService(30*time.Minute, 100)
	ctx := context.Background()

	session, err := svc.Create(ctx, "en", "", nil)
	require.NoError(t, err)

	ended, err := svc.End(ctx, session.SessionID)
	require.NoError(t, err)
	assert.True(t, ended)

	// Ended sessions read as gone but stay resident until swept.
	got, err := svc.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, got)

	count, err := svc.repo.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ended, err = svc.End(ctx, "sess_unknown")
	require.NoError(t, err)
	assert.False(t, ended)
}

func TestSessionDelete(t *testing.T) {
	svc := newTestSessionService(30*time.Minute, 100)
	ctx := context.Background()

	session, err := svc.Create(ctx, "en", "", nil)
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, session.SessionID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Delete(ctx, session.SessionID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSessionHistoryLimit(t *testing.T) {
	svc := newTestSessionService(30*time.Minute, 100)
	ctx := context.Background()

	session, err := svc.Create(ctx, "en", "", nil)
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		_, err := svc.Update(ctx, session.SessionID,
			&models.Message{Role: models.RoleUser, Content: fmt.Sprintf("message %d", i)}, nil)
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, session.SessionID, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "message 4", history[0].Content)
	assert.Equal(t, "message 6", history[2].Content)

	all, err := svc.History(ctx, session.SessionID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	none, err := svc.History(ctx, "sess_unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSessionCapacityEviction(t *testing.T) {
	svc := newTestSessionService(30*time.Minute, 10)
	ctx := context.Background()

	ids := make([]string, 0, 11)
	for i := 0; i < 11; i++ {
		session, err := svc.Create(ctx, "en", "", nil)
		require.NoError(t, err)
		ids = append(ids, session.SessionID)
	}

	// Crossing the cap evicts the oldest entries by insertion order.
	oldest, err := svc.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Nil(t, oldest)

	newest, err := svc.Get(ctx, ids[10])
	require.NoError(t, err)
	assert.NotNil(t, newest)
}

func TestSessionSweepRemovesExpiredAndEnded(t *testing.T) {
	svc := newTestSessionService(30*time.Minute, 100)
	ctx := context.Background()

	keep, err := svc.Create(ctx, "en", "", nil)
	require.NoError(t, err)
	ended, err := svc.Create(ctx, "en", "", nil)
	require.NoError(t, err)

	_, err = svc.End(ctx, ended.SessionID)
	require.NoError(t, err)

	svc.Sweep(ctx)

	count, err := svc.repo.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	still, err := svc.Get(ctx, keep.SessionID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestSessionStats(t *testing.T) {
	svc := newTestSessionService(30*time.Minute, 100)
	ctx := context.Background()

	_, err := svc.Create(ctx, "hi", "", nil)
	require.NoError(t, err)
	ended, err := svc.Create(ctx, "hi", "", nil)
	require.NoError(t, err)

	_, err = svc.End(ctx, ended.SessionID)
	require.NoError(t, err)

	total, active, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, active)
}

func TestSessionConcurrentUpdates(t *testing.T) {
	svc := newTestSessionService(30*time.Minute, 1000)
	ctx := context.Background()

	session, err := svc.Create(ctx, "en", "", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.Update(ctx, session.SessionID,
				&models.Message{Role: models.RoleUser, Content: fmt.Sprintf("turn %d", n)}, nil)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := svc.Get(ctx, session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEmpty(t, got.Messages)
}
