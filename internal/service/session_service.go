package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"sahayak/internal/models"
	"sahayak/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService owns the conversation session lifecycle: creation with TTL,
// sliding-window expiry on update, soft/hard deletion, capacity eviction and
// the periodic expiry sweep.
type SessionService struct {
	repo        repository.SessionRepository
	ttl         time.Duration
	maxSessions int
	logger      *zap.Logger
	sweeping    atomic.Bool
}

func NewSessionService(repo repository.SessionRepository, ttl time.Duration, maxSessions int, logger *zap.Logger) *SessionService {
	return &SessionService{
		repo:        repo,
		ttl:         ttl,
		maxSessions: maxSessions,
		logger:      logger,
	}
}

// Create starts a new session in the given language, seeding the context
// with any supplied key/values. When the store grows past its configured
// maximum the oldest tenth of entries is evicted.
func (s *SessionService) Create(ctx context.Context, language, userID string, initialContext map[string]string) (*models.Session, error) {
	now := time.Now().UTC()
	session := &models.Session{
		SessionID: newSessionID(),
		UserID:    userID,
		Language:  language,
		Context: models.ConversationContext{
			CollectedInformation: copyMap(initialContext),
		},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		IsActive:  true,
	}

	if err := s.repo.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if count, err := s.repo.Len(ctx); err == nil && count > s.maxSessions {
		// Coarse policy: drop the oldest ~10% by insertion order.
		n := count / 10
		if n < 1 {
			n = 1
		}
		if _, err := s.repo.EvictOldest(ctx, n); err != nil {
			s.logger.Error("Session eviction failed", zap.Error(err))
		}
	}

	s.logger.Info("Created session",
		zap.String("session_id", session.SessionID),
		zap.String("language", language),
	)
	return session, nil
}

// Get returns the session or nil when it is missing, expired or ended.
// An expired session is purged from the store as a side effect.
func (s *SessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrSessionNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	if session.Expired(time.Now().UTC()) {
		if _, err := s.repo.Delete(ctx, id); err != nil {
			s.logger.Error("Failed to purge expired session", zap.String("session_id", id), zap.Error(err))
		}
		return nil, nil
	}
	if !session.IsActive {
		return nil, nil
	}
	return session, nil
}

// Update appends a message and/or merges a context update into the session,
// then slides the expiry window forward. Returns nil when the session cannot
// be fetched (missing, expired or ended).
func (s *SessionService) Update(ctx context.Context, id string, message *models.Message, update *models.ContextUpdate) (*models.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil || session == nil {
		return nil, err
	}

	if message != nil {
		msg := *message
		if msg.Timestamp.IsZero() {
			msg.Timestamp = time.Now().UTC()
		}
		session.Messages = append(session.Messages, msg)
	}
	if update != nil {
		session.Context.Apply(*update)
	}

	now := time.Now().UTC()
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(s.ttl)

	if err := s.repo.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session %s: %w", id, err)
	}

	s.logger.Debug("Updated session", zap.String("session_id", id))
	return session, nil
}

// End soft-deletes the session, keeping its history in the store until the
// sweep removes it. Returns false when the session is not resident.
func (s *SessionService) End(ctx context.Context, id string) (bool, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrSessionNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to end session %s: %w", id, err)
	}

	session.IsActive = false
	session.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, session); err != nil {
		return false, fmt.Errorf("failed to end session %s: %w", id, err)
	}

	s.logger.Info("Ended session", zap.String("session_id", id))
	return true, nil
}

// Delete hard-removes the session.
func (s *SessionService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if removed {
		s.logger.Info("Deleted session", zap.String("session_id", id))
	}
	return removed, nil
}

// History returns the last limit messages in arrival order, most recent
// last. A missing session yields an empty history.
func (s *SessionService) History(ctx context.Context, id string, limit int) ([]models.Message, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return []models.Message{}, nil
	}
	messages := session.Messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

// Stats reports how many sessions are resident and how many of them are
// still live.
func (s *SessionService) Stats(ctx context.Context) (total, active int, err error) {
	total, active, err = s.repo.Stats(ctx, time.Now().UTC())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to collect session stats: %w", err)
	}
	return total, active, nil
}

// Sweep purges expired and inactive sessions once. Only one sweep runs at a
// time; overlapping calls return immediately.
func (s *SessionService) Sweep(ctx context.Context) {
	if !s.sweeping.CompareAndSwap(false, true) {
		return
	}
	defer s.sweeping.Store(false)

	removed, err := s.repo.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("Session sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Cleaned up expired sessions", zap.Int("count", removed))
	}
}

// RunSweeper sweeps on the given interval until the context is cancelled.
func (s *SessionService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func newSessionID() string {
	return "sess_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}

func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
