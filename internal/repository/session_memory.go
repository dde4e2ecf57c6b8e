package repository

import (
	"context"
	"sync"
	"time"

	"sahayak/internal/models"

	"go.uber.org/zap"
)

// MemorySessionRepository keeps sessions in a map guarded by a single mutex.
// The coarse lock covers all structural mutation; Get hands out clones so
// callers read snapshots without holding the lock.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	order    []string
	logger   *zap.Logger
}

func NewMemorySessionRepository(logger *zap.Logger) *MemorySessionRepository {
	logger.Info("Session repository initialized (in-memory mode)")
	return &MemorySessionRepository{
		sessions: make(map[string]*models.Session),
		logger:   logger,
	}
}

func (r *MemorySessionRepository) Put(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.SessionID]; !exists {
		r.order = append(r.order, session.SessionID)
	}
	r.sessions[session.SessionID] = session.Clone()
	return nil
}

func (r *MemorySessionRepository) Get(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteLocked(id), nil
}

func (r *MemorySessionRepository) deleteLocked(id string) bool {
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *MemorySessionRepository) Len(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions), nil
}

func (r *MemorySessionRepository) Stats(_ context.Context, now time.Time) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := 0
	for _, session := range r.sessions {
		if session.IsActive && !session.Expired(now) {
			active++
		}
	}
	return len(r.sessions), active, nil
}

func (r *MemorySessionRepository) EvictOldest(_ context.Context, n int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n > len(r.order) {
		n = len(r.order)
	}
	oldest := append([]string(nil), r.order[:n]...)
	removed := 0
	for _, id := range oldest {
		if r.deleteLocked(id) {
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("Evicted oldest sessions", zap.Int("count", removed))
	}
	return removed, nil
}

func (r *MemorySessionRepository) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stale []string
	for id, session := range r.sessions {
		if session.Expired(now) || !session.IsActive {
			stale = append(stale, id)
		}
	}
	removed := 0
	for _, id := range stale {
		if r.deleteLocked(id) {
			removed++
		}
	}
	return removed, nil
}

func (r *MemorySessionRepository) Close() error {
	return nil
}
