package repository

import (
	"context"
	"errors"
	"time"

	"sahayak/internal/models"
)

// ErrSessionNotFound is returned when a session id is not present in the
// backing store.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the raw storage behind the session service. It stores
// and returns sessions without interpreting expiry or the active flag; the
// service layer owns that lifecycle logic.
type SessionRepository interface {
	// Put inserts or replaces a session.
	Put(ctx context.Context, session *models.Session) error
	// Get returns a snapshot of the session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Delete removes a session, reporting whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	// Len returns the number of resident sessions.
	Len(ctx context.Context) (int, error)
	// Stats returns the number of resident sessions and how many of them
	// are live (active and unexpired) at the given instant.
	Stats(ctx context.Context, now time.Time) (total, active int, err error)
	// EvictOldest removes up to n sessions in insertion order and returns
	// how many were removed.
	EvictOldest(ctx context.Context, n int) (int, error)
	// PurgeExpired removes every session that is expired or inactive at
	// the given instant and returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
	// Close releases backing resources.
	Close() error
}
