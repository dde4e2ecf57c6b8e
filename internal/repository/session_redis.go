package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sahayak/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "sahayak:session:"

// RedisSessionRepository stores sessions as JSON values with a native Redis
// TTL. Capacity eviction and the expiry sweep become no-ops here: Redis
// expires keys on its own, and memory pressure is handled by the server's
// maxmemory policy.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisSessionRepository(ctx context.Context, addr, password string, db int, ttl time.Duration, logger *zap.Logger) (*RedisSessionRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Session repository initialized (redis mode)", zap.String("addr", addr))
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func (r *RedisSessionRepository) Put(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	// Keep the key a little past the logical expiry so lazy purge still
	// observes the expired session rather than a silent miss.
	ttl := time.Until(session.ExpiresAt) + time.Minute
	if ttl < time.Minute {
		ttl = time.Minute
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.SessionID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	payload, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.client.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return removed > 0, nil
}

func (r *RedisSessionRepository) Len(ctx context.Context) (int, error) {
	var count int
	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return count, nil
}

// Stats walks the resident keys and decodes each value to classify it. The
// session population is small enough that the extra round trips do not
// matter; this endpoint exists for operators, not the hot path.
func (r *RedisSessionRepository) Stats(ctx context.Context, now time.Time) (int, int, error) {
	total, active := 0, 0
	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		total++
		payload, err := r.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			// Expired between scan and fetch.
			total--
			continue
		}
		if err != nil {
			return 0, 0, fmt.Errorf("failed to fetch session: %w", err)
		}
		var session models.Session
		if err := json.Unmarshal(payload, &session); err != nil {
			continue
		}
		if session.IsActive && !session.Expired(now) {
			active++
		}
	}
	if err := iter.Err(); err != nil {
		return 0, 0, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return total, active, nil
}

// EvictOldest is a no-op: Redis has no insertion-order view and its own
// maxmemory eviction.
func (r *RedisSessionRepository) EvictOldest(context.Context, int) (int, error) {
	return 0, nil
}

// PurgeExpired is a no-op: key TTLs expire sessions server-side.
func (r *RedisSessionRepository) PurgeExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (r *RedisSessionRepository) Close() error {
	return r.client.Close()
}
