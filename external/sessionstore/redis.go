package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/foxseedlab/ronpakun/internal/debate"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "ronpakun:debate:"

// RedisStore keeps debate sessions as JSON values in redis. Grace-window
// removal rides on key TTLs, so Sweep has nothing to do.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(threadID string) string {
	return sessionKeyPrefix + threadID
}

func (r *RedisStore) Create(ctx context.Context, s *debate.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	ok, err := r.client.SetNX(ctx, sessionKey(s.ThreadID), b, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return debate.ErrDuplicateSession
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, threadID string) (*debate.Session, error) {
	b, err := r.client.Get(ctx, sessionKey(threadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s debate.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *RedisStore) Update(ctx context.Context, s *debate.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	// KEEPTTL preserves a grace-window expiry already set on the key.
	ok, err := r.client.SetArgs(ctx, sessionKey(s.ThreadID), b, redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if ok == "" {
		return debate.ErrSessionNotFound
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, threadID string) error {
	return r.client.Del(ctx, sessionKey(threadID)).Err()
}

func (r *RedisStore) ListActive(ctx context.Context) ([]*debate.Session, error) {
	var (
		cursor uint64
		list   []*debate.Session
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			b, err := r.client.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return nil, err
			}
			var s debate.Session
			if err := json.Unmarshal(b, &s); err != nil {
				continue
			}
			if s.Status == debate.StatusActive {
				list = append(list, &s)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return list, nil
}

func (r *RedisStore) ExpireAfter(ctx context.Context, threadID string, ttl time.Duration) error {
	ok, err := r.client.Expire(ctx, sessionKey(threadID), ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return debate.ErrSessionNotFound
	}
	return nil
}

func (r *RedisStore) Sweep(_ context.Context) error {
	return nil
}
