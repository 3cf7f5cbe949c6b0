package quota

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL keeps session records a little past the reset window so an idle
// session expires instead of lingering forever.
const sessionTTL = (resetWindowDays + 1) * 24 * time.Hour

// RedisSessionStore persists session metering state in Redis, shared across
// instances.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a store on an existing client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Get implements SessionStore.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (SessionRecord, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return SessionRecord{}, nil
		}
		return SessionRecord{}, fmt.Errorf("get session record: %w", err)
	}

	var rec SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return SessionRecord{}, fmt.Errorf("decode session record: %w", err)
	}
	return rec, nil
}

// Put implements SessionStore.
func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, rec SessionRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), payload, sessionTTL).Err(); err != nil {
		return fmt.Errorf("store session record: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "quota:session:" + sessionID
}

var _ SessionStore = (*RedisSessionStore)(nil)
