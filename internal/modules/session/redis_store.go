// README: Session store backed by Redis; one JSON document per user.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const contextKeyPrefix = "session:route:%s"

type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore stores contexts with the given ttl; zero keeps them until consumed.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (Context, bool, error) {
	raw, err := s.redis.Get(ctx, contextKey(userID)).Bytes()
	return decodeContext(raw, err)
}

func (s *RedisStore) Set(ctx context.Context, userID string, c Context) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode session context: %w", err)
	}
	return s.redis.Set(ctx, contextKey(userID), raw, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	return s.redis.Del(ctx, contextKey(userID)).Err()
}

// Take uses GETDEL so two instances can never both consume the same context.
func (s *RedisStore) Take(ctx context.Context, userID string) (Context, bool, error) {
	raw, err := s.redis.GetDel(ctx, contextKey(userID)).Bytes()
	return decodeContext(raw, err)
}

func decodeContext(raw []byte, err error) (Context, bool, error) {
	if errors.Is(err, redis.Nil) {
		return Context{}, false, nil
	}
	if err != nil {
		return Context{}, false, err
	}
	var c Context
	if err := json.Unmarshal(raw, &c); err != nil {
		return Context{}, false, fmt.Errorf("decode session context: %w", err)
	}
	return c, true, nil
}

func contextKey(userID string) string {
	return fmt.Sprintf(contextKeyPrefix, userID)
}
