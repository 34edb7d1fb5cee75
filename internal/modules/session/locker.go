// README: Per-user mutual exclusion so one user's messages are processed one at a time.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serialises work per user id. The returned func releases the lock and
// must be called once; later calls are no-ops.
type Locker interface {
	Lock(ctx context.Context, userID string) (func(), error)
}

// KeyedMutex is an in-process Locker. Waiters give up when ctx ends.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedEntry)}
}

func (m *KeyedMutex) Lock(ctx context.Context, userID string) (func(), error) {
	m.mu.Lock()
	e, ok := m.locks[userID]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		m.locks[userID] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		m.release(userID, e)
		return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			m.release(userID, e)
		})
	}, nil
}

func (m *KeyedMutex) release(userID string, e *keyedEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.locks, userID)
	}
}

// held reports how many users currently have an entry; used by tests.
func (m *KeyedMutex) held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

const (
	lockKeyPrefix    = "session:lock:%s"
	lockPollInterval = 25 * time.Millisecond
)

// releaseScript deletes the lock only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by every instance pointing at the same Redis.
// ttl bounds how long a crashed holder can block the user.
type RedisLocker struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{redis: client, ttl: ttl}
}

func (l *RedisLocker) Lock(ctx context.Context, userID string) (func(), error) {
	key := fmt.Sprintf(lockKeyPrefix, userID)
	token := uuid.NewString()

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()
	for {
		ok, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("acquire user lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be done; release on a fresh one.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, l.redis, []string{key}, token).Err()
		})
	}, nil
}
