// README: Session store contract and the in-process implementation backed by go-cache.
package session

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store holds at most one Context per user id.
type Store interface {
	Get(ctx context.Context, userID string) (Context, bool, error)
	// Set overwrites any existing context for the user.
	Set(ctx context.Context, userID string, c Context) error
	// Clear is a no-op when nothing is stored.
	Clear(ctx context.Context, userID string) error
	// Take returns and removes the user's context in one step.
	Take(ctx context.Context, userID string) (Context, bool, error)
}

// MemoryStore keeps contexts for the lifetime of the process. A ttl of zero
// disables expiry. mu makes Take atomic with respect to Set and Clear.
type MemoryStore struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	expiry := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiry = ttl
		cleanup = ttl
	}
	return &MemoryStore{cache: gocache.New(expiry, cleanup), ttl: ttl}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (Context, bool, error) {
	v, ok := s.cache.Get(userID)
	if !ok {
		return Context{}, false, nil
	}
	return v.(Context), true, nil
}

func (s *MemoryStore) Set(_ context.Context, userID string, c Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(userID, c, gocache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(userID)
	return nil
}

func (s *MemoryStore) Take(_ context.Context, userID string) (Context, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(userID)
	if !ok {
		return Context{}, false, nil
	}
	s.cache.Delete(userID)
	return v.(Context), true, nil
}

// Len returns the number of stored contexts, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}
