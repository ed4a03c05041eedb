package auth

import (
	"context"
	"sync"
	"time"
)

// RevocationStore tracks revoked token IDs until the token would have
// expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, jti, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Close() error
}

// revocationEntry stores metadata about a revoked JWT token.
type revocationEntry struct {
	ExpiresAt time.Time
	UserID    string
}

// MemoryRevocationStore keeps revoked JTIs in process memory. It is used
// when REDIS_URL is not configured and does not survive restarts or span
// replicas.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]revocationEntry // JTI -> entry
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// NewMemoryRevocationStore creates a new store and starts a background
// goroutine that cleans up expired entries every interval.
func NewMemoryRevocationStore(interval time.Duration) *MemoryRevocationStore {
	s := &MemoryRevocationStore{
		entries: make(map[string]revocationEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go s.cleanupLoop(interval)
	return s
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, jti, userID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[jti] = revocationEntry{ExpiresAt: expiresAt, UserID: userID}
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[jti]
	return ok, nil
}

// Close stops the background cleanup goroutine. Safe to call more than once.
func (s *MemoryRevocationStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *MemoryRevocationStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes entries whose tokens are past their natural expiry.
func (s *MemoryRevocationStore) cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for jti, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, jti)
		}
	}
}
