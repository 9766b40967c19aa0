package infrastructure

import (
	"context"
	"sync"
	"time"
)

// MemoryWindowStore is a process-local WindowStore for single-instance
// deployments and for running without Redis.
type MemoryWindowStore struct {
	attempts map[string]int
	lastTry  map[string]time.Time
	expires  map[string]time.Time
	mutex    sync.Mutex
	now      func() time.Time
}

func NewMemoryWindowStore() *MemoryWindowStore {
	return &MemoryWindowStore{
		attempts: make(map[string]int),
		lastTry:  make(map[string]time.Time),
		expires:  make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *MemoryWindowStore) WithClock(now func() time.Time) *MemoryWindowStore {
	s.now = now
	return s
}

func (s *MemoryWindowStore) Get(_ context.Context, client string) (Window, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	start, ok := s.lastTry[client]
	if !ok || !s.now().Before(s.expires[client]) {
		return Window{}, false, nil
	}
	return Window{Count: s.attempts[client], Start: start}, true, nil
}

func (s *MemoryWindowStore) Reset(_ context.Context, client string, start time.Time, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.attempts[client] = 1
	s.lastTry[client] = start
	s.expires[client] = start.Add(ttl)
	return nil
}

func (s *MemoryWindowStore) Increment(_ context.Context, client string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.attempts[client]++
	return nil
}

// CleanupStaleEntries removes expired windows from the maps.
func (s *MemoryWindowStore) CleanupStaleEntries() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	for id, exp := range s.expires {
		if !now.Before(exp) {
			delete(s.attempts, id)
			delete(s.lastTry, id)
			delete(s.expires, id)
		}
	}
}

// RunCleanup calls CleanupStaleEntries every interval until ctx is done.
func (s *MemoryWindowStore) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CleanupStaleEntries()
		}
	}
}
