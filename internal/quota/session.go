package quota

import (
	"context"
	"sync"
	"time"
)

// SessionRecord is the metering state of one anonymous session.
type SessionRecord struct {
	Count     int       `json:"count"`
	LastReset time.Time `json:"last_reset"`
}

// SessionStore persists per-session metering state. Get returns a zero
// record for unknown sessions.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (SessionRecord, error)
	Put(ctx context.Context, sessionID string, rec SessionRecord) error
}

// MemorySessionStore is an in-process SessionStore for single-instance
// deployments and tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]SessionRecord
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]SessionRecord)}
}

// Get implements SessionStore.
func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID], nil
}

// Put implements SessionStore.
func (s *MemorySessionStore) Put(_ context.Context, sessionID string, rec SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = rec
	return nil
}

var _ SessionStore = (*MemorySessionStore)(nil)
