package account

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/timeutil"
)

// MemoryStore is an in-process Store. It backs single-instance deployments
// that run without a database, and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by email
	clock timeutil.Clock
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(clock timeutil.Clock) *MemoryStore {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &MemoryStore{users: make(map[string]*User), clock: clock}
}

// GetByToken implements Store.
func (s *MemoryStore) GetByToken(_ context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Token == token {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail implements Store.
func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

// GetByCustomerID implements Store.
func (s *MemoryStore) GetByCustomerID(_ context.Context, customerID string) (*User, error) {
	if customerID == "" {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.StripeCustomerID == customerID {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &User{
		Email:     email,
		Token:     uuid.NewString(),
		LastReset: s.clock.Now(),
	}
	s.users[email] = u
	return copyUser(u), nil
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, email string, upd Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return ErrNotFound
	}
	if upd.SubscriptionActive != nil {
		u.SubscriptionActive = *upd.SubscriptionActive
	}
	if upd.FreeCount != nil {
		u.FreeCount = *upd.FreeCount
	}
	if upd.LastReset != nil {
		u.LastReset = *upd.LastReset
	}
	if upd.StripeCustomerID != nil {
		u.StripeCustomerID = *upd.StripeCustomerID
	}
	return nil
}

func copyUser(u *User) *User {
	cp := *u
	return &cp
}

var _ Store = (*MemoryStore)(nil)
