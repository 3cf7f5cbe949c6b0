// Package quota enforces the free-search allowance. Anonymous visitors are
// tracked per session, logged-in users per account; both counters reset on a
// 30-day rolling window and subscribers are unmetered.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kingcrud12/easy-flight-project/internal/account"
	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/timeutil"
)

const (
	// DefaultFreeLimit is the free-search allowance per rolling window.
	DefaultFreeLimit = 5

	// resetWindowDays is the rolling-reset period.
	resetWindowDays = 30

	// Unlimited marks a quota that is not metered.
	Unlimited = -1
)

// Status describes the current allowance of one identity.
type Status struct {
	Remaining          int
	Limit              int
	SubscriptionActive bool
	RequiresLogin      bool
	Email              string
}

// Service meters searches for both anonymous sessions and registered users.
type Service struct {
	sessions SessionStore
	users    account.Store
	limit    int
	clock    timeutil.Clock
}

// NewService creates a quota service. A non-positive limit falls back to
// DefaultFreeLimit.
func NewService(sessions SessionStore, users account.Store, limit int, clock timeutil.Clock) *Service {
	if limit <= 0 {
		limit = DefaultFreeLimit
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Service{sessions: sessions, users: users, limit: limit, clock: clock}
}

// Limit returns the configured free-search allowance.
func (s *Service) Limit() int {
	return s.limit
}

// EnsureSessionID returns the given session ID, minting a fresh one when the
// caller arrived without one.
func EnsureSessionID(sessionID string) string {
	if sessionID != "" {
		return sessionID
	}
	return uuid.NewString()
}

// CheckSession reports whether an anonymous session may search, applying the
// rolling reset first.
func (s *Service) CheckSession(ctx context.Context, sessionID string) (bool, Status, error) {
	rec, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return false, Status{}, fmt.Errorf("load session quota: %w", err)
	}

	now := s.clock.Now()
	if rec.LastReset.IsZero() || now.Sub(rec.LastReset) >= resetWindowDays*24*time.Hour {
		rec.Count = 0
		rec.LastReset = now
		if err := s.sessions.Put(ctx, sessionID, rec); err != nil {
			return false, Status{}, fmt.Errorf("reset session quota: %w", err)
		}
	}

	remaining := s.limit - rec.Count
	if remaining < 0 {
		remaining = 0
	}
	status := Status{
		Remaining:     remaining,
		Limit:         s.limit,
		RequiresLogin: true,
	}
	return remaining > 0, status, nil
}

// CheckUser reports whether a registered user may search. The rolling reset
// is persisted through the user store; subscribers always pass with an
// unmetered status.
func (s *Service) CheckUser(ctx context.Context, user *account.User) (bool, Status, error) {
	now := s.clock.Now()
	if user.LastReset.IsZero() || now.Sub(user.LastReset) >= resetWindowDays*24*time.Hour {
		zero := 0
		if err := s.users.Update(ctx, user.Email, account.Update{FreeCount: &zero, LastReset: &now}); err != nil {
			return false, Status{}, fmt.Errorf("reset user quota: %w", err)
		}
		user.FreeCount = 0
		user.LastReset = now
	}

	if user.SubscriptionActive {
		return true, Status{
			Remaining:          Unlimited,
			Limit:              s.limit,
			SubscriptionActive: true,
			Email:              user.Email,
		}, nil
	}

	remaining := s.limit - user.FreeCount
	if remaining < 0 {
		remaining = 0
	}
	status := Status{
		Remaining: remaining,
		Limit:     s.limit,
		Email:     user.Email,
	}
	return remaining > 0, status, nil
}

// Increment charges one search to the user when present, or to the session
// otherwise. Subscribers are never charged.
func (s *Service) Increment(ctx context.Context, sessionID string, user *account.User) error {
	if user != nil {
		if user.SubscriptionActive {
			return nil
		}
		count := user.FreeCount + 1
		if err := s.users.Update(ctx, user.Email, account.Update{FreeCount: &count}); err != nil {
			return fmt.Errorf("charge user quota: %w", err)
		}
		user.FreeCount = count
		return nil
	}

	rec, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session quota: %w", err)
	}
	if rec.LastReset.IsZero() {
		rec.LastReset = s.clock.Now()
	}
	rec.Count++
	if err := s.sessions.Put(ctx, sessionID, rec); err != nil {
		return fmt.Errorf("charge session quota: %w", err)
	}
	return nil
}
