// Package account manages registered users, their API tokens and their
// subscription state.
package account

import (
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned when no user matches the lookup key.
var ErrNotFound = errors.New("user not found")

// User is a registered account. Login is email-only: the token is minted on
// first login and acts as the bearer credential afterwards.
type User struct {
	Email              string
	Token              string
	SubscriptionActive bool
	FreeCount          int
	LastReset          time.Time
	StripeCustomerID   string
}

// Update carries a partial user mutation. Nil fields are left untouched.
type Update struct {
	SubscriptionActive *bool
	FreeCount          *int
	LastReset          *time.Time
	StripeCustomerID   *string
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
