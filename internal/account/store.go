package account

import "context"

// Store persists users. Implementations must return ErrNotFound for missing
// lookup keys and treat emails as already normalized.
type Store interface {
	// GetByToken resolves a bearer token to its user.
	GetByToken(ctx context.Context, token string) (*User, error)

	// GetByEmail resolves an email address to its user.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByCustomerID resolves a billing customer ID to its user.
	GetByCustomerID(ctx context.Context, customerID string) (*User, error)

	// Create registers a new user with a fresh token and zeroed counters.
	Create(ctx context.Context, email string) (*User, error)

	// Update applies a partial mutation to the user with the given email.
	Update(ctx context.Context, email string, upd Update) error
}
