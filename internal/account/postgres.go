package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kingcrud12/easy-flight-project/internal/infrastructure/timeutil"
)

const userColumns = `email, token, subscription_active, free_count, last_reset, COALESCE(stripe_customer_id, '')`

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db    *pgxpool.Pool
	clock timeutil.Clock
}

// NewPostgresStore creates a store on an existing connection pool.
func NewPostgresStore(db *pgxpool.Pool, clock timeutil.Clock) *PostgresStore {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &PostgresStore{db: db, clock: clock}
}

// EnsureSchema creates the users table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS users (
		email TEXT PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		subscription_active BOOLEAN NOT NULL DEFAULT FALSE,
		free_count INTEGER NOT NULL DEFAULT 0,
		last_reset TIMESTAMPTZ NOT NULL,
		stripe_customer_id TEXT
	)`)
	if err != nil {
		return fmt.Errorf("ensure users schema: %w", err)
	}
	return nil
}

// GetByToken implements Store.
func (s *PostgresStore) GetByToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return s.getBy(ctx, "token=$1", token)
}

// GetByEmail implements Store.
func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getBy(ctx, "email=$1", email)
}

// GetByCustomerID implements Store.
func (s *PostgresStore) GetByCustomerID(ctx context.Context, customerID string) (*User, error) {
	if customerID == "" {
		return nil, ErrNotFound
	}
	return s.getBy(ctx, "stripe_customer_id=$1", customerID)
}

func (s *PostgresStore) getBy(ctx context.Context, where string, arg any) (*User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)

	var u User
	err := row.Scan(&u.Email, &u.Token, &u.SubscriptionActive, &u.FreeCount, &u.LastReset, &u.StripeCustomerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// Create implements Store.
func (s *PostgresStore) Create(ctx context.Context, email string) (*User, error) {
	u := &User{
		Email:     email,
		Token:     uuid.NewString(),
		LastReset: s.clock.Now(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (email, token, last_reset) VALUES ($1, $2, $3)`,
		u.Email, u.Token, u.LastReset)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Update implements Store.
func (s *PostgresStore) Update(ctx context.Context, email string, upd Update) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if upd.SubscriptionActive != nil {
		add("subscription_active", *upd.SubscriptionActive)
	}
	if upd.FreeCount != nil {
		add("free_count", *upd.FreeCount)
	}
	if upd.LastReset != nil {
		add("last_reset", *upd.LastReset)
	}
	if upd.StripeCustomerID != nil {
		add("stripe_customer_id", *upd.StripeCustomerID)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, email)
	query := fmt.Sprintf("UPDATE users SET %s WHERE email=$%d", strings.Join(sets, ", "), len(args))

	res, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
