package store

import (
	"context"
	"errors"

	"github.com/codelane/identity/internal/identity/domain"
)

var (
	ErrNotFound = errors.New("store: not found")

	// ErrEmailExists and ErrUsernameExists report a uniqueness-constraint
	// violation at the storage layer. They are what closes the race window
	// between the application-level existence checks and the insert; the
	// pre-checks are only a fast path.
	ErrEmailExists    = errors.New("store: email already exists")
	ErrUsernameExists = errors.New("store: username already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error, the transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is an exact, case-sensitive lookup.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is an exact lookup.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via UUID).
	// Returns ErrEmailExists or ErrUsernameExists when the corresponding
	// unique constraint is violated.
	CreateUser(ctx context.Context, u domain.User) error

	// SetUserActive flips is_active and bumps updated_at. Users are never
	// hard-deleted; deactivation is the only removal.
	SetUserActive(ctx context.Context, userID string, active bool) error
}
