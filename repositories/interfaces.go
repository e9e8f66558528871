package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/services/coercion"
)

// ErrNoRowsUpdated reports that an ownership-checked UPDATE matched nothing.
// The caller must disambiguate missing-resource from wrong-owner with Exists.
var ErrNoRowsUpdated = errors.New("no rows updated")

// ErrDuplicateRow reports that an INSERT hit a uniqueness constraint. Callers
// map it to a conflict outcome rather than an internal failure.
var ErrDuplicateRow = errors.New("duplicate row")

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Automatically commits if the function succeeds, rolls back on error.
	// The ctx passed to fn carries the transaction; repositories pick it up
	// through their executor.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// AccountRepository handles actor directory lookups
type AccountRepository interface {
	// GetBySubject retrieves an account by credential subject
	GetBySubject(ctx context.Context, subject string) (*models.Account, error)

	// GetByID retrieves an account by internal id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// ProfileRepository handles profile rows
type ProfileRepository interface {
	// GetByID retrieves a profile by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)

	// UpdateOwned applies the coerced field set with the ownership predicate
	// embedded in the UPDATE statement and returns the updated row. Returns
	// ErrNoRowsUpdated when no row matched id AND owner.
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, fields *coercion.FieldSet) (*models.Profile, error)

	// Exists reports whether a profile row exists, regardless of owner
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// FollowRepository handles directional relationship rows
type FollowRepository interface {
	// Insert creates a follow edge
	Insert(ctx context.Context, follow *models.Follow) error

	// DeletePendingRequest removes any pending follow request between the
	// pair; creating the edge supersedes it
	DeletePendingRequest(ctx context.Context, followerID, followeeID uuid.UUID) error

	// Delete removes a follow edge, reporting whether one existed
	Delete(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
}
