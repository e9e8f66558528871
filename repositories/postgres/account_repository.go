package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/repositories"
	"go.uber.org/zap"
)

// AccountRepository implements the repositories.AccountRepository interface
type AccountRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB, logger *zap.Logger) repositories.AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

// GetBySubject retrieves an account by credential subject
func (r *AccountRepository) GetBySubject(ctx context.Context, subject string) (*models.Account, error) {
	query := `
		SELECT id, subject, standing, created_at
		FROM accounts
		WHERE subject = $1
	`
	return r.getOne(ctx, query, subject)
}

// GetByID retrieves an account by internal id
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `
		SELECT id, subject, standing, created_at
		FROM accounts
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *AccountRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Account, error) {
	executor := GetExecutor(ctx, r.db)
	account := &models.Account{}

	err := executor.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Subject,
		&account.Standing,
		&account.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}
