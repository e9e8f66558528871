package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/repositories"
	"go.uber.org/zap"
)

// uniqueViolation is the postgres error code for a uniqueness constraint hit
const uniqueViolation = pq.ErrorCode("23505")

// FollowRepository implements the repositories.FollowRepository interface
type FollowRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *DB, logger *zap.Logger) repositories.FollowRepository {
	return &FollowRepository{
		db:     db,
		logger: logger,
	}
}

// Insert creates a follow edge
func (r *FollowRepository) Insert(ctx context.Context, follow *models.Follow) error {
	query := `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, $3)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		follow.FollowerID,
		follow.FolloweeID,
		follow.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repositories.ErrDuplicateRow
		}
		return fmt.Errorf("failed to insert follow: %w", err)
	}

	r.logger.Debug("follow created",
		zap.String("follower_id", follow.FollowerID.String()),
		zap.String("followee_id", follow.FolloweeID.String()))
	return nil
}

// DeletePendingRequest removes any pending follow request between the pair
func (r *FollowRepository) DeletePendingRequest(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `
		DELETE FROM follow_requests
		WHERE follower_id = $1 AND followee_id = $2
	`

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, followerID, followeeID); err != nil {
		return fmt.Errorf("failed to delete pending follow request: %w", err)
	}
	return nil
}

// Delete removes a follow edge, reporting whether one existed
func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND followee_id = $2
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
