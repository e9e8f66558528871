package mutation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/repositories"
	"github.com/stridelab/stride-api/services"
	"github.com/stridelab/stride-api/services/coercion"
	"go.uber.org/zap"
)

// Service is the transactional mutator: every write runs inside one storage
// transaction with rollback-then-release guaranteed on all error paths by the
// transaction manager.
type Service struct {
	txManager repositories.TransactionManager
	profiles  repositories.ProfileRepository
	follows   repositories.FollowRepository
	logger    *zap.Logger
}

// NewService creates a new mutation Service
func NewService(
	txManager repositories.TransactionManager,
	profiles repositories.ProfileRepository,
	follows repositories.FollowRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		txManager: txManager,
		profiles:  profiles,
		follows:   follows,
		logger:    logger,
	}
}

// UpdateProfile applies the coerced field set to the profile owned by actorID
// and returns the updated row.
//
// A zero-row UPDATE is disambiguated with a read-only existence probe inside
// the same transaction: missing row maps to not-found, present row to
// forbidden. Collapsing the two would either hide authorization failures or
// leak resource existence.
func (s *Service) UpdateProfile(ctx context.Context, profileID, actorID uuid.UUID, fields *coercion.FieldSet) (*models.Profile, error) {
	var updated *models.Profile

	err := s.txManager.InTransaction(ctx, func(txCtx context.Context, _ repositories.Transaction) error {
		profile, err := s.profiles.UpdateOwned(txCtx, profileID, actorID, fields)
		if err == nil {
			updated = profile
			return nil
		}
		if !errors.Is(err, repositories.ErrNoRowsUpdated) {
			return services.NewDomainError(services.ErrorTypeTransaction, "profile update failed", err)
		}

		exists, probeErr := s.profiles.Exists(txCtx, profileID)
		if probeErr != nil {
			return services.NewDomainError(services.ErrorTypeTransaction, "profile existence check failed", probeErr)
		}
		if !exists {
			return services.ErrProfileNotFound
		}
		return services.ErrNotOwner
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated",
		zap.String("profile_id", profileID.String()),
		zap.String("actor_id", actorID.String()),
		zap.Int("fields", len(fields.Fields)))
	return updated, nil
}

// CreateFollow creates a directional follow edge from actorID to targetID and
// clears any pending follow request between the pair in the same transaction.
// Self-targeting is rejected before any transaction opens.
func (s *Service) CreateFollow(ctx context.Context, actorID, targetID uuid.UUID) (*models.Follow, error) {
	if actorID == targetID {
		return nil, services.ErrSelfFollow
	}

	follow := &models.Follow{
		FollowerID: actorID,
		FolloweeID: targetID,
		CreatedAt:  time.Now().UTC(),
	}

	err := s.txManager.InTransaction(ctx, func(txCtx context.Context, _ repositories.Transaction) error {
		if err := s.follows.Insert(txCtx, follow); err != nil {
			if errors.Is(err, repositories.ErrDuplicateRow) {
				// Repeat follow of the same target is a predictable client
				// outcome, not an internal failure.
				return services.ErrAlreadyFollows
			}
			return services.NewDomainError(services.ErrorTypeTransaction, "follow insert failed", err)
		}
		if err := s.follows.DeletePendingRequest(txCtx, actorID, targetID); err != nil {
			return services.NewDomainError(services.ErrorTypeTransaction, "follow request cleanup failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("follow created",
		zap.String("follower_id", actorID.String()),
		zap.String("followee_id", targetID.String()))
	return follow, nil
}

// DeleteFollow removes a follow edge. Self-targeting is rejected for symmetry
// with CreateFollow even though the delete would simply match nothing.
func (s *Service) DeleteFollow(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return services.NewDomainError(services.ErrorTypeSelfTarget, "Cannot unfollow yourself", nil)
	}

	return s.txManager.InTransaction(ctx, func(txCtx context.Context, _ repositories.Transaction) error {
		existed, err := s.follows.Delete(txCtx, actorID, targetID)
		if err != nil {
			return services.NewDomainError(services.ErrorTypeTransaction, "follow delete failed", err)
		}
		if !existed {
			return services.NewDomainError(services.ErrorTypeNotFound, "Follow not found", nil)
		}
		return nil
	})
}
