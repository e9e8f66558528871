package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stridelab/stride-api/middleware"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/utils"
	"go.uber.org/zap"
)

// FollowMutator creates and removes follow edges
type FollowMutator interface {
	CreateFollow(ctx context.Context, actorID, targetID uuid.UUID) (*models.Follow, error)
	DeleteFollow(ctx context.Context, actorID, targetID uuid.UUID) error
}

// FollowHandler handles follow HTTP requests
type FollowHandler struct {
	mutator FollowMutator
	logger  *zap.Logger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(mutator FollowMutator, logger *zap.Logger) *FollowHandler {
	return &FollowHandler{
		mutator: mutator,
		logger:  logger,
	}
}

// HandleCreateFollow handles POST /api/v1/users/{id}/follow
func (h *FollowHandler) HandleCreateFollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	account := middleware.GetAccountFromContext(ctx)
	if account == nil {
		h.logger.Error("account not found in context",
			zap.String("request_id", requestID))
		_ = utils.WriteUnauthorized(w)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid user ID format")
		return
	}

	follow, err := h.mutator.CreateFollow(ctx, account.ID, targetID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteCreatedEntity(w, "follow", follow.Project()); err != nil {
		h.logger.Error("failed to write follow response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}

// HandleDeleteFollow handles DELETE /api/v1/users/{id}/follow
func (h *FollowHandler) HandleDeleteFollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	account := middleware.GetAccountFromContext(ctx)
	if account == nil {
		_ = utils.WriteUnauthorized(w)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid user ID format")
		return
	}

	if err := h.mutator.DeleteFollow(ctx, account.ID, targetID); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
