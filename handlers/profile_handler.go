package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stridelab/stride-api/middleware"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/services/coercion"
	"github.com/stridelab/stride-api/services/moderation"
	"github.com/stridelab/stride-api/utils"
	"go.uber.org/zap"
)

// ProfileSchema is the static field schema for profile updates. Fields absent
// here are ignored in payloads; constraints follow the storage contract.
var ProfileSchema = []coercion.FieldDescriptor{
	coercion.Text("name"),
	coercion.Text("bio"),
	coercion.BoundedNumber("latitude", -90, 90),
	coercion.BoundedNumber("longitude", -180, 180),
	coercion.TextArray("interests"),
	coercion.JSON("preferences"),
}

// ProfileMutator applies an ownership-checked profile update
type ProfileMutator interface {
	UpdateProfile(ctx context.Context, profileID, actorID uuid.UUID, fields *coercion.FieldSet) (*models.Profile, error)
}

// ProfileReader fetches a profile row
type ProfileReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// ContentReviewer runs text fields through moderation
type ContentReviewer interface {
	Review(ctx context.Context, texts map[string]string, policy moderation.Policy) error
}

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	mutator  ProfileMutator
	profiles ProfileReader
	reviewer ContentReviewer
	logger   *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(mutator ProfileMutator, profiles ProfileReader, reviewer ContentReviewer, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		mutator:  mutator,
		profiles: profiles,
		reviewer: reviewer,
		logger:   logger,
	}
}

// HandleUpdateProfile handles PATCH /api/v1/profiles/{id}.
// Admission, identity, and standing have already run in the middleware chain;
// this handler runs coercion, moderation, and the transactional mutation, in
// that order, stopping at the first failure.
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	account := middleware.GetAccountFromContext(ctx)
	if account == nil {
		h.logger.Error("account not found in context",
			zap.String("request_id", requestID))
		_ = utils.WriteUnauthorized(w)
		return
	}

	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid profile ID format")
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body")
		return
	}

	fields, err := coercion.Coerce(payload, ProfileSchema)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := h.reviewer.Review(ctx, fields.TextValues(), moderation.PolicyStandard); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Debug("applying profile update",
		zap.String("request_id", requestID),
		zap.String("profile_id", profileID.String()),
		zap.Int("fields", len(fields.Fields)))

	updated, err := h.mutator.UpdateProfile(ctx, profileID, account.ID, fields)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteSuccess(w, "profile", updated.Project()); err != nil {
		h.logger.Error("failed to write profile response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}

// HandleGetProfile handles GET /api/v1/profiles/{id}
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid profile ID format")
		return
	}

	profile, err := h.profiles.GetByID(ctx, profileID)
	if err != nil {
		_ = utils.WriteNotFound(w, "Profile not found")
		return
	}

	if err := utils.WriteSuccess(w, "profile", profile.Project()); err != nil {
		h.logger.Error("failed to write profile response", zap.Error(err))
	}
}
