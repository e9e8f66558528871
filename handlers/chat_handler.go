package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stridelab/stride-api/middleware"
	"github.com/stridelab/stride-api/services/moderation"
	"github.com/stridelab/stride-api/utils"
	"go.uber.org/zap"
)

// ChatMessageRequest is the body for live chat messages
type ChatMessageRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// ChatMessageResponse is the accepted-message projection
type ChatMessageResponse struct {
	AuthorID string    `json:"authorId"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sentAt"`
}

// ChatHandler handles live chat message submission. Fan-out to viewers is an
// external collaborator; this endpoint only runs the admission pipeline with
// the realtime moderation policy, where any non-zero severity blocks.
type ChatHandler struct {
	reviewer ContentReviewer
	logger   *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(reviewer ContentReviewer, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		reviewer: reviewer,
		logger:   logger,
	}
}

// HandleSendMessage handles POST /api/v1/chat/messages
func (h *ChatHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	account := middleware.GetAccountFromContext(ctx)
	if account == nil {
		h.logger.Error("account not found in context",
			zap.String("request_id", requestID))
		_ = utils.WriteUnauthorized(w)
		return
	}

	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.reviewer.Review(ctx, map[string]string{"text": req.Text}, moderation.PolicyRealtime); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	response := ChatMessageResponse{
		AuthorID: account.ID.String(),
		Text:     req.Text,
		SentAt:   time.Now().UTC(),
	}
	if err := utils.WriteSuccess(w, "message", response); err != nil {
		h.logger.Error("failed to write chat response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}
