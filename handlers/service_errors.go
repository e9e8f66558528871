package handlers

import (
	"errors"
	"net/http"

	"github.com/stridelab/stride-api/services"
	"github.com/stridelab/stride-api/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to the external status/body contract.
// The first failing stage terminates the pipeline, so exactly one of these
// fires per request. Internal and transaction errors always collapse to a
// generic 500; their detail is logged, never returned.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	if standingErr, ok := services.IsAccountStandingError(err); ok {
		// Gate-supplied status and wording, forwarded verbatim.
		_ = utils.WriteJSON(w, standingErr.StatusCode, utils.MessageResponse{
			Message:    standingErr.Message,
			ReasonCode: standingErr.ReasonCode,
		})
		return
	}

	switch {
	case services.IsRateLimitError(err):
		_ = utils.WriteTooManyRequests(w, domainMessage(err), 0)

	case services.IsUnauthorizedError(err):
		_ = utils.WriteUnauthorized(w)

	case services.IsValidationError(err):
		_ = utils.WriteBadRequest(w, domainMessage(err))

	case services.IsModerationError(err):
		_ = utils.WriteModerationBlocked(w, domainMessage(err), moderationReason(err))

	case services.IsNotFoundError(err):
		_ = utils.WriteNotFound(w, domainMessage(err))

	case services.IsForbiddenError(err):
		_ = utils.WriteForbidden(w, domainMessage(err))

	case services.IsConflictError(err):
		_ = utils.WriteConflict(w, domainMessage(err))

	case services.IsSelfTargetError(err):
		_ = utils.WriteBadRequest(w, domainMessage(err))

	default:
		// transaction, internal, or unknown
		logger.Error("internal error", zap.Error(err))
		_ = utils.WriteInternalServerError(w)
	}
}

// domainMessage returns the user-facing message of a domain error without the
// type prefix and wrapped cause that Error() carries
func domainMessage(err error) string {
	var domainErr *services.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}

// moderationReason extracts the reason code detail from a moderation block
func moderationReason(err error) string {
	details := services.GetErrorDetails(err)
	if details == nil {
		return ""
	}
	if code, ok := details["reasonCode"].(string); ok {
		return code
	}
	return ""
}
