package standing

import (
	"net/http"

	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/services"
	"go.uber.org/zap"
)

// Service is the account standing gate. Unlike the other stages it returns a
// pre-built response: the account system owns the exact status code and
// wording the caller sees, and the pipeline forwards them verbatim.
type Service struct {
	logger *zap.Logger
}

// NewService creates a new standing Service
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Check returns nil when the account may mutate state, otherwise the
// standing-specific error to forward as-is.
func (s *Service) Check(account *models.Account) error {
	switch account.Standing {
	case models.StandingActive:
		return nil
	case models.StandingSuspended:
		return &services.AccountStandingError{
			StatusCode: http.StatusForbidden,
			ReasonCode: "account_suspended",
			Message:    "Your account has been suspended",
		}
	case models.StandingRestricted:
		return &services.AccountStandingError{
			StatusCode: http.StatusForbidden,
			ReasonCode: "account_restricted",
			Message:    "Your account is restricted pending review",
		}
	}

	s.logger.Warn("unknown account standing",
		zap.String("account_id", account.ID.String()),
		zap.String("standing", string(account.Standing)))
	return &services.AccountStandingError{
		StatusCode: http.StatusForbidden,
		ReasonCode: "account_unavailable",
		Message:    "Your account is unavailable",
	}
}
