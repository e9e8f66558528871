package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/services"
	"github.com/stridelab/stride-api/utils"
	"go.uber.org/zap"
)

// AccountResolver maps a caller credential to a provisioned account
type AccountResolver interface {
	Resolve(ctx context.Context, credential string) (*models.Account, error)
}

// StandingChecker gates on account standing
type StandingChecker interface {
	Check(account *models.Account) error
}

// IdentityMiddleware resolves the caller and enforces account standing.
// Runs after admission control and before any payload inspection.
type IdentityMiddleware struct {
	resolver AccountResolver
	standing StandingChecker
	logger   *zap.Logger
}

// NewIdentityMiddleware creates a new IdentityMiddleware
func NewIdentityMiddleware(resolver AccountResolver, standing StandingChecker, logger *zap.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{
		resolver: resolver,
		standing: standing,
		logger:   logger,
	}
}

// RequireActor resolves the bearer credential to an account, checks standing,
// and stores the account in the request context. Absent, malformed, and
// unknown credentials all produce the same 401.
func (m *IdentityMiddleware) RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		account, err := m.resolver.Resolve(ctx, extractBearerToken(r))
		if err != nil {
			m.logger.Warn("identity resolution failed",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w)
			return
		}

		if err := m.standing.Check(account); err != nil {
			m.writeStandingError(w, requestID, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAccount(ctx, account)))
	})
}

// writeStandingError forwards the gate-supplied status and body verbatim
func (m *IdentityMiddleware) writeStandingError(w http.ResponseWriter, requestID string, err error) {
	m.logger.Warn("request blocked by account standing",
		zap.String("request_id", requestID),
		zap.Error(err))

	if standingErr, ok := services.IsAccountStandingError(err); ok {
		_ = utils.WriteJSON(w, standingErr.StatusCode, utils.MessageResponse{
			Message:    standingErr.Message,
			ReasonCode: standingErr.ReasonCode,
		})
		return
	}
	_ = utils.WriteForbidden(w, "")
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
