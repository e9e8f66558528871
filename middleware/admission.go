package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/stridelab/stride-api/services/ratelimit"
	"github.com/stridelab/stride-api/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Admitter decides whether a request may proceed at all
type Admitter interface {
	Allow(ctx context.Context, prefix, identifier string, windowSeconds, maxRequests int) ratelimit.Decision
}

// AdmissionMiddleware is the first pipeline stage: nothing runs ahead of it,
// so denied requests cost no identity lookup or storage round trip.
type AdmissionMiddleware struct {
	admitter      Admitter
	overloadGuard *rate.Limiter
	windowSeconds int
	maxRequests   int
	logger        *zap.Logger
}

// NewAdmissionMiddleware creates a new AdmissionMiddleware. The overload guard
// is a per-instance token bucket in front of the shared window counter; it
// sheds load locally before the counter store is consulted.
func NewAdmissionMiddleware(admitter Admitter, windowSeconds, maxRequests int, overloadRPS float64, overloadBurst int, logger *zap.Logger) *AdmissionMiddleware {
	return &AdmissionMiddleware{
		admitter:      admitter,
		overloadGuard: rate.NewLimiter(rate.Limit(overloadRPS), overloadBurst),
		windowSeconds: windowSeconds,
		maxRequests:   maxRequests,
		logger:        logger,
	}
}

// Limit returns a middleware enforcing the fixed-window limit under the given
// key prefix, identifying callers by remote address (RealIP runs earlier in
// the chain).
func (m *AdmissionMiddleware) Limit(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			if !m.overloadGuard.Allow() {
				m.logger.Warn("request shed by overload guard",
					zap.String("request_id", requestID))
				_ = utils.WriteTooManyRequests(w, "Too many requests", 0)
				return
			}

			decision := m.admitter.Allow(ctx, prefix, clientKey(r), m.windowSeconds, m.maxRequests)
			if !decision.Allowed {
				m.logger.Info("request denied by admission control",
					zap.String("request_id", requestID),
					zap.String("prefix", prefix),
					zap.Int("retry_after", decision.RetryAfterSeconds))
				_ = utils.WriteTooManyRequests(w, "Too many requests", decision.RetryAfterSeconds)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller for window counting. RemoteAddr carries an
// ephemeral port for direct connections; keying on it would hand every new TCP
// connection a fresh counter.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
