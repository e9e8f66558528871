package identity

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stridelab/stride-api/models"
	"github.com/stridelab/stride-api/repositories"
	"github.com/stridelab/stride-api/services"
	"go.uber.org/zap"
)

// Service resolves an opaque caller credential to a provisioned account.
// It is a pure lookup: no retries, no side effects.
type Service struct {
	secret   []byte
	issuer   string
	accounts repositories.AccountRepository
	logger   *zap.Logger
}

// NewService creates a new identity Service
func NewService(secret, issuer string, accounts repositories.AccountRepository, logger *zap.Logger) *Service {
	return &Service{
		secret:   []byte(secret),
		issuer:   issuer,
		accounts: accounts,
		logger:   logger,
	}
}

// Resolve maps a bearer credential to an account. Every failure collapses to
// ErrUnauthorized: a malformed token and an unknown subject must be
// indistinguishable to the caller, or the endpoint becomes an enumeration
// oracle. The specific cause is logged, never returned.
func (s *Service) Resolve(ctx context.Context, credential string) (*models.Account, error) {
	if credential == "" {
		return nil, services.ErrUnauthorized
	}

	token, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		s.logger.Debug("credential verification failed", zap.Error(err))
		return nil, services.ErrUnauthorized
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		s.logger.Debug("credential missing subject")
		return nil, services.ErrUnauthorized
	}

	account, err := s.accounts.GetBySubject(ctx, subject)
	if err != nil {
		s.logger.Debug("credential subject not in directory",
			zap.String("subject", subject))
		return nil, services.ErrUnauthorized
	}

	return account, nil
}
