package middleware

import (
	"context"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stridelab/stride-api/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	// AccountKey is the context key for the resolved actor account
	AccountKey contextKey = "account"
)

// GetRequestIDFromContext retrieves the request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}

// GetAccountFromContext retrieves the resolved account from context
func GetAccountFromContext(ctx context.Context) *models.Account {
	if val := ctx.Value(AccountKey); val != nil {
		if account, ok := val.(*models.Account); ok {
			return account
		}
	}
	return nil
}

// WithAccount adds the resolved account to the context
func WithAccount(ctx context.Context, account *models.Account) context.Context {
	return context.WithValue(ctx, AccountKey, account)
}
