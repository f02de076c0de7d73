package middleware

import (
	"context"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/upb/campaign-studio/models"
)

// Context key type to avoid collisions
type contextKey string

// IdentityKey is the context key for the authenticated identity
const IdentityKey contextKey = "identity"

// GetIdentityFromContext retrieves the authenticated identity from context.
// Returns nil when the request did not pass through RequireAuth.
func GetIdentityFromContext(ctx context.Context) *models.User {
	if val := ctx.Value(IdentityKey); val != nil {
		if user, ok := val.(*models.User); ok {
			return user
		}
	}
	return nil
}

// WithIdentity adds the authenticated identity to the context
func WithIdentity(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, IdentityKey, user)
}

// GetRequestIDFromContext retrieves the chi request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}
