package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/upb/campaign-studio/models"
	"github.com/upb/campaign-studio/utils"
	"go.uber.org/zap"
)

// bearerPrefix is the required Authorization header scheme
const bearerPrefix = "Bearer "

// IdentityResolver verifies a bearer token and resolves the canonical
// identity record for its subject.
type IdentityResolver interface {
	Resolve(ctx context.Context, idToken string) (*models.User, error)
}

// AuthMiddleware provides the authentication gate applied to every
// protected route.
type AuthMiddleware struct {
	resolver IdentityResolver
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver IdentityResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid bearer token and injects the
// resolved identity into the request context. The resolver is never invoked
// when the Authorization header is absent or not a Bearer credential, and
// the raw token value is never written to logs or responses.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			m.logger.Warn("missing bearer token",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, "No token provided")
			return
		}

		// Everything after the first "Bearer " prefix is the token
		token := header[len(bearerPrefix):]

		user, err := m.resolver.Resolve(ctx, token)
		if err != nil {
			m.logger.Warn("token verification failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, "Invalid or expired token")
			return
		}

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("uid", user.UID))

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, user)))
	})
}
