package identity

import (
	"context"

	"github.com/upb/campaign-studio/firebase"
	"github.com/upb/campaign-studio/models"
	"github.com/upb/campaign-studio/services"
	"go.uber.org/zap"
)

// Verifier verifies a raw ID token and returns its decoded claims
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebase.Token, error)
}

// Directory is the identity provider's account store
type Directory interface {
	CreateUser(ctx context.Context, email, password, displayName string) (*models.User, error)
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// Service resolves bearer tokens to canonical identities and manages
// account registration. All account state lives in the identity provider;
// this service holds none.
type Service struct {
	verifier  Verifier
	directory Directory
	logger    *zap.Logger
}

// NewService creates a new identity service
func NewService(verifier Verifier, directory Directory, logger *zap.Logger) *Service {
	return &Service{
		verifier:  verifier,
		directory: directory,
		logger:    logger,
	}
}

// Resolve verifies an ID token and fetches the canonical identity record
// for its subject. Verification and lookup failures are both surfaced as
// authentication errors; the raw token is never included.
func (s *Service) Resolve(ctx context.Context, idToken string) (*models.User, error) {
	decoded, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeUnauthenticated, "token verification failed", err)
	}

	user, err := s.directory.GetUser(ctx, decoded.UID)
	if err != nil {
		s.logger.Warn("identity lookup failed after token verification",
			zap.String("uid", decoded.UID),
			zap.Error(err))
		return nil, services.NewDomainError(services.ErrorTypeUnauthenticated, "token verification failed", err)
	}

	return user, nil
}

// Register creates a new account in the identity provider
func (s *Service) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	user, err := s.directory.CreateUser(ctx, email, password, name)
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeInvalidInput, "registration failed", err)
	}

	s.logger.Info("user registered", zap.String("uid", user.UID))
	return user, nil
}
