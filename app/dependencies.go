package app

import (
	"context"
	"fmt"

	"github.com/upb/campaign-studio/config"
	"github.com/upb/campaign-studio/firebase"
	"github.com/upb/campaign-studio/handlers"
	"github.com/upb/campaign-studio/middleware"
	"github.com/upb/campaign-studio/repositories"
	"github.com/upb/campaign-studio/repositories/postgres"
	"github.com/upb/campaign-studio/services/campaigns"
	"github.com/upb/campaign-studio/services/identity"
	"github.com/upb/campaign-studio/services/news"
	"github.com/upb/campaign-studio/services/providers/huggingface"
	"github.com/upb/campaign-studio/services/providers/newsapi"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repositories
	Campaigns repositories.CampaignRepository

	// Identity
	TokenVerifier   *firebase.TokenVerifier
	IdentityClient  *firebase.Client
	IdentityService *identity.Service
	AuthMiddleware  *middleware.AuthMiddleware

	// Domain services
	CampaignService *campaigns.Service
	NewsService     *news.Service

	// HTTP handlers
	HealthHandler   *handlers.HealthHandler
	AuthHandler     *handlers.AuthHandler
	CampaignHandler *handlers.CampaignHandler
	NewsHandler     *handlers.NewsHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initIdentity(cfg)
	deps.initServices(cfg)
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase opens the PostgreSQL connection and ensures the schema exists
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	d.DB = db

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Campaigns = postgres.NewCampaignRepository(db, d.Logger)

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return nil
}

// initIdentity wires the Firebase token verifier, the Identity Toolkit
// client and the authentication middleware
func (d *Dependencies) initIdentity(cfg *config.Config) {
	d.TokenVerifier = firebase.NewTokenVerifier(firebase.Config{
		ProjectID:   cfg.Firebase.ProjectID,
		CertsURL:    cfg.Firebase.CertsURL,
		CertsTTL:    cfg.Firebase.CertsTTL,
		HTTPTimeout: cfg.Firebase.HTTPTimeout,
	})
	d.IdentityClient = firebase.NewClient(firebase.ClientConfig{
		APIKey:      cfg.Firebase.APIKey,
		HTTPTimeout: cfg.Firebase.HTTPTimeout,
	})
	d.IdentityService = identity.NewService(d.TokenVerifier, d.IdentityClient, d.Logger)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.IdentityService, d.Logger)

	if cfg.Firebase.ProjectID == "" {
		d.Logger.Warn("firebase project not configured, protected routes will reject all tokens")
	}
}

// initServices wires the generation providers and domain services
func (d *Dependencies) initServices(cfg *config.Config) {
	hf := huggingface.NewAdapter(cfg.Providers.HuggingFace)
	d.CampaignService = campaigns.NewService(d.Campaigns, hf, hf, d.Logger)

	newsProvider := newsapi.NewClient(cfg.News)
	d.NewsService = news.NewService(newsProvider, d.Logger)
}

// initHandlers wires the HTTP handlers
func (d *Dependencies) initHandlers() {
	d.HealthHandler = handlers.NewHealthHandler(d.DB.DB, d.Logger)
	d.AuthHandler = handlers.NewAuthHandler(d.IdentityService, d.Logger)
	d.CampaignHandler = handlers.NewCampaignHandler(d.CampaignService, d.Logger)
	d.NewsHandler = handlers.NewNewsHandler(d.NewsService, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
