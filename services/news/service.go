package news

import (
	"context"

	"github.com/upb/campaign-studio/models"
	"github.com/upb/campaign-studio/services"
	"go.uber.org/zap"
)

// Default query parameters applied when the client omits them
const (
	defaultTopic    = "environment"
	defaultPageSize = 5
	defaultPage     = 1
)

// Provider searches a news source for articles matching a query
type Provider interface {
	Everything(ctx context.Context, query string, pageSize, page int) ([]models.Article, int, error)
}

// Service serves trending news for a topic and the static topic catalog
type Service struct {
	provider Provider
	logger   *zap.Logger
}

// NewService creates a new news service
func NewService(provider Provider, logger *zap.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// Trending returns recent articles for a topic along with the provider's
// total result count
func (s *Service) Trending(ctx context.Context, topic string, pageSize, page int) ([]models.Article, int, error) {
	if topic == "" {
		topic = defaultTopic
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page <= 0 {
		page = defaultPage
	}

	articles, total, err := s.provider.Everything(ctx, topic, pageSize, page)
	if err != nil {
		return nil, 0, services.NewDomainError(services.ErrorTypeUpstream, "news lookup failed", err)
	}

	s.logger.Debug("news fetched",
		zap.String("topic", topic),
		zap.Int("count", len(articles)),
		zap.Int("total", total))

	return articles, total, nil
}

// topicCatalog is the fixed, ordered set of campaign topics offered to
// clients. Served as-is with no external call.
var topicCatalog = []models.Topic{
	{ID: "environment", Name: "Environment", Icon: "leaf"},
	{ID: "climate", Name: "Climate Change", Icon: "thermometer"},
	{ID: "health", Name: "Health", Icon: "heart"},
	{ID: "education", Name: "Education", Icon: "book"},
	{ID: "poverty", Name: "Poverty", Icon: "dollar-sign"},
	{ID: "equality", Name: "Equality", Icon: "users"},
	{ID: "water", Name: "Clean Water", Icon: "droplet"},
	{ID: "energy", Name: "Renewable Energy", Icon: "zap"},
	{ID: "wildlife", Name: "Wildlife Conservation", Icon: "github"},
	{ID: "ocean", Name: "Ocean Conservation", Icon: "anchor"},
}

// Topics returns the static topic catalog in its fixed order
func (s *Service) Topics() []models.Topic {
	topics := make([]models.Topic, len(topicCatalog))
	copy(topics, topicCatalog)
	return topics
}
