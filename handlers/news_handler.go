package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/upb/campaign-studio/models"
	"github.com/upb/campaign-studio/utils"
	"go.uber.org/zap"
)

// NewsService defines the news operations used by the HTTP routes
type NewsService interface {
	Trending(ctx context.Context, topic string, pageSize, page int) ([]models.Article, int, error)
	Topics() []models.Topic
}

// NewsResponse wraps a trending-news payload
type NewsResponse struct {
	Success      bool             `json:"success"`
	News         []models.Article `json:"news"`
	TotalResults int              `json:"totalResults"`
}

// TopicsResponse wraps the static topic catalog
type TopicsResponse struct {
	Success bool           `json:"success"`
	Topics  []models.Topic `json:"topics"`
}

// NewsHandler handles news-related HTTP requests
type NewsHandler struct {
	service NewsService
	logger  *zap.Logger
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(service NewsService, logger *zap.Logger) *NewsHandler {
	return &NewsHandler{
		service: service,
		logger:  logger,
	}
}

// HandleTrending handles GET /api/news/trending
func (h *NewsHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	topic := query.Get("topic")
	pageSize := intParam(query.Get("pageSize"))
	page := intParam(query.Get("page"))

	articles, total, err := h.service.Trending(r.Context(), topic, pageSize, page)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, NewsResponse{
		Success:      true,
		News:         articles,
		TotalResults: total,
	})
}

// HandleTopics handles GET /api/news/topics
func (h *NewsHandler) HandleTopics(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteJSON(w, http.StatusOK, TopicsResponse{
		Success: true,
		Topics:  h.service.Topics(),
	})
}

// intParam parses a numeric query parameter; unset or invalid values
// fall through to the service defaults as zero
func intParam(value string) int {
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
