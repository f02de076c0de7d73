package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/upb/campaign-studio/config"
	"github.com/upb/campaign-studio/models"
)

const defaultBaseURL = "https://newsapi.org/v2"

// Client calls the NewsAPI "everything" endpoint
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new NewsAPI client
func NewClient(cfg config.NewsConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type everythingResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []models.Article `json:"articles"`
}

// Everything searches all indexed articles for a query, newest first
func (c *Client) Everything(ctx context.Context, query string, pageSize, page int) ([]models.Article, int, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))

	endpoint := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("newsapi: create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("newsapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("newsapi: read response: %w", err)
	}

	var decoded everythingResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, 0, fmt.Errorf("newsapi: malformed response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || decoded.Status != "ok" {
		if decoded.Message != "" {
			return nil, 0, fmt.Errorf("newsapi: %s (%s)", decoded.Message, decoded.Code)
		}
		return nil, 0, fmt.Errorf("newsapi: unexpected status %d", resp.StatusCode)
	}

	return decoded.Articles, decoded.TotalResults, nil
}
