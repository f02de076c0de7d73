package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/upb/campaign-studio/config"
)

const (
	defaultBaseURL     = "https://api-inference.huggingface.co"
	placeholderBaseURL = "https://via.placeholder.com/600x400?text="
)

// Adapter calls the Hugging Face Inference API for text and image
// generation. Calls are never retried; a failure is the caller's to
// handle.
type Adapter struct {
	config     config.HuggingFaceConfig
	httpClient *http.Client
}

// NewAdapter creates a new Hugging Face adapter
func NewAdapter(cfg config.HuggingFaceConfig) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Adapter{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters,omitempty"`
}

type inferenceParameters struct {
	Temperature    float64 `json:"temperature,omitempty"`
	MaxLength      int     `json:"max_length,omitempty"`
	ReturnFullText bool    `json:"return_full_text"`
}

type textResponse struct {
	GeneratedText string `json:"generated_text"`
}

type apiError struct {
	Error string `json:"error"`
}

// GenerateText runs a text-generation inference and returns the generated text
func (a *Adapter) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := a.invoke(ctx, a.config.TextModel, inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			Temperature: a.config.Temperature,
			MaxLength:   a.config.MaxLength,
		},
	})
	if err != nil {
		return "", err
	}

	var results []textResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("huggingface: malformed text response: %w", err)
	}
	if len(results) == 0 || results[0].GeneratedText == "" {
		return "", fmt.Errorf("huggingface: empty text response for model %s", a.config.TextModel)
	}

	return results[0].GeneratedText, nil
}

// GenerateImage runs an image-generation inference and returns a URL
// referencing the result.
func (a *Adapter) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if _, err := a.invoke(ctx, a.config.ImageModel, inferenceRequest{Inputs: prompt}); err != nil {
		return "", err
	}

	// TODO: upload the returned image bytes to object storage and serve
	// that URL instead of the placeholder.
	return placeholderBaseURL + strings.ReplaceAll(prompt, " ", "+"), nil
}

// invoke executes one inference call against a model endpoint
func (a *Adapter) invoke(ctx context.Context, model string, reqBody inferenceRequest) ([]byte, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("huggingface: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", a.config.BaseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("huggingface: create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("huggingface: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("huggingface: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("huggingface: model %s returned %d: %s", model, resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("huggingface: model %s returned %d", model, resp.StatusCode)
	}

	return body, nil
}
