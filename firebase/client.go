package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/upb/campaign-studio/models"
)

const defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

var (
	// ErrUserNotFound is returned when no account exists for the given uid
	ErrUserNotFound = errors.New("user not found")

	// ErrIdentityToolkit is returned on any Identity Toolkit API failure
	ErrIdentityToolkit = errors.New("identity toolkit request failed")
)

// Client calls the Google Identity Toolkit REST API for account
// management. Token verification lives in TokenVerifier; this client
// covers account creation and lookup.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ClientConfig holds configuration for Client
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	HTTPTimeout time.Duration
}

// NewClient creates a new Identity Toolkit client
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultIdentityToolkitURL
	}
	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = 10 * time.Second
	}

	return &Client{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

type signUpRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DisplayName       string `json:"displayName,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signUpResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type lookupRequest struct {
	LocalID []string `json:"localId"`
}

type lookupResponse struct {
	Users []struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	} `json:"users"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateUser registers a new account with email, password and display name
func (c *Client) CreateUser(ctx context.Context, email, password, displayName string) (*models.User, error) {
	var resp signUpResponse
	err := c.post(ctx, "accounts:signUp", signUpRequest{
		Email:             email,
		Password:          password,
		DisplayName:       displayName,
		ReturnSecureToken: false,
	}, &resp)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
	}
	// signUp does not echo the display name on every tenant config
	if user.DisplayName == "" {
		user.DisplayName = displayName
	}
	return user, nil
}

// GetUser fetches the canonical account record for a uid
func (c *Client) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var resp lookupResponse
	if err := c.post(ctx, "accounts:lookup", lookupRequest{LocalID: []string{uid}}, &resp); err != nil {
		return nil, err
	}

	if len(resp.Users) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, uid)
	}

	u := resp.Users[0]
	return &models.User{
		UID:         u.LocalID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}, nil
}

// post executes an Identity Toolkit POST call and decodes the response
func (c *Client) post(ctx context.Context, endpoint string, reqBody, out interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrIdentityToolkit, err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIdentityToolkit, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIdentityToolkit, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrIdentityToolkit, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%w: %s", ErrIdentityToolkit, apiErr.Error.Message)
		}
		return fmt.Errorf("%w: unexpected status %d", ErrIdentityToolkit, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrIdentityToolkit, err)
	}

	return nil
}
