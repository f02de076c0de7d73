package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upb/campaign-studio/middleware"
	"github.com/upb/campaign-studio/models"
	"github.com/upb/campaign-studio/utils"
	"go.uber.org/zap"
)

// IdentityService defines the identity operations used by the auth routes
type IdentityService interface {
	// Register creates a new account in the identity provider
	Register(ctx context.Context, email, password, name string) (*models.User, error)

	// Resolve verifies an ID token and returns the canonical identity
	Resolve(ctx context.Context, idToken string) (*models.User, error)
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	IDToken string `json:"idToken"`
}

// UserResponse wraps a user payload
type UserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service IdentityService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service IdentityService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// HandleRegister handles POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusCreated, UserResponse{
		Success: true,
		Message: "User created successfully",
		User:    user,
	})
}

// HandleLogin handles POST /api/auth/login
// Sign-in happens client-side against the identity provider; this endpoint
// verifies the resulting ID token and returns the account it belongs to.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if req.IDToken == "" {
		_ = utils.WriteUnauthorized(w, "No token provided")
		return
	}

	user, err := h.service.Resolve(r.Context(), req.IDToken)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, UserResponse{
		Success: true,
		User:    user,
	})
}

// HandleCurrentUser handles GET /api/auth/user
func (h *AuthHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Error("identity not found in context")
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, UserResponse{
		Success: true,
		User:    identity,
	})
}
