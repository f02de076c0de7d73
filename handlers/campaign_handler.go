package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/campaign-studio/middleware"
	"github.com/upb/campaign-studio/models"
	"github.com/upb/campaign-studio/utils"
	"go.uber.org/zap"
)

// CampaignService defines the campaign operations used by the HTTP routes
type CampaignService interface {
	Generate(ctx context.Context, user *models.User, topic string) (*models.Campaign, error)
	List(ctx context.Context, user *models.User) ([]*models.Campaign, error)
	Get(ctx context.Context, user *models.User, id uuid.UUID) (*models.Campaign, error)
	Update(ctx context.Context, user *models.User, id uuid.UUID, text *string) (*models.Campaign, error)
	Delete(ctx context.Context, user *models.User, id uuid.UUID) error
	Regenerate(ctx context.Context, user *models.User, id uuid.UUID) (*models.Campaign, error)
}

// GenerateCampaignRequest is the body of POST /api/campaigns/generate
type GenerateCampaignRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// UpdateCampaignRequest is the body of PUT /api/campaigns/{id}.
// A missing text field keeps the stored text.
type UpdateCampaignRequest struct {
	Text *string `json:"text"`
}

// CampaignResponse wraps a single campaign payload
type CampaignResponse struct {
	Success  bool             `json:"success"`
	Campaign *models.Campaign `json:"campaign"`
}

// CampaignListResponse wraps a campaign list payload
type CampaignListResponse struct {
	Success   bool               `json:"success"`
	Campaigns []*models.Campaign `json:"campaigns"`
}

// MessageResponse wraps a plain confirmation message
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CampaignHandler handles campaign-related HTTP requests
type CampaignHandler struct {
	service CampaignService
	logger  *zap.Logger
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(service CampaignService, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		service: service,
		logger:  logger,
	}
}

// HandleGenerate handles POST /api/campaigns/generate
func (h *CampaignHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req GenerateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Topic is required", nil)
		return
	}

	campaign, err := h.service.Generate(r.Context(), identity, req.Topic)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusCreated, CampaignResponse{
		Success:  true,
		Campaign: campaign,
	})
}

// HandleList handles GET /api/campaigns/list
func (h *CampaignHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	campaigns, err := h.service.List(r.Context(), identity)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, CampaignListResponse{
		Success:   true,
		Campaigns: campaigns,
	})
}

// HandleGet handles GET /api/campaigns/{id}
func (h *CampaignHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	campaign, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, CampaignResponse{
		Success:  true,
		Campaign: campaign,
	})
}

// HandleUpdate handles PUT /api/campaigns/{id}
func (h *CampaignHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	var req UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	campaign, err := h.service.Update(r.Context(), identity, id, req.Text)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, CampaignResponse{
		Success:  true,
		Campaign: campaign,
	})
}

// HandleDelete handles DELETE /api/campaigns/{id}
func (h *CampaignHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Campaign deleted successfully",
	})
}

// HandleRegenerate handles POST /api/campaigns/regenerate/{id}
func (h *CampaignHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentityFromContext(r.Context())
	if identity == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return
	}

	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	campaign, err := h.service.Regenerate(r.Context(), identity, id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, CampaignResponse{
		Success:  true,
		Campaign: campaign,
	})
}

// campaignID parses the id route parameter. An id that is not a valid UUID
// cannot name an existing campaign, so it reports not found.
func (h *CampaignHandler) campaignID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteNotFound(w, "Campaign not found")
		return uuid.Nil, false
	}
	return id, true
}
