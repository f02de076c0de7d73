package campaigns

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/upb/campaign-studio/models"
	"github.com/upb/campaign-studio/repositories"
	"github.com/upb/campaign-studio/services"
	"go.uber.org/zap"
)

// failedImageURL is the placeholder substituted when the image stage fails.
// Image failures degrade instead of aborting the whole generation; only text
// generation is mandatory.
const failedImageURL = "https://via.placeholder.com/600x400?text=Image+Generation+Failed"

// TextGenerator produces campaign text from a prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator produces an image URL from an image-generator prompt
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Service implements campaign generation and CRUD with a uniform
// ownership check on every non-create operation.
type Service struct {
	repo   repositories.CampaignRepository
	text   TextGenerator
	image  ImageGenerator
	logger *zap.Logger
}

// NewService creates a new campaign service
func NewService(repo repositories.CampaignRepository, text TextGenerator, image ImageGenerator, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		text:   text,
		image:  image,
		logger: logger,
	}
}

// Generate creates a new campaign for a topic. Text generation failure
// aborts before anything is persisted; the image stage degrades to a
// placeholder. The record is written exactly once, after generation.
func (s *Service) Generate(ctx context.Context, user *models.User, topic string) (*models.Campaign, error) {
	if topic == "" {
		return nil, services.ErrMissingTopic
	}

	text, err := s.text.GenerateText(ctx, campaignPrompt(topic))
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeUpstream, "text generation failed", err)
	}

	imageURL := s.generateImage(ctx, topic)

	campaign := models.NewCampaign(user.UID, topic, text, imageURL)
	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, services.WrapInternal("failed to store campaign", err)
	}

	s.logger.Info("campaign generated",
		zap.String("id", campaign.ID.String()),
		zap.String("user_id", user.UID),
		zap.String("topic", topic))

	return campaign, nil
}

// generateImage runs the degradable image stage: an image-prompt generation
// followed by the image call. Any failure substitutes the failed placeholder.
func (s *Service) generateImage(ctx context.Context, topic string) string {
	prompt, err := s.text.GenerateText(ctx, imagePrompt(topic))
	if err != nil {
		s.logger.Warn("image prompt generation failed, using placeholder", zap.Error(err))
		return failedImageURL
	}

	url, err := s.image.GenerateImage(ctx, prompt)
	if err != nil {
		s.logger.Warn("image generation failed, using placeholder", zap.Error(err))
		return failedImageURL
	}

	return url
}

// List returns all campaigns owned by the user, newest first
func (s *Service) List(ctx context.Context, user *models.User) ([]*models.Campaign, error) {
	result, err := s.repo.ListByUserID(ctx, user.UID)
	if err != nil {
		return nil, services.WrapInternal("failed to list campaigns", err)
	}
	return result, nil
}

// Get returns a single campaign after the ownership check
func (s *Service) Get(ctx context.Context, user *models.User, id uuid.UUID) (*models.Campaign, error) {
	return s.getOwned(ctx, user, id)
}

// Update replaces the campaign text and advances updatedAt. A nil text
// keeps the stored text; id, owner, topic, createdAt and imageUrl are
// never touched.
func (s *Service) Update(ctx context.Context, user *models.User, id uuid.UUID, text *string) (*models.Campaign, error) {
	campaign, err := s.getOwned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	newText := campaign.Text
	if text != nil {
		newText = *text
	}

	updatedAt := time.Now().UTC()
	if err := s.repo.UpdateText(ctx, id, newText, updatedAt); err != nil {
		return nil, services.WrapInternal("failed to update campaign", err)
	}

	campaign.Text = newText
	campaign.UpdatedAt = updatedAt
	return campaign, nil
}

// Delete removes a campaign after the ownership check
func (s *Service) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, user, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return services.WrapInternal("failed to delete campaign", err)
	}

	s.logger.Info("campaign deleted",
		zap.String("id", id.String()),
		zap.String("user_id", user.UID))

	return nil
}

// Regenerate re-runs only the text generation step for an existing, owned
// campaign; topic, image and creation metadata stay as they were.
func (s *Service) Regenerate(ctx context.Context, user *models.User, id uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.getOwned(ctx, user, id)
	if err != nil {
		return nil, err
	}

	text, err := s.text.GenerateText(ctx, campaignPrompt(campaign.Topic))
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeUpstream, "text generation failed", err)
	}

	updatedAt := time.Now().UTC()
	if err := s.repo.UpdateText(ctx, id, text, updatedAt); err != nil {
		return nil, services.WrapInternal("failed to update campaign", err)
	}

	campaign.Text = text
	campaign.UpdatedAt = updatedAt
	return campaign, nil
}

// getOwned loads a campaign and applies the ownership check. Existence is
// checked first so that probing a foreign id and probing an absent id are
// indistinguishable beyond "not found".
func (s *Service) getOwned(ctx context.Context, user *models.User, id uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrCampaignNotFound
		}
		return nil, services.WrapInternal("failed to load campaign", err)
	}

	if !campaign.IsOwnedBy(user.UID) {
		return nil, services.ErrNotCampaignOwner
	}

	return campaign, nil
}
