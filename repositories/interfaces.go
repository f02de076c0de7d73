package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/upb/campaign-studio/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// CampaignRepository handles campaign document operations. Each operation is
// atomic at single-document granularity only; concurrent writers to the same
// id follow last-write-wins.
type CampaignRepository interface {
	// Create persists a new campaign record
	Create(ctx context.Context, campaign *models.Campaign) error

	// GetByID retrieves a campaign by id; ErrNotFound when absent
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)

	// ListByUserID retrieves all campaigns owned by a user, newest first
	ListByUserID(ctx context.Context, userID string) ([]*models.Campaign, error)

	// UpdateText replaces the campaign text and update timestamp; every other
	// field is left untouched
	UpdateText(ctx context.Context, id uuid.UUID, text string, updatedAt time.Time) error

	// Delete removes a campaign record
	Delete(ctx context.Context, id uuid.UUID) error
}
