package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/upb/campaign-studio/models"
	"github.com/upb/campaign-studio/repositories"
	"go.uber.org/zap"
)

// CampaignRepository implements the repositories.CampaignRepository interface
type CampaignRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *DB, logger *zap.Logger) repositories.CampaignRepository {
	return &CampaignRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new campaign record
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	query := `
		INSERT INTO campaigns (id, user_id, topic, text, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		campaign.ID,
		campaign.UserID,
		campaign.Topic,
		campaign.Text,
		campaign.ImageURL,
		campaign.CreatedAt,
		campaign.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	r.logger.Debug("campaign created",
		zap.String("id", campaign.ID.String()),
		zap.String("user_id", campaign.UserID))
	return nil
}

// GetByID retrieves a campaign by id
func (r *CampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	query := `
		SELECT id, user_id, topic, text, image_url, created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`

	campaign := &models.Campaign{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&campaign.ID,
		&campaign.UserID,
		&campaign.Topic,
		&campaign.Text,
		&campaign.ImageURL,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return campaign, nil
}

// ListByUserID retrieves all campaigns owned by a user, newest first
func (r *CampaignRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Campaign, error) {
	query := `
		SELECT id, user_id, topic, text, image_url, created_at, updated_at
		FROM campaigns
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*models.Campaign, 0)
	for rows.Next() {
		campaign := &models.Campaign{}
		if err := rows.Scan(
			&campaign.ID,
			&campaign.UserID,
			&campaign.Topic,
			&campaign.Text,
			&campaign.ImageURL,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaigns: %w", err)
	}

	return campaigns, nil
}

// UpdateText replaces the campaign text and update timestamp
func (r *CampaignRepository) UpdateText(ctx context.Context, id uuid.UUID, text string, updatedAt time.Time) error {
	query := `
		UPDATE campaigns
		SET text = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, text, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("campaign updated", zap.String("id", id.String()))
	return nil
}

// Delete removes a campaign record
func (r *CampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM campaigns WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("campaign deleted", zap.String("id", id.String()))
	return nil
}
