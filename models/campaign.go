package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign represents a generated awareness campaign owned by a single user.
// UserID is set at creation time and never changes; every non-create operation
// must verify the caller against it.
type Campaign struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"` // Firebase uid of the owner
	Topic     string    `json:"topic" db:"topic"`
	Text      string    `json:"text" db:"text"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// NewCampaign creates a new Campaign instance with a fresh id and
// createdAt == updatedAt.
func NewCampaign(userID, topic, text, imageURL string) *Campaign {
	now := time.Now().UTC()
	return &Campaign{
		ID:        uuid.New(),
		UserID:    userID,
		Topic:     topic,
		Text:      text,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwnedBy returns true if the campaign belongs to the given user
func (c *Campaign) IsOwnedBy(uid string) bool {
	return c.UserID == uid
}
