package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/upb/campaign-studio/models"
	"github.com/upb/campaign-studio/repositories"
	"go.uber.org/zap"
)

func newMockRepository(t *testing.T) (repositories.CampaignRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	db := &DB{DB: mockDB, logger: zap.NewNop()}
	repo := NewCampaignRepository(db, zap.NewNop())

	return repo, mock, func() { mockDB.Close() }
}

func campaignColumns() []string {
	return []string{"id", "user_id", "topic", "text", "image_url", "created_at", "updated_at"}
}

func TestCreateCampaign(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts all columns", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		campaign := models.NewCampaign("uid-1", "water", "Save water", "https://img")

		mock.ExpectExec("INSERT INTO campaigns").
			WithArgs(campaign.ID, "uid-1", "water", "Save water", "https://img",
				campaign.CreatedAt, campaign.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, campaign))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec failure surfaces", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		campaign := models.NewCampaign("uid-1", "water", "Save water", "https://img")

		mock.ExpectExec("INSERT INTO campaigns").
			WillReturnError(errors.New("connection reset"))

		err := repo.Create(ctx, campaign)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create campaign")
	})
}

func TestGetCampaignByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored campaign", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		id := uuid.New()
		now := time.Now().UTC()
		mock.ExpectQuery("SELECT id, user_id, topic, text, image_url, created_at, updated_at").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(campaignColumns()).
				AddRow(id, "uid-1", "water", "Save water", "https://img", now, now))

		campaign, err := repo.GetByID(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, campaign.ID)
		assert.Equal(t, "uid-1", campaign.UserID)
		assert.Equal(t, "water", campaign.Topic)
	})

	t.Run("absent row reports ErrNotFound", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectQuery("SELECT id, user_id, topic, text, image_url, created_at, updated_at").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(campaignColumns()))

		campaign, err := repo.GetByID(ctx, id)

		assert.Nil(t, campaign)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestListCampaignsByUserID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows in query order", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		newer := time.Now().UTC()
		older := newer.Add(-time.Hour)
		newerID := uuid.New()
		olderID := uuid.New()

		mock.ExpectQuery("ORDER BY created_at DESC").
			WithArgs("uid-1").
			WillReturnRows(sqlmock.NewRows(campaignColumns()).
				AddRow(newerID, "uid-1", "water", "b", "https://img", newer, newer).
				AddRow(olderID, "uid-1", "health", "a", "https://img", older, older))

		campaigns, err := repo.ListByUserID(ctx, "uid-1")

		assert.NoError(t, err)
		assert.Len(t, campaigns, 2)
		assert.Equal(t, newerID, campaigns[0].ID)
		assert.Equal(t, olderID, campaigns[1].ID)
	})

	t.Run("no campaigns yields empty slice", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		mock.ExpectQuery("ORDER BY created_at DESC").
			WithArgs("uid-none").
			WillReturnRows(sqlmock.NewRows(campaignColumns()))

		campaigns, err := repo.ListByUserID(ctx, "uid-none")

		assert.NoError(t, err)
		assert.NotNil(t, campaigns)
		assert.Empty(t, campaigns)
	})
}

func TestUpdateCampaignText(t *testing.T) {
	ctx := context.Background()

	t.Run("updates text and timestamp", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		id := uuid.New()
		updatedAt := time.Now().UTC()

		mock.ExpectExec("UPDATE campaigns").
			WithArgs(id, "new text", updatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateText(ctx, id, "new text", updatedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected reports ErrNotFound", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectExec("UPDATE campaigns").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateText(ctx, id, "new text", time.Now().UTC())
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestDeleteCampaign(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing row", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectExec("DELETE FROM campaigns").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, id))
	})

	t.Run("zero rows affected reports ErrNotFound", func(t *testing.T) {
		repo, mock, cleanup := newMockRepository(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectExec("DELETE FROM campaigns").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, id), repositories.ErrNotFound)
	})
}
