package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/craterhub/crater-api/internal/database"
	"github.com/craterhub/crater-api/internal/models"
)

// CollectionServiceInterface defines the methods used by handlers from CollectionService
type CollectionServiceInterface interface {
	Get(ctx context.Context, exec database.Executor, id uuid.UUID) (*models.Collection, error)
	GetMany(ctx context.Context, exec database.Executor, ids []uuid.UUID) ([]models.Collection, error)
	Insert(ctx context.Context, tx database.Executor, builder models.CollectionBuilder) (uuid.UUID, error)
	Remove(ctx context.Context, tx database.Executor, id uuid.UUID) (bool, error)
	ClearCache(ctx context.Context, id uuid.UUID) error
}
