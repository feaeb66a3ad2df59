package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pixelsaas/media-api/internal/video/models"
)

// VideoRepository persists reconciled records. Create stores the record and
// its domain event atomically: either both exist afterwards or neither does.
type VideoRepository interface {
	Create(ctx context.Context, v *models.Video, ev models.DomainEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	GetByPublicID(ctx context.Context, publicID string) (*models.Video, error)
	List(ctx context.Context, limit int) ([]*models.Video, error)
}
