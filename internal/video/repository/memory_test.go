package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelsaas/media-api/internal/video/models"
)

func newVideo(publicID string, createdAt time.Time) *models.Video {
	return &models.Video{
		ID:        uuid.New(),
		Title:     "t",
		PublicID:  publicID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	v := newVideo("video-uploads/a", time.Now())
	require.NoError(t, repo.Create(ctx, v, models.NewVideoSaved(v)))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.PublicID, got.PublicID)

	got, err = repo.GetByPublicID(ctx, "video-uploads/a")
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)

	require.Len(t, repo.Events(), 1)
}

func TestMemoryRepository_DuplicatePublicID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.Create(ctx, newVideo("dup", time.Now()), nil))
	err := repo.Create(ctx, newVideo("dup", time.Now()), nil)
	require.ErrorIs(t, err, models.ErrConflict)
}

func TestMemoryRepository_InvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.ErrorIs(t, repo.Create(ctx, nil, nil), models.ErrInvalidArgument)
	require.ErrorIs(t, repo.Create(ctx, &models.Video{ID: uuid.New()}, nil), models.ErrInvalidArgument)

	_, err := repo.GetByID(ctx, uuid.Nil)
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = repo.GetByPublicID(ctx, "missing")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryRepository_StoredCopyIsIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	v := newVideo("iso", time.Now())
	require.NoError(t, repo.Create(ctx, v, nil))

	v.Title = "mutated"
	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestMemoryRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	old := newVideo("old", base)
	recent := newVideo("recent", base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, old, nil))
	require.NoError(t, repo.Create(ctx, recent, nil))

	got, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "recent", got[0].PublicID)
	assert.Equal(t, "old", got[1].PublicID)

	limited, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}
