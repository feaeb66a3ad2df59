package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pixelsaas/media-api/internal/video/models"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	data     map[uuid.UUID]*models.Video
	byPublic map[string]uuid.UUID
	events   []models.DomainEvent
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data:     make(map[uuid.UUID]*models.Video),
		byPublic: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, v *models.Video, ev models.DomainEvent) error {
	if v == nil {
		return models.ErrInvalidArgument
	}
	if v.ID == uuid.Nil || v.PublicID == "" {
		return models.ErrInvalidArgument
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[v.ID]; exists {
		return models.ErrConflict
	}
	// public_id уникален, как и в БД
	if _, exists := r.byPublic[v.PublicID]; exists {
		return models.ErrConflict
	}

	// Защитная копия, чтобы внешняя сторона не могла мутировать хранимый объект
	cp := *v
	r.data[v.ID] = &cp
	r.byPublic[v.PublicID] = v.ID
	if ev != nil {
		r.events = append(r.events, ev)
	}

	return nil
}

// Events exposes appended domain events for assertions in tests.
func (r *MemoryRepository) Events() []models.DomainEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.DomainEvent(nil), r.events...)
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	if id == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	cp := *v
	return &cp, nil
}

func (r *MemoryRepository) GetByPublicID(ctx context.Context, publicID string) (*models.Video, error) {
	if publicID == "" {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPublic[publicID]
	if !ok {
		return nil, models.ErrNotFound
	}

	cp := *r.data[id]
	return &cp, nil
}

func (r *MemoryRepository) List(ctx context.Context, limit int) ([]*models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Video, 0, len(r.data))
	for _, v := range r.data {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
