package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pixelsaas/media-api/internal/mediahost"
	"github.com/pixelsaas/media-api/internal/video/models"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Create(ctx context.Context, v *models.Video, ev models.DomainEvent) error {
	args := m.Called(ctx, v, ev)
	return args.Error(0)
}

func (m *StoreMock) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) GetByPublicID(ctx context.Context, publicID string) (*models.Video, error) {
	args := m.Called(ctx, publicID)
	if v := args.Get(0); v != nil {
		return v.(*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) List(ctx context.Context, limit int) ([]*models.Video, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

type HostMock struct {
	mock.Mock
}

func (m *HostMock) GetResource(ctx context.Context, publicID string) (*mediahost.Resource, error) {
	args := m.Called(ctx, publicID)
	if v := args.Get(0); v != nil {
		return v.(*mediahost.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HostMock) ExplicitTransform(ctx context.Context, publicID, transformation string) error {
	args := m.Called(ctx, publicID, transformation)
	return args.Error(0)
}
