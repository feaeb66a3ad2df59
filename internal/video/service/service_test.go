package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pixelsaas/media-api/internal/mediahost"
	"github.com/pixelsaas/media-api/internal/video/models"
)

func newTestService(st *StoreMock, host *HostMock) *Service {
	svc := New(st, host, Config{ResolveAttempts: 3, ResolveDelay: 0}, zerolog.Nop())
	svc.idGen = func() uuid.UUID { return uuid.MustParse("11111111-1111-1111-1111-111111111111") }
	svc.clock = func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestSaveVideo_MissingPublicID(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	host := new(HostMock)
	svc := newTestService(st, host)

	// Missing asset id is terminal: no host interaction, no persistence.
	got, err := svc.SaveVideo(ctx, SaveVideoInput{Title: "t", OriginalSize: 100})
	require.ErrorIs(t, err, models.ErrInvalidArgument)
	require.Nil(t, got)
	st.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	host.AssertNotCalled(t, "GetResource", mock.Anything, mock.Anything)
}

func TestSaveVideo_NegativeOriginalSize(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	host := new(HostMock)
	svc := newTestService(st, host)

	got, err := svc.SaveVideo(ctx, SaveVideoInput{PublicID: "p", OriginalSize: -1})
	require.ErrorIs(t, err, models.ErrInvalidArgument)
	require.Nil(t, got)
}

func TestSaveVideo_DerivedSizeFound(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	host := new(HostMock)
	svc := newTestService(st, host)

	host.On("GetResource", mock.Anything, "video-uploads/abc").Return(&mediahost.Resource{
		PublicID: "video-uploads/abc",
		Bytes:    9_000_000,
		Derived: []mediahost.DerivedAsset{
			{Transformation: Transformation, Format: "mp4", Bytes: 7_200_000},
		},
	}, nil).Once()

	var persisted *models.Video
	var event models.DomainEvent
	st.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*models.Video)
			event = args.Get(2).(models.DomainEvent)
		}).
		Return(nil).
		Once()

	got, err := svc.SaveVideo(ctx, SaveVideoInput{
		Title:        "demo",
		Description:  "d",
		PublicID:     "video-uploads/abc",
		OriginalSize: 10_000_000,
		Duration:     42,
	})
	require.NoError(t, err)
	require.Equal(t, persisted, got)

	require.Equal(t, int64(7_200_000), got.CompressedSize)
	require.True(t, got.SizeResolved)
	require.Equal(t, "video-uploads/abc", got.PublicID)
	require.Equal(t, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), got.CreatedAt)

	require.NotNil(t, event)
	require.Equal(t, "VideoSaved", event.EventType())
	require.Equal(t, got.ID, event.AggregateID())

	// No explicit transform when the derived asset is already there.
	host.AssertNotCalled(t, "ExplicitTransform", mock.Anything, mock.Anything, mock.Anything)
	st.AssertExpectations(t)
}

func TestSaveVideo_FallbackAfterBoundedAttempts(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	host := new(HostMock)
	svc := newTestService(st, host)

	// Host never reports a derived asset.
	host.On("GetResource", mock.Anything, "video-uploads/abc").
		Return(&mediahost.Resource{PublicID: "video-uploads/abc"}, nil).
		Times(3)
	host.On("ExplicitTransform", mock.Anything, "video-uploads/abc", Transformation).
		Return(nil).
		Once()

	var persisted *models.Video
	st.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*models.Video)
		}).
		Return(nil).
		Once()

	// Scenario from the upload flow: 10 MB original, nothing derived yet.
	got, err := svc.SaveVideo(ctx, SaveVideoInput{
		Title:        "demo",
		PublicID:     "video-uploads/abc",
		OriginalSize: 10_000_000,
		Duration:     42,
	})
	require.NoError(t, err)
	require.Equal(t, int64(8_000_000), got.CompressedSize)
	require.False(t, got.SizeResolved)
	require.Equal(t, float64(42), got.Duration)
	require.NotNil(t, persisted)

	host.AssertExpectations(t)
	st.AssertExpectations(t)
}

func TestSaveVideo_HostErrorsAbsorbed(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	host := new(HostMock)
	svc := newTestService(st, host)

	// Every host call fails; the record must still be created.
	host.On("GetResource", mock.Anything, "p").
		Return(nil, errors.New("host unreachable")).
		Times(3)

	st.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.SaveVideo(ctx, SaveVideoInput{PublicID: "p", OriginalSize: 1000})
	require.NoError(t, err)
	require.Equal(t, int64(800), got.CompressedSize)
	require.False(t, got.SizeResolved)

	// Explicit transform is only triggered after a successful query came back
	// without the derived asset, never after a failed query.
	host.AssertNotCalled(t, "ExplicitTransform", mock.Anything, mock.Anything, mock.Anything)
	st.AssertExpectations(t)
}

func TestSaveVideo_DuplicatePublicID(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	host := new(HostMock)
	svc := newTestService(st, host)

	host.On("GetResource", mock.Anything, "p").Return(&mediahost.Resource{
		Derived: []mediahost.DerivedAsset{{Transformation: Transformation, Bytes: 10}},
	}, nil).Once()
	st.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(models.ErrConflict).Once()

	got, err := svc.SaveVideo(ctx, SaveVideoInput{PublicID: "p", OriginalSize: 100})
	require.ErrorIs(t, err, models.ErrConflict)
	require.Nil(t, got)
	st.AssertExpectations(t)
}

func TestSaveVideo_NegativeDurationStoredAsZero(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	host := new(HostMock)
	svc := newTestService(st, host)

	host.On("GetResource", mock.Anything, "p").Return(&mediahost.Resource{
		Derived: []mediahost.DerivedAsset{{Transformation: Transformation, Bytes: 10}},
	}, nil).Once()

	var persisted *models.Video
	st.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(*models.Video) }).
		Return(nil).
		Once()

	_, err := svc.SaveVideo(ctx, SaveVideoInput{PublicID: "p", OriginalSize: 100, Duration: -5})
	require.NoError(t, err)
	require.Equal(t, float64(0), persisted.Duration)
}

func TestGetVideo_InvalidID(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	svc := newTestService(st, new(HostMock))

	got, err := svc.GetVideo(ctx, uuid.Nil)
	require.ErrorIs(t, err, models.ErrInvalidArgument)
	require.Nil(t, got)
	st.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestListVideos_ClampsLimit(t *testing.T) {
	ctx := context.Background()
	st := new(StoreMock)
	svc := newTestService(st, new(HostMock))

	st.On("List", mock.Anything, 100).Return([]*models.Video{}, nil).Twice()

	_, err := svc.ListVideos(ctx, 0)
	require.NoError(t, err)
	_, err = svc.ListVideos(ctx, 1000)
	require.NoError(t, err)
	st.AssertExpectations(t)
}
