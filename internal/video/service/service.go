package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pixelsaas/media-api/internal/mediahost"
	"github.com/pixelsaas/media-api/internal/video/domain"
	"github.com/pixelsaas/media-api/internal/video/models"
	"github.com/pixelsaas/media-api/internal/video/repository"
)

// Transformation is the derived variant the reconciler looks for: the
// quality-normalized mp4 the host produces for every upload in our folder.
const Transformation = "q_auto,f_mp4"

// MediaHost is the capability surface we need from the media host. Any
// compliant implementation is substitutable without touching reconciliation.
type MediaHost interface {
	GetResource(ctx context.Context, publicID string) (*mediahost.Resource, error)
	ExplicitTransform(ctx context.Context, publicID, transformation string) error
}

type Config struct {
	// ResolveAttempts bounds the derived-size polling loop.
	ResolveAttempts int
	// ResolveDelay is the wait between attempts, accommodating the host's
	// asynchronous processing.
	ResolveDelay time.Duration
	// FallbackRatio estimates the compressed size from the original when the
	// host never reports one.
	FallbackRatio float64
}

func (c *Config) setDefaults() {
	if c.ResolveAttempts <= 0 {
		c.ResolveAttempts = 3
	}
	if c.ResolveDelay < 0 {
		c.ResolveDelay = 0
	}
	if c.FallbackRatio <= 0 || c.FallbackRatio > 1 {
		c.FallbackRatio = 0.8
	}
}

type Service struct {
	repo   repository.VideoRepository
	host   MediaHost
	cfg    Config
	clock  func() time.Time
	idGen  func() uuid.UUID
	logger zerolog.Logger
}

func New(repo repository.VideoRepository, host MediaHost, cfg Config, logger zerolog.Logger) *Service {
	cfg.setDefaults()
	return &Service{
		repo:   repo,
		host:   host,
		cfg:    cfg,
		clock:  time.Now,
		idGen:  uuid.New,
		logger: logger.With().Str("component", "video_service").Logger(),
	}
}

type SaveVideoInput struct {
	Title        string
	Description  string
	PublicID     string
	OriginalSize int64
	Duration     float64
}

// SaveVideo is the Metadata Reconciler: it resolves the compressed size of
// the uploaded asset (best effort, bounded attempts) and creates exactly one
// record. Host failures during resolution degrade the compressed-size field
// only; they never abort persistence. Duplicate public ids surface as
// models.ErrConflict from the uniqueness constraint.
func (s *Service) SaveVideo(ctx context.Context, in SaveVideoInput) (*models.Video, error) {
	status := domain.Received

	if strings.TrimSpace(in.PublicID) == "" {
		return nil, models.ErrInvalidArgument
	}
	if in.OriginalSize < 0 {
		return nil, models.ErrInvalidArgument
	}
	if in.Duration < 0 {
		in.Duration = 0
	}

	if err := s.advance(&status, domain.ResolvingSize); err != nil {
		return nil, err
	}
	compressed, resolved := s.resolveCompressedSize(ctx, in.PublicID, in.OriginalSize)
	if !resolved {
		if err := s.advance(&status, domain.FallbackApplied); err != nil {
			return nil, err
		}
	}

	now := s.clock()
	v := &models.Video{
		ID:             s.idGen(),
		Title:          in.Title,
		Description:    in.Description,
		PublicID:       in.PublicID,
		OriginalSize:   in.OriginalSize,
		CompressedSize: compressed,
		Duration:       in.Duration,
		SizeResolved:   resolved,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, v, models.NewVideoSaved(v)); err != nil {
		return nil, err
	}
	if err := s.advance(&status, domain.Persisted); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("public_id", v.PublicID).
		Int64("original_size", v.OriginalSize).
		Int64("compressed_size", v.CompressedSize).
		Bool("size_resolved", v.SizeResolved).
		Msg("video saved")

	return v, nil
}

// resolveCompressedSize polls the host for the derived asset's byte size.
// One explicit transformation is triggered after the first miss. Every host
// failure is absorbed: the worst case is the fallback estimate.
func (s *Service) resolveCompressedSize(ctx context.Context, publicID string, originalSize int64) (int64, bool) {
	for attempt := 1; attempt <= s.cfg.ResolveAttempts; attempt++ {
		if attempt > 1 && s.cfg.ResolveDelay > 0 {
			select {
			case <-ctx.Done():
				return s.fallbackSize(originalSize), false
			case <-time.After(s.cfg.ResolveDelay):
			}
		}

		res, err := s.host.GetResource(ctx, publicID)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("public_id", publicID).
				Int("attempt", attempt).
				Msg("resource query failed")
			continue
		}

		if size, ok := res.DerivedSize(Transformation); ok {
			return size, true
		}

		if attempt == 1 {
			// Просим хост посчитать производную явно, один раз
			if err := s.host.ExplicitTransform(ctx, publicID, Transformation); err != nil {
				s.logger.Warn().Err(err).
					Str("public_id", publicID).
					Msg("explicit transform failed")
			}
		}
	}

	s.logger.Warn().
		Str("public_id", publicID).
		Int64("original_size", originalSize).
		Msg("derived size unresolved, applying fallback")
	return s.fallbackSize(originalSize), false
}

func (s *Service) fallbackSize(originalSize int64) int64 {
	return int64(math.Round(float64(originalSize) * s.cfg.FallbackRatio))
}

func (s *Service) advance(status *domain.Status, to domain.Status) error {
	if err := domain.ValidateTransition(*status, to); err != nil {
		return err
	}
	*status = to
	return nil
}

// GetVideo returns a record by id, passing domain errors through so the
// transport layer can map them to HTTP.
func (s *Service) GetVideo(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	if id == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}
	return s.repo.GetByID(ctx, id)
}

// GetVideoByPublicID looks a record up by its host-side asset id, the key
// the dashboard links with.
func (s *Service) GetVideoByPublicID(ctx context.Context, publicID string) (*models.Video, error) {
	if strings.TrimSpace(publicID) == "" {
		return nil, models.ErrInvalidArgument
	}
	return s.repo.GetByPublicID(ctx, publicID)
}

// ListVideos returns recent records, newest first.
func (s *Service) ListVideos(ctx context.Context, limit int) ([]*models.Video, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, limit)
}
