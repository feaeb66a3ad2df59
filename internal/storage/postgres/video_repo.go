package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/pixelsaas/media-api/internal/video/models"
)

const uniqueViolation = "23505"

type VideoRepo struct {
	db     *sqlx.DB
	outbox *OutboxRepo
}

func NewVideoRepo(db *sqlx.DB, outbox *OutboxRepo) *VideoRepo {
	return &VideoRepo{db: db, outbox: outbox}
}

// Create inserts the record and its domain event in one transaction. The
// unique index on public_id is the only concurrency guard for duplicate
// submissions; violations map to models.ErrConflict.
func (r *VideoRepo) Create(ctx context.Context, v *models.Video, ev models.DomainEvent) error {
	const q = `
		INSERT INTO videos (id, title, description, public_id, original_size,
		                    compressed_size, duration, size_resolved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("video create begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, q,
		v.ID, v.Title, v.Description, v.PublicID, v.OriginalSize,
		v.CompressedSize, v.Duration, v.SizeResolved, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrConflict
		}
		return fmt.Errorf("video create: %w", err)
	}

	if ev != nil {
		if err := r.outbox.Add(ctx, tx, ev); err != nil {
			return fmt.Errorf("video create outbox: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("video create commit: %w", err)
	}
	return nil
}

func (r *VideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	const q = `
		SELECT id, title, description, public_id, original_size,
		       compressed_size, duration, size_resolved, created_at, updated_at
		FROM videos
		WHERE id = $1
	`

	var v models.Video
	if err := r.db.GetContext(ctx, &v, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("video get by id: %w", err)
	}

	return &v, nil
}

func (r *VideoRepo) GetByPublicID(ctx context.Context, publicID string) (*models.Video, error) {
	const q = `
		SELECT id, title, description, public_id, original_size,
		       compressed_size, duration, size_resolved, created_at, updated_at
		FROM videos
		WHERE public_id = $1
	`

	var v models.Video
	if err := r.db.GetContext(ctx, &v, q, publicID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("video get by public id: %w", err)
	}

	return &v, nil
}

func (r *VideoRepo) List(ctx context.Context, limit int) ([]*models.Video, error) {
	const q = `
		SELECT id, title, description, public_id, original_size,
		       compressed_size, duration, size_resolved, created_at, updated_at
		FROM videos
		ORDER BY created_at DESC
		LIMIT $1
	`

	var out []*models.Video
	if err := r.db.SelectContext(ctx, &out, q, limit); err != nil {
		return nil, fmt.Errorf("video list: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
