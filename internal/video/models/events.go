package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// VideoSaved is emitted when a reconciliation persists a record. SizeResolved
// tells consumers whether CompressedSize came from the host or from the
// fallback estimate, so a backfill job can repair degraded records later.
type VideoSaved struct {
	eventID        uuid.UUID
	videoID        uuid.UUID
	publicID       string
	originalSize   int64
	compressedSize int64
	sizeResolved   bool
	occurredAt     time.Time
}

func NewVideoSaved(v *Video) *VideoSaved {
	return &VideoSaved{
		eventID:        uuid.New(),
		videoID:        v.ID,
		publicID:       v.PublicID,
		originalSize:   v.OriginalSize,
		compressedSize: v.CompressedSize,
		sizeResolved:   v.SizeResolved,
		occurredAt:     time.Now(),
	}
}

func (e *VideoSaved) EventID() uuid.UUID     { return e.eventID }
func (e *VideoSaved) EventType() string      { return "VideoSaved" }
func (e *VideoSaved) AggregateID() uuid.UUID { return e.videoID }
func (e *VideoSaved) OccurredAt() time.Time  { return e.occurredAt }

func (e *VideoSaved) PublicID() string       { return e.publicID }
func (e *VideoSaved) SizeResolved() bool     { return e.sizeResolved }
func (e *VideoSaved) CompressedSize() int64  { return e.compressedSize }
func (e *VideoSaved) OriginalSize() int64    { return e.originalSize }

func (e *VideoSaved) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EventID        uuid.UUID `json:"event_id"`
		VideoID        uuid.UUID `json:"video_id"`
		PublicID       string    `json:"public_id"`
		OriginalSize   int64     `json:"original_size"`
		CompressedSize int64     `json:"compressed_size"`
		SizeResolved   bool      `json:"size_resolved"`
		OccurredAt     time.Time `json:"occurred_at"`
	}{
		EventID:        e.eventID,
		VideoID:        e.videoID,
		PublicID:       e.publicID,
		OriginalSize:   e.originalSize,
		CompressedSize: e.compressedSize,
		SizeResolved:   e.sizeResolved,
		OccurredAt:     e.occurredAt,
	})
}
