package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is the persisted record tying a media-host asset to user metadata.
// PublicID is the host-side asset identifier; it is unique and immutable
// once the record exists. CompressedSize is best-effort: when the host had
// not finished deriving the compressed variant at save time it holds the
// fallback estimate instead (see SizeResolved).
type Video struct {
	ID             uuid.UUID `db:"id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	PublicID       string    `db:"public_id"`
	OriginalSize   int64     `db:"original_size"`
	CompressedSize int64     `db:"compressed_size"`
	Duration       float64   `db:"duration"`
	SizeResolved   bool      `db:"size_resolved"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// UploadCredential is the signed, short-lived credential handed to clients
// for direct-to-host uploads. It never carries the API secret.
type UploadCredential struct {
	Signature string
	Timestamp int64
	Folder    string
	APIKey    string
	CloudName string
}

// AssetReference is what the host reports back after a direct upload.
type AssetReference struct {
	PublicID string
	Bytes    int64
	Duration float64
}
