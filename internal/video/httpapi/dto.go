package httpapi

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pixelsaas/media-api/internal/video/models"
)

// Field names follow the client contract (camelCase); sizes cross the wire
// as numeric strings to avoid precision loss.

type SignatureResponse struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
}

type SaveVideoRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	PublicID     string  `json:"publicId"`
	OriginalSize int64   `json:"originalSize"`
	Duration     float64 `json:"duration"`
}

type VideoResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PublicID       string    `json:"publicId"`
	OriginalSize   string    `json:"originalSize"`
	CompressedSize string    `json:"compressedSize"`
	Duration       float64   `json:"duration"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toVideoResponse(v *models.Video) VideoResponse {
	return VideoResponse{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		PublicID:       v.PublicID,
		OriginalSize:   strconv.FormatInt(v.OriginalSize, 10),
		CompressedSize: strconv.FormatInt(v.CompressedSize, 10),
		Duration:       v.Duration,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
