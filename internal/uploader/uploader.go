package uploader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/pixelsaas/media-api/internal/video/models"
)

// MaxFileSize is the local cap checked before any bytes leave the machine.
const MaxFileSize = 70 << 20 // 70 MiB

var (
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrUploadFailed = errors.New("upload failed")
)

// ProgressFunc receives fractional progress 0–100 as bytes are transferred.
// Calls are monotonically non-decreasing.
type ProgressFunc func(percent int)

// Uploader streams files directly to the media host with an issued
// credential. It never retries: a failed upload needs a fresh credential and
// an explicit resubmission by the caller.
type Uploader struct {
	http   *http.Client
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Uploader {
	return &Uploader{
		// Large uploads on slow links can legitimately take minutes.
		http:   &http.Client{Timeout: 10 * time.Minute},
		logger: logger.With().Str("component", "uploader").Logger(),
	}
}

type UploadInput struct {
	// UploadURL is the host's direct upload endpoint.
	UploadURL string
	// File supplies the raw bytes; Size must be its exact byte length.
	File     io.Reader
	Filename string
	Size     int64
	// Credential is the signed credential from the issuer endpoint.
	Credential models.UploadCredential
	// Progress is optional.
	Progress ProgressFunc
}

// Upload pushes the file to the host and returns the host-reported asset
// reference. Oversized files are rejected locally with zero bytes
// transferred.
func (u *Uploader) Upload(ctx context.Context, in UploadInput) (*models.AssetReference, error) {
	if in.Size > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, in.Size, MaxFileSize)
	}
	if in.File == nil || in.UploadURL == "" {
		return nil, fmt.Errorf("uploader: file and upload url are required")
	}

	body := newProgressReader(in.File, in.Size, in.Progress)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeForm(mw, body, in)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, in.UploadURL, pr)
	if err != nil {
		return nil, fmt.Errorf("uploader: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		u.logger.Error().Int("status", resp.StatusCode).Str("url", in.UploadURL).
			Msg("host rejected upload")
		return nil, fmt.Errorf("%w: host returned status %d", ErrUploadFailed, resp.StatusCode)
	}

	var hostResp struct {
		PublicID string  `json:"public_id"`
		Bytes    int64   `json:"bytes"`
		Duration float64 `json:"duration"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&hostResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUploadFailed, err)
	}

	body.finish()

	u.logger.Info().
		Str("public_id", hostResp.PublicID).
		Int64("bytes", hostResp.Bytes).
		Msg("upload complete")

	return &models.AssetReference{
		PublicID: hostResp.PublicID,
		Bytes:    hostResp.Bytes,
		Duration: hostResp.Duration,
	}, nil
}

func writeForm(mw *multipart.Writer, file io.Reader, in UploadInput) error {
	fields := map[string]string{
		"api_key":   in.Credential.APIKey,
		"timestamp": strconv.FormatInt(in.Credential.Timestamp, 10),
		"signature": in.Credential.Signature,
		"folder":    in.Credential.Folder,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}

	part, err := mw.CreateFormFile("file", in.Filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}
