// Command upload pushes a local video through the whole flow: fetch a signed
// credential from the API, stream the file directly to the media host, then
// submit the metadata for reconciliation.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pixelsaas/media-api/internal/app"
	"github.com/pixelsaas/media-api/internal/uploader"
	"github.com/pixelsaas/media-api/internal/video/httpapi"
	"github.com/pixelsaas/media-api/internal/video/models"
)

func main() {
	code := app.Run("upload", run)
	os.Exit(code)
}

func run(ctx context.Context) error {
	var (
		apiURL      = flag.String("api", "http://localhost:8081", "base URL of the media API")
		token       = flag.String("token", os.Getenv("SESSION_TOKEN"), "session token")
		file        = flag.String("file", "", "path to the video file")
		title       = flag.String("title", "", "video title")
		description = flag.String("description", "", "video description")
		uploadURL   = flag.String("upload-url", "", "override the host upload endpoint")
	)
	flag.Parse()

	if *file == "" || *title == "" {
		return fmt.Errorf("usage: upload -file <path> -title <title> [-description <text>]")
	}
	if *token == "" {
		return fmt.Errorf("session token is required (-token or SESSION_TOKEN)")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}

	var sig httpapi.SignatureResponse
	if err := getJSON(ctx, client, *apiURL+"/api/signature", *token, &sig); err != nil {
		return fmt.Errorf("get signature: %w", err)
	}

	target := *uploadURL
	if target == "" {
		target = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/video/upload", sig.CloudName)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	up := uploader.New(logger)

	ref, err := up.Upload(ctx, uploader.UploadInput{
		UploadURL: target,
		File:      f,
		Filename:  filepath.Base(*file),
		Size:      info.Size(),
		Credential: models.UploadCredential{
			Signature: sig.Signature,
			Timestamp: sig.Timestamp,
			Folder:    "video-uploads",
			APIKey:    sig.APIKey,
			CloudName: sig.CloudName,
		},
		Progress: func(percent int) {
			fmt.Fprintf(os.Stderr, "\ruploading... %d%%", percent)
		},
	})
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	fmt.Fprintln(os.Stderr)

	var saved httpapi.VideoResponse
	err = postJSON(ctx, client, *apiURL+"/api/videos", *token, httpapi.SaveVideoRequest{
		Title:        *title,
		Description:  *description,
		PublicID:     ref.PublicID,
		OriginalSize: info.Size(),
		Duration:     ref.Duration,
	}, &saved)
	if err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}

	fmt.Printf("saved %s (original %s bytes, compressed %s bytes)\n",
		saved.PublicID, saved.OriginalSize, saved.CompressedSize)
	return nil
}

func getJSON(ctx context.Context, client *http.Client, url, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return doJSON(client, req, out)
}

func postJSON(ctx context.Context, client *http.Client, url, token string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return doJSON(client, req, out)
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
