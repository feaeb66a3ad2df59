package mediahost

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultAPIBase = "https://api.cloudinary.com/v1_1"

// Client talks to the media host's admin and upload APIs. The host owns the
// actual bytes and their derived transformations; we only ever reference
// assets by public id.
type Client struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	http      *http.Client
	clock     func() time.Time
	logger    zerolog.Logger
}

type ClientConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// BaseURL overrides the host API root, mainly for tests.
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("mediahost: cloud name, api key and api secret are required")
	}

	base := cfg.BaseURL
	if base == "" {
		base = defaultAPIBase
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		baseURL:   strings.TrimRight(base, "/"),
		http:      &http.Client{Timeout: timeout},
		clock:     time.Now,
		logger:    cfg.Logger.With().Str("component", "mediahost").Logger(),
	}, nil
}

func (c *Client) CloudName() string { return c.cloudName }
func (c *Client) APIKey() string    { return c.apiKey }

// UploadURL is the direct-upload endpoint clients push bytes to.
func (c *Client) UploadURL() string {
	return fmt.Sprintf("%s/%s/video/upload", c.baseURL, c.cloudName)
}

// SignUpload issues a short-lived scoped credential for a direct upload into
// folder. Stateless: single use is the host's concern, not ours.
func (c *Client) SignUpload(folder string) (signature string, timestamp int64) {
	ts := c.clock().Unix()
	sig := SignParams(map[string]string{
		"folder":    folder,
		"timestamp": strconv.FormatInt(ts, 10),
	}, c.apiSecret)
	return sig, ts
}

// Resource is the host's view of an uploaded asset, including any derived
// (transformed) variants it has finished computing.
type Resource struct {
	PublicID string         `json:"public_id"`
	Bytes    int64          `json:"bytes"`
	Duration float64        `json:"duration"`
	Derived  []DerivedAsset `json:"derived"`
}

type DerivedAsset struct {
	Transformation string `json:"transformation"`
	Format         string `json:"format"`
	Bytes          int64  `json:"bytes"`
}

// DerivedSize returns the byte size of the derived asset matching the given
// transformation, or false if the host has not produced it yet.
func (r *Resource) DerivedSize(transformation string) (int64, bool) {
	for _, d := range r.Derived {
		if d.Transformation == transformation && d.Bytes > 0 {
			return d.Bytes, true
		}
	}
	return 0, false
}

// GetResource queries the admin API for the asset's current state.
func (c *Client) GetResource(ctx context.Context, publicID string) (*Resource, error) {
	u := fmt.Sprintf("%s/%s/resources/video/upload/%s", c.baseURL, c.cloudName, url.PathEscape(publicID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("mediahost get resource: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mediahost get resource: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mediahost get resource: unexpected status %d", resp.StatusCode)
	}

	var res Resource
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("mediahost get resource decode: %w", err)
	}
	return &res, nil
}

// ExplicitTransform asks the host to eagerly derive the given transformation
// for an already uploaded asset. The request is signed the same way as an
// upload.
func (c *Client) ExplicitTransform(ctx context.Context, publicID, transformation string) error {
	ts := strconv.FormatInt(c.clock().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"eager":     transformation,
		"type":      "upload",
		"timestamp": ts,
	}
	sig := SignParams(params, c.apiSecret)

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", c.apiKey)
	form.Set("signature", sig)

	u := fmt.Sprintf("%s/%s/video/explicit", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("mediahost explicit: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mediahost explicit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mediahost explicit: unexpected status %d", resp.StatusCode)
	}

	c.logger.Debug().Str("public_id", publicID).Str("transformation", transformation).
		Msg("explicit transform requested")
	return nil
}
