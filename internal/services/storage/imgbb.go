package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultImgBBURL     = "https://api.imgbb.com/1/upload"
	defaultImgBBTimeout = 60 * time.Second
)

type ImgBBOptions struct {
	APIKey     string
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// ImgBBHost uploads images to the ImgBB API.
type ImgBBHost struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewImgBBHost(opts ImgBBOptions) *ImgBBHost {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = DefaultImgBBURL
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultImgBBTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &ImgBBHost{
		apiKey:     strings.TrimSpace(opts.APIKey),
		endpoint:   endpoint,
		httpClient: client,
	}
}

func (h *ImgBBHost) Name() string { return "imgbb" }

func (h *ImgBBHost) Upload(ctx context.Context, base64Image string) (string, error) {
	if h.apiKey == "" {
		return "", errors.New("imgbb: API key is missing")
	}

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	if err := form.WriteField("key", h.apiKey); err != nil {
		return "", fmt.Errorf("imgbb: failed to write form: %w", err)
	}
	if err := form.WriteField("image", base64Image); err != nil {
		return "", fmt.Errorf("imgbb: failed to write form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("imgbb: failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("imgbb: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("imgbb: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var out imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("imgbb: failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if !out.Success {
		msg := "upload failed"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("imgbb: %s (status %d)", msg, resp.StatusCode)
	}
	if out.Data.URL == "" {
		return "", errors.New("imgbb: response has no url")
	}

	return out.Data.URL, nil
}

func (h *ImgBBHost) HealthCheck(ctx context.Context) string {
	if h.apiKey == "" {
		return "not configured"
	}
	return "healthy"
}
