package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phambaophuc/ai-image-studio/internal/apperrors"
	"github.com/phambaophuc/ai-image-studio/internal/models"
	"github.com/phambaophuc/ai-image-studio/internal/services/resolution"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint = "https://router.huggingface.co/hyperbolic/v1/images/generations"
	DefaultModel    = "SD2"
	defaultTimeout  = 2 * time.Minute
	maxErrorBody    = 4 << 10
)

// PayloadDecoder turns the base64 image of a response into validated bytes.
type PayloadDecoder interface {
	DecodeBase64(payload string) ([]byte, string, error)
}

type Options struct {
	Endpoint   string
	Model      string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Decoder    PayloadDecoder
	Logger     *zap.Logger
}

type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	decoder    PayloadDecoder
	logger     *zap.Logger
}

func NewClient(opts Options) (*Client, error) {
	if opts.Decoder == nil {
		return nil, fmt.Errorf("decoder is required")
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint:   endpoint,
		model:      model,
		apiKey:     strings.TrimSpace(opts.APIKey),
		httpClient: client,
		decoder:    opts.Decoder,
		logger:     logger,
	}, nil
}

// GenerateImages requests count images one after another. The batch is
// all-or-nothing: the first failure discards every image produced so far and
// the result slice is nil.
func (c *Client) GenerateImages(ctx context.Context, res models.Resolution, count int, req models.GenerationRequest) ([]models.GeneratedImage, error) {
	const op = "generator.GenerateImages"

	prompt := strings.TrimSpace(req.PromptText)
	switch {
	case count < 1:
		return nil, apperrors.New(apperrors.KindValidation, op, "Please select the number of images.")
	case prompt == "":
		return nil, apperrors.New(apperrors.KindValidation, op, "Please enter a prompt.")
	case !resolution.IsAllowed(res):
		return nil, apperrors.New(apperrors.KindValidation, op, "Unsupported resolution "+res.String())
	}

	images := make([]models.GeneratedImage, 0, count)
	for i := 0; i < count; i++ {
		data, mime, err := c.generateOne(ctx, res, prompt)
		if err != nil {
			c.logger.Error("Image generation failed",
				zap.Int("iteration", i+1),
				zap.Int("count", count),
				zap.Error(err),
			)
			return nil, err
		}

		images = append(images, models.GeneratedImage{
			Index:         i,
			Data:          data,
			MimeType:      mime,
			SourceRequest: req,
		})
	}

	return images, nil
}

func (c *Client) generateOne(ctx context.Context, res models.Resolution, prompt string) ([]byte, string, error) {
	const op = "generator.generateOne"
	const apiDown = "Failed to generate image. The API may be down or the request failed."

	body, err := json.Marshal(hyperbolicRequest{
		Prompt:    prompt,
		ModelName: c.model,
		Width:     res.Width,
		Height:    res.Height,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.KindTransport, op, apiDown, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.KindTransport, op, apiDown, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorText, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, "", apperrors.Wrap(apperrors.KindTransport, op, apiDown,
			fmt.Errorf("API Error: %d - %s", resp.StatusCode, strings.TrimSpace(string(errorText))))
	}

	var out hyperbolicResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", apperrors.Wrap(apperrors.KindMalformedResponse, op, apiDown,
			fmt.Errorf("failed to decode response: %w", err))
	}
	if len(out.Images) == 0 {
		return nil, "", apperrors.Wrap(apperrors.KindMalformedResponse, op, apiDown,
			errors.New("response contains no images"))
	}

	data, mime, err := c.decoder.DecodeBase64(out.Images[0].Image)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.KindMalformedResponse, op, apiDown, err)
	}
	return data, mime, nil
}
