package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/phambaophuc/ai-image-studio/internal/config"
	"github.com/phambaophuc/ai-image-studio/internal/models"
	"github.com/phambaophuc/ai-image-studio/pkg/utils"
	"go.uber.org/zap"
)

// ImageHost publishes a base64 image payload and returns its public URL.
type ImageHost interface {
	Name() string
	Upload(ctx context.Context, base64Image string) (string, error)
	HealthCheck(ctx context.Context) string
}

// Uploader wraps an ImageHost with the soft-failure contract used by the share
// flow: failures are logged and reported as a nil link.
type Uploader struct {
	host   ImageHost
	logger *zap.Logger
}

func NewUploader(host ImageHost, logger *zap.Logger) *Uploader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uploader{host: host, logger: logger}
}

// NewUploaderFromConfig builds the uploader for the host selected in cfg.
func NewUploaderFromConfig(cfg *config.Config, logger *zap.Logger) (*Uploader, error) {
	var host ImageHost
	switch strings.ToLower(cfg.ImageHost.Provider) {
	case "", config.HostImgBB:
		host = NewImgBBHost(ImgBBOptions{
			APIKey:   cfg.ImageHost.ImgBBKey,
			Endpoint: cfg.ImageHost.ImgBBURL,
			Timeout:  cfg.ImageHost.Timeout,
		})
	case config.HostSupabase:
		host = NewSupabaseHost(cfg.Supabase)
	default:
		return nil, fmt.Errorf("unknown image host %q", cfg.ImageHost.Provider)
	}
	return NewUploader(host, logger), nil
}

// UploadImage returns the hosted link, or nil when anything goes wrong.
func (u *Uploader) UploadImage(ctx context.Context, imageData string) *models.HostedImageLink {
	if u == nil || u.host == nil {
		return nil
	}

	payload := utils.StripDataURLPrefix(imageData)
	if payload == "" {
		u.logger.Warn("Image upload skipped: empty payload")
		return nil
	}

	url, err := u.host.Upload(ctx, payload)
	if err != nil {
		u.logger.Error("Image upload failed", zap.String("host", u.host.Name()), zap.Error(err))
		return nil
	}

	u.logger.Info("Image uploaded for sharing", zap.String("host", u.host.Name()), zap.String("url", url))
	return &models.HostedImageLink{PublicURL: url}
}

// HealthCheck reports the status of the configured host.
func (u *Uploader) HealthCheck(ctx context.Context) map[string]string {
	status := make(map[string]string)
	if u == nil || u.host == nil {
		status["image_host"] = "not configured"
		return status
	}
	status[u.host.Name()] = u.host.HealthCheck(ctx)
	return status
}
