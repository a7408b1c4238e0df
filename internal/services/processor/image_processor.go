package processor

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/phambaophuc/ai-image-studio/pkg/utils"
)

const (
	DefaultMaxFileSize = 20 << 20 // 20MB
	ThumbnailSize      = 512
)

type ImageProcessor struct {
	maxFileSize int64
}

func NewImageProcessor(maxFileSize int64) *ImageProcessor {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &ImageProcessor{maxFileSize: maxFileSize}
}

// DecodeBase64 turns a base64 payload (with or without data URL prefix) into
// validated image bytes and their MIME type.
func (p *ImageProcessor) DecodeBase64(payload string) ([]byte, string, error) {
	raw := strings.TrimSpace(utils.StripDataURLPrefix(payload))
	if raw == "" {
		return nil, "", fmt.Errorf("empty image payload")
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64: %w", err)
	}

	if _, err := p.ValidateImage(data); err != nil {
		return nil, "", err
	}

	return data, http.DetectContentType(data), nil
}
