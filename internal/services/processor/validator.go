package processor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ValidateImage checks the payload size and that it decodes as an image.
// It returns the detected format name.
func (p *ImageProcessor) ValidateImage(data []byte, maxSize ...int64) (string, error) {
	limit := p.maxFileSize
	if len(maxSize) > 0 && maxSize[0] > 0 {
		limit = maxSize[0]
	}

	size := int64(len(data))
	if size == 0 {
		return "", fmt.Errorf("empty image payload")
	}
	if size > limit {
		return "", fmt.Errorf("file size %d exceeds maximum allowed size %d", size, limit)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("invalid image format: %w", err)
	}

	return format, nil
}
