package processor

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Thumbnail scales the image down to fit within maxWidth x maxHeight, keeping
// its aspect ratio, and encodes the result as PNG.
func (p *ImageProcessor) Thumbnail(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buffer := &bytes.Buffer{}
	if err := imaging.Encode(buffer, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buffer.Bytes(), nil
}
