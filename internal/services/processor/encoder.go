package processor

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// EnsurePNG returns data unchanged when it is already PNG, otherwise re-encodes it.
func (p *ImageProcessor) EnsurePNG(data []byte) ([]byte, error) {
	format, err := p.ValidateImage(data)
	if err != nil {
		return nil, err
	}
	if format == "png" {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	buffer := &bytes.Buffer{}
	if err := imaging.Encode(buffer, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buffer.Bytes(), nil
}
