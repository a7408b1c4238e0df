package models

import (
	"encoding/base64"
	"fmt"
)

// GenerationRequest is the user input captured when a batch is submitted.
// It is not modified for the lifetime of the batch.
type GenerationRequest struct {
	PromptText  string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
	ImageCount  int    `json:"image_count"`
}

// Resolution is one of the output sizes the generation endpoint accepts.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Resolution) Ratio() float64 {
	return float64(r.Width) / float64(r.Height)
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// GeneratedImage is a decoded image returned by the generation endpoint.
type GeneratedImage struct {
	Index         int
	Data          []byte
	MimeType      string
	SourceRequest GenerationRequest
}

// Base64 returns the payload without any data URL prefix.
func (g GeneratedImage) Base64() string {
	return base64.StdEncoding.EncodeToString(g.Data)
}

// DataURL returns the payload as a data URL usable in an <img> tag.
func (g GeneratedImage) DataURL() string {
	mime := g.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + g.Base64()
}

// HostedImageLink is the public URL of an image uploaded for sharing.
type HostedImageLink struct {
	PublicURL string `json:"public_url"`
}
