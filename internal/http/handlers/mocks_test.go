package handlers

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/phambaophuc/ai-image-studio/internal/models"
	"github.com/stretchr/testify/require"
)

type mockImages struct {
	images []models.GeneratedImage
	err    error
}

func (m *mockImages) GenerateImages(ctx context.Context, res models.Resolution, count int, req models.GenerationRequest) ([]models.GeneratedImage, error) {
	return m.images, m.err
}

type mockPrompts struct {
	text string
	err  error
}

func (m *mockPrompts) GeneratePrompt(ctx context.Context) (string, error) {
	return m.text, m.err
}

type mockUploader struct {
	link *models.HostedImageLink
}

func (m *mockUploader) UploadImage(ctx context.Context, imageData string) *models.HostedImageLink {
	return m.link
}

type mockHosts struct {
	status map[string]string
}

func (m *mockHosts) HealthCheck(ctx context.Context) map[string]string {
	return m.status
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 40, 30))))
	return buf.Bytes()
}
