package studio

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"
	"testing"

	"github.com/phambaophuc/ai-image-studio/internal/models"
	"github.com/phambaophuc/ai-image-studio/internal/services/processor"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockImages struct {
	mu      sync.Mutex
	images  []models.GeneratedImage
	err     error
	calls   int
	lastRes models.Resolution
	lastReq models.GenerationRequest
	block   chan struct{}
	panicOn bool
}

func (m *mockImages) GenerateImages(ctx context.Context, res models.Resolution, count int, req models.GenerationRequest) ([]models.GeneratedImage, error) {
	m.mu.Lock()
	m.calls++
	m.lastRes = res
	m.lastReq = req
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.panicOn {
		panic("generator exploded")
	}
	return m.images, m.err
}

type mockPrompts struct {
	text   string
	err    error
	calls  int
	during func()
}

func (m *mockPrompts) GeneratePrompt(ctx context.Context) (string, error) {
	m.calls++
	if m.during != nil {
		m.during()
	}
	return m.text, m.err
}

type mockUploader struct {
	mu       sync.Mutex
	link     *models.HostedImageLink
	calls    int
	payloads []string
	block    chan struct{}
}

func (m *mockUploader) UploadImage(ctx context.Context, imageData string) *models.HostedImageLink {
	m.mu.Lock()
	m.calls++
	m.payloads = append(m.payloads, imageData)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil
		}
	}
	return m.link
}

func (m *mockUploader) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockTarget struct {
	canShare bool
	shareErr error
	copyErr  error
	shared   []models.ShareOutcome
	copied   []string
}

func (m *mockTarget) CanShare() bool { return m.canShare }

func (m *mockTarget) Share(ctx context.Context, outcome models.ShareOutcome) error {
	m.shared = append(m.shared, outcome)
	return m.shareErr
}

func (m *mockTarget) CopyText(ctx context.Context, text string) error {
	m.copied = append(m.copied, text)
	return m.copyErr
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func generatedImages(t *testing.T, req models.GenerationRequest) []models.GeneratedImage {
	t.Helper()
	out := make([]models.GeneratedImage, req.ImageCount)
	for i := range out {
		out[i] = models.GeneratedImage{
			Index:         i,
			Data:          pngBytes(t, 32+i, 18),
			MimeType:      "image/png",
			SourceRequest: req,
		}
	}
	return out
}

type fixture struct {
	studio   *Studio
	images   *mockImages
	prompts  *mockPrompts
	uploader *mockUploader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		images:   &mockImages{},
		prompts:  &mockPrompts{},
		uploader: &mockUploader{},
	}
	f.studio = New(Dependencies{
		Images:     f.images,
		Prompts:    f.prompts,
		Uploader:   f.uploader,
		Processor:  processor.NewImageProcessor(0),
		ShareTitle: "AI Art",
		Logger:     zaptest.NewLogger(t),
	})
	t.Cleanup(f.studio.Close)
	return f
}

// filledBatch submits a batch that completes with count images.
func (f *fixture) filledBatch(t *testing.T, count int) models.GenerationRequest {
	t.Helper()
	req := models.GenerationRequest{PromptText: "a fox in a forest", AspectRatio: "16/9", ImageCount: count}
	f.images.images = generatedImages(t, req)
	_, err := f.studio.SubmitBatch(req)
	require.NoError(t, err)
	f.studio.Wait()
	return req
}
