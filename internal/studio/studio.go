package studio

import (
	"context"
	"fmt"
	"sync"

	"github.com/phambaophuc/ai-image-studio/internal/apperrors"
	"github.com/phambaophuc/ai-image-studio/internal/models"
	"go.uber.org/zap"
)

const (
	DefaultShareTitle    = "AI Art by Arvin Kumar AI"
	DefaultMaxImageCount = 4
)

var (
	ErrNoBatch      = apperrors.New(apperrors.KindNotFound, "studio", "No images have been generated yet.")
	ErrCardNotFound = apperrors.New(apperrors.KindNotFound, "studio", "Image card not found.")
	ErrCardNotReady = apperrors.New(apperrors.KindValidation, "studio", "This image is not ready yet.")
)

type ImageGenerator interface {
	GenerateImages(ctx context.Context, res models.Resolution, count int, req models.GenerationRequest) ([]models.GeneratedImage, error)
}

type PromptGenerator interface {
	GeneratePrompt(ctx context.Context) (string, error)
}

// ImageUploader publishes an image for sharing. A nil link means the upload failed.
type ImageUploader interface {
	UploadImage(ctx context.Context, imageData string) *models.HostedImageLink
}

type ImageProcessor interface {
	Thumbnail(data []byte, maxWidth, maxHeight int) ([]byte, error)
	EnsurePNG(data []byte) ([]byte, error)
}

type Dependencies struct {
	Images     ImageGenerator
	Prompts    PromptGenerator
	Uploader   ImageUploader
	Processor  ImageProcessor
	ShareTitle string
	Logger     *zap.Logger

	// MaxImageCount caps the images of one batch; zero means DefaultMaxImageCount.
	MaxImageCount int
}

// Studio is the state behind the page: the guarded controls, the error
// banner, the preview overlay and the cards of the current batch.
type Studio struct {
	mu      sync.Mutex
	guard   *Guard
	banner  models.Banner
	alert   string
	preview models.Preview
	batch   *batch

	images     ImageGenerator
	prompts    PromptGenerator
	uploader   ImageUploader
	processor  ImageProcessor
	shareTitle string
	maxImages  int
	logger     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(deps Dependencies) *Studio {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	title := deps.ShareTitle
	if title == "" {
		title = DefaultShareTitle
	}

	maxImages := deps.MaxImageCount
	if maxImages <= 0 {
		maxImages = DefaultMaxImageCount
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Studio{
		guard:      NewGuard(),
		images:     deps.Images,
		prompts:    deps.Prompts,
		uploader:   deps.Uploader,
		processor:  deps.Processor,
		shareTitle: title,
		maxImages:  maxImages,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *Studio) Guard() *Guard {
	return s.guard
}

// Wait blocks until every background generation and upload has finished.
func (s *Studio) Wait() {
	s.wg.Wait()
}

// Close cancels all background work and waits for it to stop.
func (s *Studio) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Studio) Snapshot() models.StudioSnapshot {
	controls := s.guard.Controls()

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.StudioSnapshot{
		Controls: controls,
		Banner:   s.banner,
		Alert:    s.alert,
		Preview:  s.preview,
		Cards:    []models.GalleryCard{},
	}
	if b := s.batch; b != nil {
		req := b.request
		snap.BatchID = b.id
		snap.Request = &req
		for _, c := range b.cards {
			snap.Cards = append(snap.Cards, c.view(b))
		}
	}
	return snap
}

func (s *Studio) DismissBanner() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banner = models.Banner{}
}

func (s *Studio) DismissAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = ""
}

// ReportUnhandled shows a recovered panic value in the banner.
func (s *Studio) ReportUnhandled(value any) {
	s.logger.Error("Unhandled error", zap.Any("panic", value))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.showErrorLocked(fmt.Sprintf("An unexpected error occurred: %v", value))
}

func (s *Studio) showError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showErrorLocked(message)
}

func (s *Studio) showErrorLocked(message string) {
	s.banner = models.Banner{Visible: true, Message: message}
}

// goBackground runs fn on its own goroutine, tracked by Wait and with
// panics reported to the banner.
func (s *Studio) goBackground(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.ReportUnhandled(r)
			}
		}()
		fn()
	}()
}
