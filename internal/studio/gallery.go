package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phambaophuc/ai-image-studio/internal/apperrors"
	"github.com/phambaophuc/ai-image-studio/internal/models"
	"github.com/phambaophuc/ai-image-studio/internal/services/processor"
	"github.com/phambaophuc/ai-image-studio/internal/services/resolution"
	"github.com/phambaophuc/ai-image-studio/pkg/utils"
	"go.uber.org/zap"
)

const noImagesMessage = "Image generation failed. No images were returned."

type batch struct {
	id         string
	request    models.GenerationRequest
	resolution models.Resolution
	ctx        context.Context
	cancel     context.CancelFunc
	cards      []*card
}

type card struct {
	index int
	state models.CardState
	image *models.GeneratedImage
	share models.ShareView
}

func (c *card) view(b *batch) models.GalleryCard {
	v := models.GalleryCard{
		Index:       c.index,
		State:       c.state,
		AspectRatio: b.request.AspectRatio,
		Share:       c.share,
	}
	switch c.state {
	case models.CardPending:
		v.StatusText = models.StatusGenerating
		v.Spinner = true
	case models.CardFailed:
		v.StatusText = models.StatusFailed
	case models.CardFilled:
		base := fmt.Sprintf("/api/v1/cards/%d", c.index)
		v.ImageURL = base + "/image?batch=" + b.id
		v.ThumbnailURL = base + "/thumbnail?batch=" + b.id
		v.DownloadURL = base + "/download?batch=" + b.id
	}
	return v
}

// SubmitBatch validates the request, replaces the gallery with Pending cards
// and starts generating in the background. The controls stay locked until
// the batch has settled.
func (s *Studio) SubmitBatch(req models.GenerationRequest) (string, error) {
	const op = "studio.SubmitBatch"

	req.PromptText = strings.TrimSpace(req.PromptText)
	req.AspectRatio = strings.TrimSpace(req.AspectRatio)

	var message string
	switch {
	case req.PromptText == "":
		message = "Please enter a prompt."
	case req.AspectRatio == "":
		message = "Please select an aspect ratio."
	case req.ImageCount < 1 || req.ImageCount > s.maxImages:
		message = "Please select the number of images."
	}
	if message != "" {
		s.showError(message)
		return "", apperrors.New(apperrors.KindValidation, op, message)
	}

	res, err := resolution.Select(req.AspectRatio)
	if err != nil {
		s.showError(apperrors.UserMessage(err, "Invalid aspect ratio."))
		return "", err
	}

	release, err := s.guard.Acquire(false)
	if err != nil {
		return "", err
	}
	handedOff := false
	defer func() {
		if !handedOff {
			release()
		}
	}()

	s.DismissBanner()
	b := s.replaceBatch(req, res)

	s.logger.Info("Batch started",
		zap.String("batch_id", b.id),
		zap.Int("count", req.ImageCount),
		zap.String("resolution", res.String()),
	)

	s.goBackground(func() {
		defer release()
		s.runBatch(b)
	})
	handedOff = true

	return b.id, nil
}

func (s *Studio) replaceBatch(req models.GenerationRequest, res models.Resolution) *batch {
	ctx, cancel := context.WithCancel(s.ctx)
	b := &batch{
		id:         uuid.New().String(),
		request:    req,
		resolution: res,
		ctx:        ctx,
		cancel:     cancel,
		cards:      make([]*card, req.ImageCount),
	}
	for i := range b.cards {
		b.cards[i] = &card{
			index: i,
			state: models.CardPending,
			share: models.ShareView{Status: models.ShareIdle},
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch != nil {
		s.batch.cancel()
	}
	s.batch = b
	s.preview = models.Preview{}
	s.alert = ""
	return b
}

func (s *Studio) runBatch(b *batch) {
	images, err := s.images.GenerateImages(b.ctx, b.resolution, b.request.ImageCount, b.request)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch != b {
		return
	}

	if len(images) == 0 {
		s.showErrorLocked(apperrors.UserMessage(err, noImagesMessage))
		for _, c := range b.cards {
			if c.state == models.CardPending {
				c.state = models.CardFailed
			}
		}
		s.logger.Warn("Batch failed", zap.String("batch_id", b.id), zap.Error(err))
		return
	}

	for i := range images {
		if i >= len(b.cards) {
			break
		}
		img := images[i]
		b.cards[i].state = models.CardFilled
		b.cards[i].image = &img
	}
	for _, c := range b.cards {
		if c.state == models.CardPending {
			c.state = models.CardFailed
		}
	}

	s.logger.Info("Batch completed", zap.String("batch_id", b.id), zap.Int("images", len(images)))
}

// filledCard returns the card at index if it holds an image. Callers hold s.mu.
func (s *Studio) filledCard(index int) (*batch, *card, error) {
	if s.batch == nil {
		return nil, nil, ErrNoBatch
	}
	if index < 0 || index >= len(s.batch.cards) {
		return nil, nil, ErrCardNotFound
	}
	c := s.batch.cards[index]
	if c.state != models.CardFilled || c.image == nil {
		return nil, nil, ErrCardNotReady
	}
	return s.batch, c, nil
}

func (s *Studio) image(index int) (*batch, models.GeneratedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, c, err := s.filledCard(index)
	if err != nil {
		return nil, models.GeneratedImage{}, err
	}
	return b, *c.image, nil
}

// Image returns the raw bytes and content type of a filled card.
func (s *Studio) Image(index int) ([]byte, string, error) {
	_, img, err := s.image(index)
	if err != nil {
		return nil, "", err
	}
	mime := img.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return img.Data, mime, nil
}

// Thumbnail returns a PNG that fits the gallery grid.
func (s *Studio) Thumbnail(index int) ([]byte, error) {
	_, img, err := s.image(index)
	if err != nil {
		return nil, err
	}
	return s.processor.Thumbnail(img.Data, processor.ThumbnailSize, processor.ThumbnailSize)
}

// Download returns the image as PNG along with its file name. Nothing
// leaves the process.
func (s *Studio) Download(index int) ([]byte, string, error) {
	_, img, err := s.image(index)
	if err != nil {
		return nil, "", err
	}
	data, err := s.processor.EnsurePNG(img.Data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to prepare download: %w", err)
	}
	return data, utils.DownloadFilename(index + 1), nil
}

func (s *Studio) Preview(index int) (models.Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, c, err := s.filledCard(index)
	if err != nil {
		return models.Preview{}, err
	}
	s.preview = models.Preview{
		Open:        true,
		CardIndex:   c.index,
		ImageURL:    c.view(b).ImageURL,
		AspectRatio: b.request.AspectRatio,
	}
	return s.preview, nil
}

func (s *Studio) ClosePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = models.Preview{}
}
