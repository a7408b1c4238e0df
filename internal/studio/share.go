package studio

import (
	"context"
	"fmt"

	"github.com/phambaophuc/ai-image-studio/internal/apperrors"
	"github.com/phambaophuc/ai-image-studio/internal/models"
	"go.uber.org/zap"
)

const (
	alertUploadFailed   = "Image upload failed. Cannot share."
	alertNotSupported   = "Sharing not supported. Link copied to clipboard!"
	alertShareFailed    = "Failed to share. Copied to clipboard."
	bannerUploadFailed  = "Image upload failed. Please try again."
	uploadingShareLabel = "Uploading..."
)

var ErrShareNotReady = apperrors.New(apperrors.KindValidation, "studio", "The image has not been uploaded for sharing yet.")

// ShareTarget is where a share ends up: the platform share sheet when it
// exists, the clipboard otherwise.
type ShareTarget interface {
	CanShare() bool
	Share(ctx context.Context, outcome models.ShareOutcome) error
	CopyText(ctx context.Context, text string) error
}

// ShareText is the message shared alongside the hosted image URL.
func ShareText(prompt, url string) string {
	return fmt.Sprintf("🎨 AI Image Prompt: \"%s\"\n\nView the image: %s", prompt, url)
}

// Share uploads the card's image in the background. Once the upload
// succeeds the card exposes a tap-to-share control. The upload belongs to
// the current batch and is cancelled when the batch is replaced.
func (s *Studio) Share(index int) error {
	s.mu.Lock()
	b, c, err := s.filledCard(index)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if c.share.Status == models.ShareUploading {
		s.mu.Unlock()
		return nil
	}
	c.share = models.ShareView{Status: models.ShareUploading, Message: uploadingShareLabel}
	s.alert = ""
	img := *c.image
	s.mu.Unlock()

	s.goBackground(func() {
		s.upload(b, c, img)
	})
	return nil
}

func (s *Studio) upload(b *batch, c *card, img models.GeneratedImage) {
	link := s.uploader.UploadImage(b.ctx, img.DataURL())

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batch != b || b.ctx.Err() != nil {
		s.logger.Debug("Discarding upload of a replaced batch", zap.String("batch_id", b.id))
		return
	}

	if link == nil || link.PublicURL == "" {
		c.share = models.ShareView{Status: models.ShareIdle}
		s.showErrorLocked(bannerUploadFailed)
		s.alert = alertUploadFailed
		return
	}

	c.share = models.ShareView{
		Status: models.ShareReady,
		Title:  s.shareTitle,
		Text:   ShareText(b.request.PromptText, link.PublicURL),
		URL:    link.PublicURL,
	}
}

// TapShare hands a ready share to target. When target cannot share, or its
// share fails, the text is copied to the clipboard instead. Either way the
// tap-to-share control is removed afterwards.
func (s *Studio) TapShare(ctx context.Context, index int, target ShareTarget) (models.ShareOutcome, error) {
	s.mu.Lock()
	b, c, err := s.filledCard(index)
	if err == nil && c.share.Status != models.ShareReady {
		err = ErrShareNotReady
	}
	if err != nil {
		s.mu.Unlock()
		return models.ShareOutcome{}, err
	}
	outcome := models.ShareOutcome{
		Title: c.share.Title,
		Text:  c.share.Text,
		URL:   c.share.URL,
	}
	s.mu.Unlock()

	if target.CanShare() {
		outcome.Method = models.ShareMethodNative
		if err := target.Share(ctx, outcome); err != nil {
			s.logger.Warn("Sharing failed", zap.Error(err))
			outcome.Method = models.ShareMethodClipboard
			outcome.Alert = alertShareFailed
			s.copyText(ctx, target, outcome.Text)
		}
	} else {
		outcome.Method = models.ShareMethodClipboard
		outcome.Alert = alertNotSupported
		if err := target.CopyText(ctx, outcome.Text); err != nil {
			s.logger.Warn("Sharing failed", zap.Error(err))
			outcome.Alert = alertShareFailed
			s.copyText(ctx, target, outcome.Text)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.batch == b {
		c.share = models.ShareView{Status: models.ShareIdle}
	}
	s.alert = outcome.Alert
	return outcome, nil
}

func (s *Studio) copyText(ctx context.Context, target ShareTarget, text string) {
	if err := target.CopyText(ctx, text); err != nil {
		s.logger.Warn("Copy to clipboard failed", zap.Error(err))
	}
}
