package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/ai-image-studio/internal/apperrors"
	"github.com/phambaophuc/ai-image-studio/internal/models"
	"github.com/phambaophuc/ai-image-studio/internal/services/prompt"
	"github.com/phambaophuc/ai-image-studio/internal/studio"
	"go.uber.org/zap"
)

var errNativeShareFailed = errors.New("native share failed in the browser")

// browserTarget stands in for the browser's share sheet and clipboard. The
// browser has already tried the share sheet when it calls in, so Share only
// reports that result; copying is done by the page from the response.
type browserTarget struct {
	native bool
	failed bool
}

func (t browserTarget) CanShare() bool { return t.native }

func (t browserTarget) Share(ctx context.Context, outcome models.ShareOutcome) error {
	if t.failed {
		return errNativeShareFailed
	}
	return nil
}

func (t browserTarget) CopyText(ctx context.Context, text string) error { return nil }

// === REQUEST PARSING ===

func (h *StudioHandler) cardIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		h.respondError(c, http.StatusBadRequest, "invalid card index: must be a non-negative integer")
		return 0, false
	}
	return index, true
}

// === COMMANDS ===

func (h *StudioHandler) dispatch(c *gin.Context, cmd studio.Command, status int) {
	res, err := h.studio.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		h.respondCommandError(c, err, res.Snapshot)
		return
	}
	h.respondSnapshot(c, status, res.Snapshot)
}

func (h *StudioHandler) dispatchCard(c *gin.Context, kind studio.CommandKind, onSuccess func(studio.Result)) {
	index, ok := h.cardIndex(c)
	if !ok {
		return
	}

	res, err := h.studio.Dispatch(c.Request.Context(), studio.Command{Kind: kind, CardIndex: index})
	if err != nil {
		h.respondCommandError(c, err, res.Snapshot)
		return
	}
	onSuccess(res)
}

// === RESPONSE HANDLING ===

func (h *StudioHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// respondCommandError answers with the user-facing message of err and the
// state after the failed command, so the page can show the banner.
func (h *StudioHandler) respondCommandError(c *gin.Context, err error, snap models.StudioSnapshot) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Command failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	message := apperrors.UserMessage(err, "")
	if message == "" && snap.Banner.Visible {
		message = snap.Banner.Message
	}
	if message == "" {
		message = err.Error()
	}

	c.JSON(status, models.APIResponse{
		Success: false,
		Data:    snap,
		Error:   message,
	})
}

func (h *StudioHandler) respondSnapshot(c *gin.Context, status int, snap models.StudioSnapshot) {
	c.JSON(status, models.APIResponse{
		Success: true,
		Data:    snap,
	})
}

func (h *StudioHandler) respondImage(c *gin.Context, data []byte, mime string) {
	c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", maxCacheAge))
	c.Data(http.StatusOK, mime, data)
}

func statusFor(err error) int {
	if errors.Is(err, prompt.ErrNoPrompt) {
		return http.StatusBadGateway
	}

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindInvalidFormat:
		return http.StatusBadRequest
	case apperrors.KindBusy:
		return http.StatusConflict
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindTransport, apperrors.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// === UTILITY METHODS ===

func (h *StudioHandler) maxImageCount() int {
	if h.config == nil || h.config.Gallery.MaxImageCount <= 0 {
		return studio.DefaultMaxImageCount
	}
	return h.config.Gallery.MaxImageCount
}

func (h *StudioHandler) tokenStatus() string {
	if h.config == nil || h.config.ImageAPI.Token == "" {
		return "not configured"
	}
	return "healthy"
}

func (h *StudioHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
