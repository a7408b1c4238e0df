package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/ai-image-studio/internal/config"
	"github.com/phambaophuc/ai-image-studio/internal/http/web"
	"github.com/phambaophuc/ai-image-studio/internal/models"
	"github.com/phambaophuc/ai-image-studio/internal/studio"
	"go.uber.org/zap"
)

const (
	maxCacheAge = 3600
	pageTitle   = "AI Image Studio"
)

// HostHealth reports the state of the image host used for sharing.
type HostHealth interface {
	HealthCheck(ctx context.Context) map[string]string
}

type StudioHandler struct {
	studio *studio.Studio
	hosts  HostHealth
	logger *zap.Logger
	config *config.Config
}

func NewStudioHandler(
	studio *studio.Studio,
	hosts HostHealth,
	logger *zap.Logger,
	config *config.Config,
) *StudioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudioHandler{
		studio: studio,
		hosts:  hosts,
		logger: logger,
		config: config,
	}
}

type batchRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
	ImageCount  int    `json:"image_count"`
}

type tapRequest struct {
	Native       bool `json:"native"`
	NativeFailed bool `json:"native_failed"`
}

type promptResponse struct {
	Prompt   string                `json:"prompt"`
	Snapshot models.StudioSnapshot `json:"snapshot"`
}

type batchResponse struct {
	BatchID  string                `json:"batch_id"`
	Snapshot models.StudioSnapshot `json:"snapshot"`
}

type shareResponse struct {
	Share    models.ShareOutcome   `json:"share"`
	Snapshot models.StudioSnapshot `json:"snapshot"`
}

// Page renders the studio page from the current state.
func (h *StudioHandler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":        pageTitle,
		"Snapshot":     h.studio.Snapshot(),
		"AspectRatios": web.AspectRatios,
		"ImageCounts":  web.ImageCountOptions(h.maxImageCount()),
	})
}

func (h *StudioHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    h.studio.Snapshot(),
	})
}

func (h *StudioHandler) GeneratePrompt(c *gin.Context) {
	res, err := h.studio.Dispatch(c.Request.Context(), studio.Command{Kind: studio.CmdGeneratePrompt})
	if err != nil {
		h.respondCommandError(c, err, res.Snapshot)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    promptResponse{Prompt: res.Prompt, Snapshot: res.Snapshot},
	})
}

func (h *StudioHandler) SubmitBatch(c *gin.Context) {
	var body batchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.studio.Dispatch(c.Request.Context(), studio.Command{
		Kind: studio.CmdSubmitBatch,
		Request: models.GenerationRequest{
			PromptText:  body.Prompt,
			AspectRatio: body.AspectRatio,
			ImageCount:  body.ImageCount,
		},
	})
	if err != nil {
		h.respondCommandError(c, err, res.Snapshot)
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    batchResponse{BatchID: res.BatchID, Snapshot: res.Snapshot},
	})
}

func (h *StudioHandler) CardImage(c *gin.Context) {
	index, ok := h.cardIndex(c)
	if !ok {
		return
	}

	data, mime, err := h.studio.Image(index)
	if err != nil {
		h.respondCommandError(c, err, h.studio.Snapshot())
		return
	}

	h.respondImage(c, data, mime)
}

func (h *StudioHandler) CardThumbnail(c *gin.Context) {
	index, ok := h.cardIndex(c)
	if !ok {
		return
	}

	data, err := h.studio.Thumbnail(index)
	if err != nil {
		h.logger.Warn("Thumbnail failed", zap.Int("index", index), zap.Error(err))
		h.respondCommandError(c, err, h.studio.Snapshot())
		return
	}

	h.respondImage(c, data, "image/png")
}

func (h *StudioHandler) Download(c *gin.Context) {
	h.dispatchCard(c, studio.CmdDownload, func(res studio.Result) {
		c.Header("Content-Disposition", `attachment; filename="`+res.File.Name+`"`)
		c.Data(http.StatusOK, "image/png", res.File.Data)
	})
}

func (h *StudioHandler) Preview(c *gin.Context) {
	h.dispatchCard(c, studio.CmdPreview, func(res studio.Result) {
		h.respondSnapshot(c, http.StatusOK, res.Snapshot)
	})
}

func (h *StudioHandler) ClosePreview(c *gin.Context) {
	h.dispatch(c, studio.Command{Kind: studio.CmdClosePreview}, http.StatusOK)
}

func (h *StudioHandler) Share(c *gin.Context) {
	h.dispatchCard(c, studio.CmdShare, func(res studio.Result) {
		h.respondSnapshot(c, http.StatusAccepted, res.Snapshot)
	})
}

func (h *StudioHandler) TapShare(c *gin.Context) {
	index, ok := h.cardIndex(c)
	if !ok {
		return
	}

	var body tapRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			h.respondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	res, err := h.studio.Dispatch(c.Request.Context(), studio.Command{
		Kind:      studio.CmdTapShare,
		CardIndex: index,
		Target:    browserTarget{native: body.Native, failed: body.NativeFailed},
	})
	if err != nil {
		h.respondCommandError(c, err, res.Snapshot)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    shareResponse{Share: *res.Share, Snapshot: res.Snapshot},
	})
}

func (h *StudioHandler) DismissBanner(c *gin.Context) {
	h.dispatch(c, studio.Command{Kind: studio.CmdDismissBanner}, http.StatusOK)
}

func (h *StudioHandler) DismissAlert(c *gin.Context) {
	h.dispatch(c, studio.Command{Kind: studio.CmdDismissAlert}, http.StatusOK)
}

// HealthCheck
func (h *StudioHandler) HealthCheck(c *gin.Context) {
	services := map[string]string{
		"image_api": h.tokenStatus(),
		"chat_api":  h.tokenStatus(),
	}
	if h.hosts != nil {
		for name, status := range h.hosts.HealthCheck(c.Request.Context()) {
			services[name] = status
		}
	}
	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}
