package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/ai-image-studio/internal/config"
	"github.com/phambaophuc/ai-image-studio/internal/http/web"
	"github.com/phambaophuc/ai-image-studio/internal/models"
	"github.com/phambaophuc/ai-image-studio/internal/services/processor"
	"github.com/phambaophuc/ai-image-studio/internal/services/prompt"
	"github.com/phambaophuc/ai-image-studio/internal/studio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testEnv struct {
	engine   *gin.Engine
	studio   *studio.Studio
	images   *mockImages
	prompts  *mockPrompts
	uploader *mockUploader
	hosts    *mockHosts
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		images:   &mockImages{},
		prompts:  &mockPrompts{},
		uploader: &mockUploader{},
		hosts:    &mockHosts{status: map[string]string{"imgbb": "healthy"}},
	}
	env.studio = studio.New(studio.Dependencies{
		Images:     env.images,
		Prompts:    env.prompts,
		Uploader:   env.uploader,
		Processor:  processor.NewImageProcessor(0),
		ShareTitle: "AI Art",
		Logger:     zaptest.NewLogger(t),
	})
	t.Cleanup(env.studio.Close)

	cfg := &config.Config{ImageAPI: config.ImageAPIConfig{Token: "hf_test"}}
	h := NewStudioHandler(env.studio, env.hosts, zaptest.NewLogger(t), cfg)

	r := gin.New()
	r.SetHTMLTemplate(web.Templates)
	r.GET("/", h.Page)
	v1 := r.Group("/api/v1")
	v1.GET("/health", h.HealthCheck)
	v1.GET("/studio", h.Snapshot)
	v1.POST("/prompts", h.GeneratePrompt)
	v1.POST("/batches", h.SubmitBatch)
	v1.GET("/cards/:index/image", h.CardImage)
	v1.GET("/cards/:index/thumbnail", h.CardThumbnail)
	v1.GET("/cards/:index/download", h.Download)
	v1.POST("/cards/:index/preview", h.Preview)
	v1.POST("/cards/:index/share", h.Share)
	v1.POST("/cards/:index/share/tap", h.TapShare)
	v1.DELETE("/preview", h.ClosePreview)
	v1.DELETE("/banner", h.DismissBanner)
	v1.DELETE("/alert", h.DismissAlert)
	env.engine = r

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// fill runs a batch of count images to completion.
func (e *testEnv) fill(t *testing.T, count int) {
	t.Helper()
	req := models.GenerationRequest{PromptText: "a fox in a forest", AspectRatio: "16/9", ImageCount: count}
	e.images.images = nil
	for i := 0; i < count; i++ {
		e.images.images = append(e.images.images, models.GeneratedImage{Index: i, Data: testPNG(t), MimeType: "image/png", SourceRequest: req})
	}
	w := e.do(t, http.MethodPost, "/api/v1/batches", gin.H{"prompt": req.PromptText, "aspect_ratio": req.AspectRatio, "image_count": count})
	require.Equal(t, http.StatusAccepted, w.Code)
	e.studio.Wait()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestPage(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "Describe your imagination in detail... ")
	assert.Contains(t, body, `<option value="16/9">`)
	assert.Contains(t, body, `<option value="4">`)
	assert.NotContains(t, body, `<option value="5">`)
	assert.Contains(t, body, "unhandledrejection")
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/health", nil)
	var health models.HealthCheck
	resp := decode(t, w, &health)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Services["imgbb"])
	assert.Equal(t, "healthy", health.Services["image_api"])

	env.hosts.status = map[string]string{"supabase": "unhealthy: bucket not found"}
	w = env.do(t, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubmitBatch_Endpoint(t *testing.T) {
	env := newTestEnv(t)

	env.fill(t, 3)

	var snap models.StudioSnapshot
	decode(t, env.do(t, http.MethodGet, "/api/v1/studio", nil), &snap)
	require.Len(t, snap.Cards, 3)
	for _, c := range snap.Cards {
		assert.Equal(t, models.CardFilled, c.State)
		assert.Equal(t, "16/9", c.AspectRatio)
	}
	assert.False(t, snap.Controls.GenerateImagesDisabled)
}

func TestSubmitBatch_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/batches", gin.H{"prompt": "", "aspect_ratio": "1/1", "image_count": 1})

	var snap models.StudioSnapshot
	resp := decode(t, w, &snap)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Please enter a prompt.", resp.Error)
	assert.Equal(t, "Please enter a prompt.", snap.Banner.Message)
}

func TestSubmitBatch_OversizedCount(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/batches", gin.H{"prompt": "cat", "aspect_ratio": "1/1", "image_count": int64(1) << 62})
	resp := decode(t, w, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please select the number of images.", resp.Error)

	env.fill(t, 1)
}

func TestSubmitBatch_BadBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratePrompt_Endpoint(t *testing.T) {
	env := newTestEnv(t)
	env.prompts.text = "A koi pond under cherry blossoms at dawn, soft mist, ukiyo-e style"

	w := env.do(t, http.MethodPost, "/api/v1/prompts", nil)
	var out promptResponse
	decode(t, w, &out)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, env.prompts.text, out.Prompt)
	assert.Equal(t, env.prompts.text, out.Snapshot.Controls.InputText)

	env.prompts.err = prompt.ErrNoPrompt
	w = env.do(t, http.MethodPost, "/api/v1/prompts", nil)
	resp := decode(t, w, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to generate a prompt. The AI might be offline.", resp.Error)
}

func TestCardEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/cards/0/image", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	env.fill(t, 2)

	w = env.do(t, http.MethodGet, "/api/v1/cards/1/image", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, env.images.images[1].Data, w.Body.Bytes())

	w = env.do(t, http.MethodGet, "/api/v1/cards/0/thumbnail", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/cards/1/download", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="image_2.png"`, w.Header().Get("Content-Disposition"))

	w = env.do(t, http.MethodGet, "/api/v1/cards/abc/download", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/cards/7/download", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.fill(t, 1)

	var snap models.StudioSnapshot
	decode(t, env.do(t, http.MethodPost, "/api/v1/cards/0/preview", nil), &snap)
	assert.True(t, snap.Preview.Open)
	assert.Equal(t, "16/9", snap.Preview.AspectRatio)

	decode(t, env.do(t, http.MethodDelete, "/api/v1/preview", nil), &snap)
	assert.False(t, snap.Preview.Open)
}

func TestShareFlow(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantMethod string
		wantAlert  string
	}{
		{"native share", gin.H{"native": true}, models.ShareMethodNative, ""},
		{"no share sheet", gin.H{"native": false}, models.ShareMethodClipboard, "Sharing not supported. Link copied to clipboard!"},
		{"share sheet failed", gin.H{"native": true, "native_failed": true}, models.ShareMethodClipboard, "Failed to share. Copied to clipboard."},
		{"empty body", nil, models.ShareMethodClipboard, "Sharing not supported. Link copied to clipboard!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.uploader.link = &models.HostedImageLink{PublicURL: "https://i.ibb.co/x/image.png"}
			env.fill(t, 1)

			w := env.do(t, http.MethodPost, "/api/v1/cards/0/share", nil)
			require.Equal(t, http.StatusAccepted, w.Code)
			env.studio.Wait()

			w = env.do(t, http.MethodPost, "/api/v1/cards/0/share/tap", tt.body)
			var out shareResponse
			decode(t, w, &out)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantMethod, out.Share.Method)
			assert.Equal(t, tt.wantAlert, out.Share.Alert)
			assert.Equal(t, "AI Art", out.Share.Title)
			assert.Equal(t, studio.ShareText("a fox in a forest", "https://i.ibb.co/x/image.png"), out.Share.Text)
			assert.Equal(t, models.ShareIdle, out.Snapshot.Cards[0].Share.Status)
		})
	}
}

func TestShare_UploadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.fill(t, 1)

	env.do(t, http.MethodPost, "/api/v1/cards/0/share", nil)
	env.studio.Wait()

	var snap models.StudioSnapshot
	decode(t, env.do(t, http.MethodGet, "/api/v1/studio", nil), &snap)
	assert.Equal(t, "Image upload failed. Please try again.", snap.Banner.Message)
	assert.Equal(t, "Image upload failed. Cannot share.", snap.Alert)

	w := env.do(t, http.MethodPost, "/api/v1/cards/0/share/tap", gin.H{"native": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	decode(t, env.do(t, http.MethodDelete, "/api/v1/alert", nil), &snap)
	assert.Empty(t, snap.Alert)
	decode(t, env.do(t, http.MethodDelete, "/api/v1/banner", nil), &snap)
	assert.False(t, snap.Banner.Visible)
}
