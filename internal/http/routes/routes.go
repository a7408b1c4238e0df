package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/ai-image-studio/internal/http/handlers"
	"github.com/phambaophuc/ai-image-studio/internal/http/middleware"
	"github.com/phambaophuc/ai-image-studio/internal/http/web"
	"go.uber.org/zap"
)

const snapshotPath = "/api/v1/studio"

type Router struct {
	studioHandler *handlers.StudioHandler
	reporter      middleware.UnhandledReporter
	corsOrigins   []string
	logger        *zap.Logger
}

func NewRouter(
	studioHandler *handlers.StudioHandler,
	reporter middleware.UnhandledReporter,
	corsOrigins []string,
	logger *zap.Logger,
) *Router {
	return &Router{
		studioHandler: studioHandler,
		reporter:      reporter,
		corsOrigins:   corsOrigins,
		logger:        logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(web.Templates)

	router.Use(middleware.Logger(r.logger, snapshotPath))
	router.Use(middleware.ErrorHandler(r.logger, r.reporter))
	router.Use(middleware.CORS(r.corsOrigins))
	router.Use(middleware.SecurityHeaders())

	router.GET("/", r.studioHandler.Page)

	// API version 1
	v1 := router.Group("/api/v1")
	v1.Use(middleware.ValidateContentType())
	{
		v1.GET("/health", r.studioHandler.HealthCheck)
		v1.GET("/studio", r.studioHandler.Snapshot)

		v1.POST("/prompts", r.studioHandler.GeneratePrompt)
		v1.POST("/batches", r.studioHandler.SubmitBatch)

		cards := v1.Group("/cards/:index")
		{
			cards.GET("/image", r.studioHandler.CardImage)
			cards.GET("/thumbnail", r.studioHandler.CardThumbnail)
			cards.GET("/download", r.studioHandler.Download)
			cards.POST("/preview", r.studioHandler.Preview)
			cards.POST("/share", r.studioHandler.Share)
			cards.POST("/share/tap", r.studioHandler.TapShare)
		}

		v1.DELETE("/preview", r.studioHandler.ClosePreview)
		v1.DELETE("/banner", r.studioHandler.DismissBanner)
		v1.DELETE("/alert", r.studioHandler.DismissAlert)
	}

	return router
}
