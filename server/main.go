package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phambaophuc/ai-image-studio/internal/config"
	"github.com/phambaophuc/ai-image-studio/internal/http/handlers"
	"github.com/phambaophuc/ai-image-studio/internal/http/routes"
	"github.com/phambaophuc/ai-image-studio/internal/services/generator"
	"github.com/phambaophuc/ai-image-studio/internal/services/processor"
	"github.com/phambaophuc/ai-image-studio/internal/services/prompt"
	"github.com/phambaophuc/ai-image-studio/internal/services/storage"
	"github.com/phambaophuc/ai-image-studio/internal/studio"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	// Initialize services
	imageProcessor := processor.NewImageProcessor(cfg.Storage.MaxImageSize)

	images, err := generator.NewClient(generator.Options{
		Endpoint: cfg.ImageAPI.URL,
		Model:    cfg.ImageAPI.Model,
		APIKey:   cfg.ImageAPI.Token,
		Timeout:  cfg.ImageAPI.Timeout,
		Decoder:  imageProcessor,
		Logger:   logger.Named("generator"),
	})
	if err != nil {
		logger.Fatal("Failed to initialize image generator", zap.Error(err))
	}

	prompts := prompt.NewGenerator(prompt.Options{
		APIKey:  cfg.ImageAPI.Token,
		BaseURL: cfg.Chat.URL,
		Model:   cfg.Chat.Model,
		Timeout: cfg.Chat.Timeout,
		Logger:  logger.Named("prompt"),
	})

	uploader, err := storage.NewUploaderFromConfig(cfg, logger.Named("storage"))
	if err != nil {
		logger.Fatal("Failed to initialize image host", zap.Error(err))
	}

	st := studio.New(studio.Dependencies{
		Images:     images,
		Prompts:    prompts,
		Uploader:   uploader,
		Processor:  imageProcessor,
		ShareTitle: cfg.Share.Title,
		Logger:     logger.Named("studio"),

		MaxImageCount: cfg.Gallery.MaxImageCount,
	})

	// Initialize handlers
	studioHandler := handlers.NewStudioHandler(st, uploader, logger, cfg)

	router := routes.NewRouter(studioHandler, st, cfg.CORS.AllowedOrigins, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr), zap.String("image_host", cfg.ImageHost.Provider))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Stop in-flight generations and uploads
	st.Close()

	logger.Info("Server exited")
}
