package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/ai-image-studio/internal/models"
	"go.uber.org/zap"
)

// UnhandledReporter receives panics that escaped a handler.
type UnhandledReporter interface {
	ReportUnhandled(value any)
}

// ErrorHandler recovers panics, shows them in the studio banner and answers 500.
func ErrorHandler(logger *zap.Logger, reporter UnhandledReporter) gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", ctx.Request.URL.Path),
			zap.String("method", ctx.Request.Method),
		)

		if reporter != nil {
			reporter.ReportUnhandled(recovered)
		}

		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.APIResponse{
			Success: false,
			Error:   fmt.Sprintf("An unexpected error occurred: %v", recovered),
		})
	})
}
