package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/ai-image-studio/internal/models"
)

// ValidateContentType rejects request bodies that are not JSON. Requests
// without a body pass through.
func ValidateContentType() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.ContentLength == 0 {
			ctx.Next()
			return
		}

		contentType := strings.ToLower(ctx.GetHeader("Content-Type"))
		if !strings.HasPrefix(contentType, "application/json") {
			ctx.AbortWithStatusJSON(http.StatusUnsupportedMediaType, models.APIResponse{
				Success: false,
				Error:   "Content-Type must be application/json",
			})
			return
		}

		ctx.Next()
	}
}
