package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware returns nil when CORS is disabled or no origin is configured.
// The API is meant for operator tooling and workers, so CORS stays off by default and
// is only enabled for a browser review console.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no origins configured - CORS will not be applied")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT"},
		AllowHeaders:  []string{"Content-Type", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        12 * time.Hour,
	})
}

// parseOrigins splits a comma-separated origin list, dropping blanks.
func parseOrigins(originsStr string) []string {
	origins := make([]string, 0)
	for part := range strings.SplitSeq(originsStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
