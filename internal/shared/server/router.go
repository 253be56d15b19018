package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"insight-backend/internal/documents"
	"insight-backend/internal/shared/config"
	"insight-backend/internal/shared/metrics"
	"insight-backend/internal/shared/server/middleware"
	"insight-backend/internal/shared/server/respond"
)

const (
	serviceName    = "AI-Powered Document Insight Tool API"
	serviceVersion = "1.0.0"
)

// NewRouter constructs the Gin engine with middleware and routes
// registered. aiAvailable is the capability query surfaced by /health.
func NewRouter(cfg config.Config, docs *documents.Handler, aiAvailable func() bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"message": serviceName,
			"version": serviceVersion,
			"endpoints": gin.H{
				"upload":   "/upload-resume",
				"insights": "/insights",
				"health":   "/health",
			},
		})
	})

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"status":       "healthy",
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"ai_available": aiAvailable(),
		})
	})

	r.GET("/metrics", metrics.Handler())

	docs.RegisterRoutes(r)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
