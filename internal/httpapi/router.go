// Package httpapi wires the gin router and request handlers.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HealthChecker is what the readiness endpoint needs from the database.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// NewRouter assembles middleware and routes. db may be nil when the
// directory is disabled.
func NewRouter(h *Handler, db HealthChecker, authRequired bool) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     fmt.Sprintf("unhealthy: %v", err),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
	})

	api := router.Group("/api")
	api.Use(bearerSubject(authRequired))
	{
		api.POST("/analyze-symptoms", h.AnalyzeSymptoms)
		api.GET("/models", h.ListModels)
	}

	return router
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
