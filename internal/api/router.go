package api

import (
	"net/http"
	"time"

	"github.com/SirClappington/aso-backend/internal/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	corsMaxAgeHours = 12
	rootMessage     = "ASO backend is running"
)

// NewRouter wires every route onto a fresh engine.
func NewRouter(h *Handlers, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		MaxAge:          corsMaxAgeHours * time.Hour,
	}))

	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.Use(metrics.Handler())
	router.Use(gin.Recovery())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": rootMessage})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Exposer())

	router.POST("/analyze", h.Analyze)
	router.POST("/suggest-competitors", h.SuggestCompetitors)
	router.POST("/fetch-keywords", h.FetchKeywords)
	router.POST("/generate-metadata", h.GenerateMetadata)

	return router
}
