// Package api exposes the gateway over HTTP.
//
// Business failures are always answered with HTTP 200; callers tell success
// from failure by the body shape, which differs per endpoint.
package api

import (
	"context"
	"net/http"

	"github.com/SirClappington/aso-backend/internal/errors"
	"github.com/SirClappington/aso-backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AppAnalyzer interface {
	Analyze(ctx context.Context, appID, store string) (*models.AppSummary, error)
}

type CompetitorFinder interface {
	SuggestCompetitors(ctx context.Context, appID, country string) (*models.CompetitorList, error)
}

type KeywordFetcher interface {
	FetchKeywords(ctx context.Context, q models.KeywordQuery) (*models.KeywordSuggestions, error)
}

type MetadataGenerator interface {
	Generate(ctx context.Context, keywords []string) (*models.GeneratedMetadata, error)
}

type Handlers struct {
	apps        AppAnalyzer
	competitors CompetitorFinder
	keywords    KeywordFetcher
	metadata    MetadataGenerator
	logger      *zap.Logger
}

func NewHandlers(apps AppAnalyzer, competitors CompetitorFinder, keywords KeywordFetcher, metadata MetadataGenerator, logger *zap.Logger) *Handlers {
	return &Handlers{
		apps:        apps,
		competitors: competitors,
		keywords:    keywords,
		metadata:    metadata,
		logger:      logger,
	}
}

func (h *Handlers) Analyze(c *gin.Context) {
	var request models.AppLookup
	if !bindJSON(c, &request) {
		return
	}

	summary, err := h.apps.Analyze(c.Request.Context(), request.AppID, request.AppStore)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusOK, analyzeFailure(err, request.AppID))
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handlers) SuggestCompetitors(c *gin.Context) {
	var request models.CompetitorQuery
	if !bindJSON(c, &request) {
		return
	}

	list, err := h.competitors.SuggestCompetitors(c.Request.Context(), request.AppID, request.Country)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusOK, competitorsFailure(err))
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handlers) FetchKeywords(c *gin.Context) {
	var request models.KeywordQuery
	if !bindJSON(c, &request) {
		return
	}

	suggestions, err := h.keywords.FetchKeywords(c.Request.Context(), request)
	if err != nil {
		// The detail stays in the server log only.
		h.logger.Warn("Keyword fetch failed",
			zap.String("app_id", request.AppID),
			zap.String("kind", kindOf(err)),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusOK, keywordsFailure())
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

func (h *Handlers) GenerateMetadata(c *gin.Context) {
	var request models.MetadataRequest
	if !bindJSON(c, &request) {
		return
	}

	generated, err := h.metadata.Generate(c.Request.Context(), request.Keywords)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusOK, metadataFailure(err))
		return
	}

	c.JSON(http.StatusOK, generated)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apiErr := errors.NewValidationError(err.Error())
		_ = c.Error(apiErr)
		c.JSON(http.StatusBadRequest, gin.H{"error": apiErr.Message})
		return false
	}
	return true
}
