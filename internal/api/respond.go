package api

import (
	"github.com/SirClappington/aso-backend/internal/errors"
	"github.com/SirClappington/aso-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// Failure bodies. Each endpoint keeps the shape its clients already parse:
//
//	/analyze              {status, app_id} or {status} for an unsupported store
//	/suggest-competitors  {error}
//	/fetch-keywords       {status} with a fixed message
//	/generate-metadata    {status}

func analyzeFailure(err error, appID string) gin.H {
	if errors.KindOf(err) == errors.KindUnsupported {
		return gin.H{"status": err.Error()}
	}
	return gin.H{"status": err.Error(), "app_id": appID}
}

func competitorsFailure(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func keywordsFailure() gin.H {
	return gin.H{"status": services.StatusKeywordsFailed}
}

func metadataFailure(err error) gin.H {
	return gin.H{"status": err.Error()}
}

func kindOf(err error) string {
	return string(errors.KindOf(err))
}
