package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/SirClappington/aso-backend/internal/config"
	"github.com/SirClappington/aso-backend/internal/errors"
	"github.com/SirClappington/aso-backend/internal/models"
	"github.com/SirClappington/aso-backend/internal/upstream"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	competitorDevice     = "iphone"
	keywordSuggestPath   = "/api/public/store/keywords/suggestions/app.json"
	keywordTokenParam    = "token"
	StatusKeywordsFailed = "Failed to fetch keywords"
)

var (
	errCompetitorsNotList = stderrors.New("competitors is not a list")
	errKeywordsNotList    = stderrors.New("content.keywords is not a list")
	errBodyNotObject      = stderrors.New("response body is not a JSON object")
	errContentNotObject   = stderrors.New("content is not a JSON object")
)

// AppTweakService talks to the AppTweak competitor-intelligence API. The
// competitors endpoint takes a bearer header while the keyword endpoint takes
// the token in the query, so each gets its own client.
type AppTweakService struct {
	competitors *upstream.Client
	keywords    *upstream.Client
	logger      *zap.Logger
}

func NewAppTweakService(cfg config.Config, httpClient *http.Client, logger *zap.Logger) *AppTweakService {
	return &AppTweakService{
		competitors: upstream.New("apptweak_competitors", cfg.AppTweakBaseURL, logger,
			upstream.WithHTTPClient(httpClient),
			upstream.WithTimeout(cfg.UpstreamTimeout),
			upstream.WithAuth(upstream.BearerToken{Token: cfg.AppTweakAPIKey}),
		),
		keywords: upstream.New("apptweak_keywords", cfg.AppTweakBaseURL, logger,
			upstream.WithHTTPClient(httpClient),
			upstream.WithTimeout(cfg.UpstreamTimeout),
			upstream.WithAuth(upstream.QueryToken{Param: keywordTokenParam, Token: cfg.AppTweakAPIKey}),
		),
		logger: logger,
	}
}

// SuggestCompetitors returns AppTweak's competitors for appID in upstream
// order, duplicates included. The upstream status is not inspected; an error
// body without a competitors list yields an empty result.
func (s *AppTweakService) SuggestCompetitors(ctx context.Context, appID, country string) (*models.CompetitorList, error) {
	path := fmt.Sprintf("/api/v2/applications/%s/competitors.json", url.PathEscape(appID))
	query := url.Values{
		"country": {strings.ToLower(country)},
		"device":  {competitorDevice},
	}

	resp, err := s.competitors.Get(ctx, path, query)
	if err != nil {
		return nil, errors.NewUpstreamError("", err)
	}
	if !gjson.ValidBytes(resp.Body) {
		return nil, errors.NewParseError("", fmt.Errorf("invalid JSON in competitors response (status %d)", resp.StatusCode))
	}
	if !gjson.ParseBytes(resp.Body).IsObject() {
		return nil, errors.NewParseError("", errBodyNotObject)
	}

	list := &models.CompetitorList{Competitors: []models.Competitor{}}
	entries := gjson.GetBytes(resp.Body, "competitors")
	if !entries.Exists() {
		return list, nil
	}
	if !entries.IsArray() {
		return nil, errors.NewParseError("", errCompetitorsNotList)
	}

	for i, entry := range entries.Array() {
		app := entry.Get("application")
		if !app.IsObject() {
			return nil, errors.NewParseError("", fmt.Errorf("competitor %d: missing key 'application'", i))
		}
		id, title := app.Get("id"), app.Get("title")
		if !id.Exists() {
			return nil, errors.NewParseError("", fmt.Errorf("competitor %d: missing key 'id'", i))
		}
		if !title.Exists() {
			return nil, errors.NewParseError("", fmt.Errorf("competitor %d: missing key 'title'", i))
		}
		list.Competitors = append(list.Competitors, models.Competitor{
			ID:   json.RawMessage(id.Raw),
			Name: json.RawMessage(title.Raw),
		})
	}

	s.logger.Debug("Competitors fetched", zap.String("app_id", appID), zap.Int("count", len(list.Competitors)))
	return list, nil
}

// FetchKeywords returns at most models.MaxSuggestedKeywords suggestions for
// the query, each passed through verbatim.
func (s *AppTweakService) FetchKeywords(ctx context.Context, q models.KeywordQuery) (*models.KeywordSuggestions, error) {
	query := url.Values{
		"country":     {q.Country},
		"app_id":      {q.AppID},
		"competitors": {strings.Join(q.Competitors, ",")},
	}

	resp, err := s.keywords.Get(ctx, keywordSuggestPath, query)
	if err != nil {
		return nil, errors.NewUpstreamError("", err)
	}
	if !gjson.ValidBytes(resp.Body) {
		return nil, errors.NewParseError("", fmt.Errorf("invalid JSON in keywords response (status %d)", resp.StatusCode))
	}
	body := gjson.ParseBytes(resp.Body)
	if !body.IsObject() {
		return nil, errors.NewParseError("", errBodyNotObject)
	}
	if content := body.Get("content"); content.Exists() && !content.IsObject() {
		return nil, errors.NewParseError("", errContentNotObject)
	}

	out := &models.KeywordSuggestions{SuggestedKeywords: []json.RawMessage{}}
	keywords := body.Get("content.keywords")
	if !keywords.Exists() {
		return out, nil
	}
	if !keywords.IsArray() {
		return nil, errors.NewParseError("", errKeywordsNotList)
	}

	for _, kw := range keywords.Array() {
		if len(out.SuggestedKeywords) == models.MaxSuggestedKeywords {
			break
		}
		out.SuggestedKeywords = append(out.SuggestedKeywords, json.RawMessage(kw.Raw))
	}
	return out, nil
}
