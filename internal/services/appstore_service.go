package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/SirClappington/aso-backend/internal/config"
	"github.com/SirClappington/aso-backend/internal/errors"
	"github.com/SirClappington/aso-backend/internal/models"
	"github.com/SirClappington/aso-backend/internal/scrape"
	"github.com/SirClappington/aso-backend/internal/upstream"
	"go.uber.org/zap"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	playStoreSuffix  = " - Apps on Google Play"

	StatusSuccess          = "Success"
	StatusPlayStoreSuccess = "Success (og:title)"
	StatusNotOnITunes      = "App not found on iTunes"
	StatusTitleNotFound    = "App title not found in HTML"
	StatusUnsupportedStore = "Unsupported store. Use 'apple' or 'google'"
)

type AppStoreService struct {
	itunes    *upstream.Client
	playStore *upstream.Client
	logger    *zap.Logger
}

type itunesLookupResponse struct {
	Results []itunesResult `json:"results"`
}

type itunesResult struct {
	TrackName         string   `json:"trackName"`
	ArtistName        *string  `json:"artistName"`
	AverageUserRating *float64 `json:"averageUserRating"`
	Description       *string  `json:"description"`
	ArtworkURL100     *string  `json:"artworkUrl100"`
}

func NewAppStoreService(cfg config.Config, httpClient *http.Client, logger *zap.Logger) *AppStoreService {
	return &AppStoreService{
		itunes: upstream.New("itunes", cfg.ITunesBaseURL, logger,
			upstream.WithHTTPClient(httpClient),
			upstream.WithTimeout(cfg.UpstreamTimeout),
		),
		playStore: upstream.New("play_store", cfg.PlayStoreBaseURL, logger,
			upstream.WithHTTPClient(httpClient),
			upstream.WithTimeout(cfg.UpstreamTimeout),
			upstream.WithHeader("User-Agent", browserUserAgent),
		),
		logger: logger,
	}
}

// Analyze looks appID up in the named store. Every failure is an
// *errors.APIError whose message is the status to report.
func (s *AppStoreService) Analyze(ctx context.Context, appID, store string) (*models.AppSummary, error) {
	switch store {
	case models.StoreApple:
		return s.lookupITunes(ctx, appID)
	case models.StoreGoogle:
		return s.lookupPlayStore(ctx, appID)
	default:
		return nil, errors.NewUnsupportedError(StatusUnsupportedStore)
	}
}

func (s *AppStoreService) lookupITunes(ctx context.Context, appID string) (*models.AppSummary, error) {
	query := url.Values{}
	if isNumeric(appID) {
		query.Set("id", appID)
	} else {
		query.Set("bundleId", appID)
	}

	resp, err := s.itunes.Get(ctx, "/lookup", query)
	if err != nil {
		return nil, errors.NewUpstreamError("Error fetching iTunes data", err)
	}

	var lookup itunesLookupResponse
	if err := json.Unmarshal(resp.Body, &lookup); err != nil {
		return nil, errors.NewParseError("Error fetching iTunes data", err)
	}
	if len(lookup.Results) == 0 {
		s.logger.Info("App not found on iTunes", zap.String("app_id", appID))
		return nil, errors.NewNotFoundError(StatusNotOnITunes)
	}

	first := lookup.Results[0]
	return &models.AppSummary{
		AppID:       appID,
		AppStore:    models.StoreApple,
		Title:       first.TrackName,
		Developer:   first.ArtistName,
		Rating:      first.AverageUserRating,
		Description: first.Description,
		Icon:        first.ArtworkURL100,
		Status:      StatusSuccess,
	}, nil
}

func (s *AppStoreService) lookupPlayStore(ctx context.Context, appID string) (*models.AppSummary, error) {
	resp, err := s.playStore.Get(ctx, "/store/apps/details", url.Values{"id": {appID}})
	if err != nil {
		return nil, errors.NewUpstreamError("Error fetching Play Store data", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Info("Play Store returned non-200", zap.String("app_id", appID), zap.Int("status", resp.StatusCode))
		return nil, errors.NewNotFoundError(StatusTitleNotFound)
	}
	raw, ok := scrape.FirstTagContent(string(resp.Body), "title")
	if !ok {
		return nil, errors.NewNotFoundError(StatusTitleNotFound)
	}

	return &models.AppSummary{
		AppID:    appID,
		AppStore: models.StoreGoogle,
		Title:    playStoreTitle(raw),
		Status:   StatusPlayStoreSuccess,
	}, nil
}

func playStoreTitle(raw string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), playStoreSuffix))
}

// isNumeric reports whether s is a non-empty run of ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
