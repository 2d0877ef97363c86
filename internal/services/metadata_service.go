package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SirClappington/aso-backend/internal/config"
	"github.com/SirClappington/aso-backend/internal/errors"
	"github.com/SirClappington/aso-backend/internal/metrics"
	"github.com/SirClappington/aso-backend/internal/models"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	MetadataModel = openai.GPT3Dot5Turbo

	metadataSystemPrompt = "You are an App Store Optimization expert."
	metadataUserPrompt   = "Generate an ASO-optimized app title, subtitle, and description using these keywords: %s"
)

var errNoChoices = stderrors.New("no completion choices returned")

// MetadataService generates store listing copy through the OpenAI chat API.
type MetadataService struct {
	client  *openai.Client
	timeout time.Duration
	logger  *zap.Logger
}

func NewMetadataService(cfg config.Config, httpClient *http.Client, logger *zap.Logger) *MetadataService {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	clientCfg.BaseURL = cfg.OpenAIBaseURL
	clientCfg.HTTPClient = httpClient

	return &MetadataService{
		client:  openai.NewClientWithConfig(clientCfg),
		timeout: cfg.UpstreamTimeout,
		logger:  logger,
	}
}

// Generate asks for a title, subtitle and description covering keywords and
// returns the first completion, trimmed.
func (s *MetadataService) Generate(ctx context.Context, keywords []string) (*models.GeneratedMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: MetadataModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: metadataSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildMetadataPrompt(keywords)},
		},
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		metrics.ObserveUpstream("openai", "error", time.Since(start))
		s.logger.Warn("OpenAI completion failed", zap.Error(err))
		return nil, errors.NewUpstreamError("OpenAI error", err)
	}
	metrics.ObserveUpstream("openai", "ok", time.Since(start))

	if len(resp.Choices) == 0 {
		return nil, errors.NewParseError("OpenAI error", errNoChoices)
	}

	return &models.GeneratedMetadata{
		GeneratedMetadata: strings.TrimSpace(resp.Choices[0].Message.Content),
	}, nil
}

func BuildMetadataPrompt(keywords []string) string {
	return fmt.Sprintf(metadataUserPrompt, strings.Join(keywords, ", "))
}
