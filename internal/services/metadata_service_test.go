package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SirClappington/aso-backend/internal/upstream"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newMetadataService(t *testing.T, handler http.HandlerFunc) *MetadataService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewMetadataService(testConfig(server.URL), upstream.NewHTTPClient(time.Second), zaptest.NewLogger(t))
}

func TestGenerate(t *testing.T) {
	svc := newMetadataService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer openai-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		if !assert.Len(t, req.Messages, 2) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "You are an App Store Optimization expert.", req.Messages[0].Content)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
		assert.Contains(t, req.Messages[1].Content, "budget, expense tracker, savings")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-3.5-turbo",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"\n  Title: Budgeteer\nSubtitle: Track every cent\nDescription: ...  \n"}}]
		}`))
	})

	got, err := svc.Generate(context.Background(), []string{"budget", "expense tracker", "savings"})
	require.NoError(t, err)
	assert.Equal(t, "Title: Budgeteer\nSubtitle: Track every cent\nDescription: ...", got.GeneratedMetadata)
}

func TestGenerate_UpstreamError(t *testing.T) {
	svc := newMetadataService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	})

	_, err := svc.Generate(context.Background(), []string{"a"})
	apiErr := requireAPIError(t, err)
	assert.Contains(t, apiErr.Message, "OpenAI error: ")
	assert.Contains(t, apiErr.Message, "Incorrect API key provided")
}

func TestGenerate_NoChoices(t *testing.T) {
	svc := newMetadataService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`))
	})

	_, err := svc.Generate(context.Background(), []string{"a"})
	apiErr := requireAPIError(t, err)
	assert.Equal(t, "OpenAI error: no completion choices returned", apiErr.Message)
}

func TestBuildMetadataPrompt(t *testing.T) {
	assert.Equal(t,
		"Generate an ASO-optimized app title, subtitle, and description using these keywords: fitness, yoga",
		BuildMetadataPrompt([]string{"fitness", "yoga"}),
	)
}
