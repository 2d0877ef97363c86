package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SirClappington/aso-backend/internal/config"
	"github.com/SirClappington/aso-backend/internal/services"
	"github.com/SirClappington/aso-backend/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// newGateway wires the real services against baseURL.
func newGateway(t *testing.T, baseURL string) *gin.Engine {
	t.Helper()
	cfg := config.Config{
		AppTweakAPIKey:   "apptweak-key",
		OpenAIAPIKey:     "openai-key",
		ITunesBaseURL:    baseURL,
		PlayStoreBaseURL: baseURL,
		AppTweakBaseURL:  baseURL,
		OpenAIBaseURL:    baseURL + "/v1",
		UpstreamTimeout:  2 * time.Second,
	}
	logger := zaptest.NewLogger(t)
	httpClient := upstream.NewHTTPClient(time.Second)
	appTweak := services.NewAppTweakService(cfg, httpClient, logger)

	h := NewHandlers(
		services.NewAppStoreService(cfg, httpClient, logger),
		appTweak,
		appTweak,
		services.NewMetadataService(cfg, httpClient, logger),
		logger,
	)
	return NewRouter(h, logger)
}

func TestGateway_AppleNumericNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "555", r.URL.Query().Get("id"))
		w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	defer server.Close()

	w := postJSON(t, newGateway(t, server.URL), "/analyze", `{"app_id":"555","app_store":"apple"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"App not found on iTunes","app_id":"555"}`, w.Body.String())
}

func TestGateway_GoogleTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<!doctype html><html><head><title>Foo - Apps on Google Play</title></head></html>`))
	}))
	defer server.Close()

	w := postJSON(t, newGateway(t, server.URL), "/analyze", `{"app_id":"com.foo","app_store":"google"}`)

	assert.JSONEq(t, `{"app_id":"com.foo","app_store":"google","title":"Foo","status":"Success (og:title)"}`, w.Body.String())
}

func TestGateway_GoogleWithoutTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>nothing here</body></html>`))
	}))
	defer server.Close()

	w := postJSON(t, newGateway(t, server.URL), "/analyze", `{"app_id":"com.foo","app_store":"google"}`)

	assert.JSONEq(t, `{"status":"App title not found in HTML","app_id":"com.foo"}`, w.Body.String())
}

func TestGateway_UnsupportedStore(t *testing.T) {
	w := postJSON(t, newGateway(t, "http://127.0.0.1:1"), "/analyze", `{"app_id":"anything","app_store":"windows"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Unsupported store. Use 'apple' or 'google'"}`, w.Body.String())
}

func TestGateway_EmptyFieldsAreAnswered(t *testing.T) {
	for _, body := range []string{
		`{"app_id":"x","app_store":""}`,
		`{"app_id":"","app_store":"windows"}`,
		`{}`,
	} {
		w := postJSON(t, newGateway(t, "http://127.0.0.1:1"), "/analyze", body)

		assert.Equal(t, http.StatusOK, w.Code, body)
		assert.JSONEq(t, `{"status":"Unsupported store. Use 'apple' or 'google'"}`, w.Body.String(), body)
	}
}

func TestGateway_CompetitorsMissingKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"metadata":{}}`))
	}))
	defer server.Close()

	w := postJSON(t, newGateway(t, server.URL), "/suggest-competitors", `{"app_id":"1","country":"US"}`)

	assert.JSONEq(t, `{"competitors":[]}`, w.Body.String())
}

func TestGateway_CompetitorsDuplicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"competitors":[
			{"application":{"id":9,"title":"Nine"}},
			{"application":{"id":9,"title":"Nine"}}
		]}`))
	}))
	defer server.Close()

	w := postJSON(t, newGateway(t, server.URL), "/suggest-competitors", `{"app_id":"1","country":"us"}`)

	assert.JSONEq(t, `{"competitors":[{"id":9,"name":"Nine"},{"id":9,"name":"Nine"}]}`, w.Body.String())
}

// Every endpoint answers a JSON body with a non-empty error or status when
// the upstream is unreachable.
func TestGateway_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	router := newGateway(t, base)
	calls := []struct {
		path string
		body string
		key  string
	}{
		{"/analyze", `{"app_id":"123","app_store":"apple"}`, "status"},
		{"/analyze", `{"app_id":"com.foo","app_store":"google"}`, "status"},
		{"/suggest-competitors", `{"app_id":"1","country":"us"}`, "error"},
		{"/fetch-keywords", `{"app_id":"1","country":"us","competitors":["2"]}`, "status"},
		{"/generate-metadata", `{"keywords":["a","b"]}`, "status"},
	}

	for _, call := range calls {
		t.Run(call.path, func(t *testing.T) {
			w := postJSON(t, router, call.path, call.body)
			assert.Equal(t, http.StatusOK, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			msg, ok := body[call.key].(string)
			require.True(t, ok, "missing %q in %s", call.key, w.Body.String())
			assert.NotEmpty(t, msg)
		})
	}
}
