// Package config decodes the process environment into an immutable Config.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config is built once at startup and handed to each service by value.
type Config struct {
	Port     string `env:"PORT,default=8080"`
	GinMode  string `env:"GIN_MODE,default=release"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	AppTweakAPIKey string `env:"APPTWEAK_API_KEY"`
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`

	ITunesBaseURL    string `env:"ITUNES_BASE_URL,default=https://itunes.apple.com"`
	PlayStoreBaseURL string `env:"PLAY_STORE_BASE_URL,default=https://play.google.com"`
	AppTweakBaseURL  string `env:"APPTWEAK_BASE_URL,default=https://api.apptweak.com"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL,default=https://api.openai.com/v1"`

	// UpstreamTimeout bounds every outbound call.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,default=15s"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("error decoding environment: %w", err)
	}
	if cfg.UpstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", cfg.UpstreamTimeout)
	}
	return cfg, nil
}

// MissingCredentials lists the credential variables that are unset. Absence
// is not fatal; the affected upstream answers with an auth failure instead.
func (c Config) MissingCredentials() []string {
	var missing []string
	if c.AppTweakAPIKey == "" {
		missing = append(missing, "APPTWEAK_API_KEY")
	}
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	return missing
}

func (c Config) Addr() string {
	return ":" + c.Port
}
