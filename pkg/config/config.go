package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration. It is populated once at startup and
// read-only afterwards.
type Config struct {
	Server     ServerConfig
	WatsonX    WatsonXConfig
	Speech     SpeechConfig
	Generation GenerationConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// WatsonXConfig holds watsonx.ai and IBM IAM settings.
type WatsonXConfig struct {
	BaseURL   string `envconfig:"WATSONX_BASE_URL" required:"true"`
	APIKey    string `envconfig:"WATSONX_API_KEY" required:"true"`
	Version   string `envconfig:"WATSONX_VERSION" required:"true"`
	ProjectID string `envconfig:"WATSONX_PROJECT_ID" required:"true"`
	IAMURL    string `envconfig:"WATSONX_IAM_URL" default:"https://iam.cloud.ibm.com/identity/token"`
	ModelID   string `envconfig:"WATSONX_MODEL_ID" default:"ibm/granite-13b-chat-v2"`
}

// SpeechConfig holds speech-to-text provider settings. The key is the
// secondary provider credential, separate from the watsonx API key.
type SpeechConfig struct {
	APIKey  string `envconfig:"SPEECH_API_KEY" required:"true"`
	BaseURL string `envconfig:"SPEECH_BASE_URL" required:"true"`
	Model   string `envconfig:"SPEECH_MODEL" default:"en-US_BroadbandModel"`
}

// GenerationConfig holds decoding and moderation tuning for text generation.
type GenerationConfig struct {
	MaxNewTokens      int     `envconfig:"GENERATION_MAX_NEW_TOKENS" default:"200"`
	RepetitionPenalty float64 `envconfig:"GENERATION_REPETITION_PENALTY" default:"1.0"`
	Concurrency       int     `envconfig:"GENERATION_CONCURRENCY" default:"3"`
	HAPEnabled        bool    `envconfig:"HAP_ENABLED" default:"true"`
	HAPThreshold      float64 `envconfig:"HAP_THRESHOLD" default:"0.5"`
}

// Load loads configuration from environment variables. A missing required
// variable is a startup failure; there is no degraded mode.
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks constraints envconfig tags cannot express.
func (c *Config) Validate() error {
	if c.Generation.Concurrency < 1 {
		return fmt.Errorf("GENERATION_CONCURRENCY must be at least 1")
	}
	if c.Generation.HAPThreshold < 0 || c.Generation.HAPThreshold > 1 {
		return fmt.Errorf("HAP_THRESHOLD must be between 0 and 1")
	}
	return nil
}

// Origins returns the configured CORS origins as a slice.
func (c *ServerConfig) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
