package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Port             string `env:"PORT" env-default:"8080"`
	DBDriver         string `env:"DB_DRIVER" env-default:"sqlite"`
	DBPath           string `env:"DB_PATH" env-default:"./console.db"`
	DatabaseURL      string `env:"DATABASE_URL"`
	VerifyToken      string `env:"VERIFY_TOKEN"`
	LogLevel         string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat        string `env:"LOG_FORMAT" env-default:"console"`
	MetricsNamespace string `env:"METRICS_NAMESPACE" env-default:"console"`
	AI               AIConfig
}

// AIConfig selects the enrichment provider. A provider without an API key
// leaves enrichment disabled.
type AIConfig struct {
	Provider        string `env:"AI_PROVIDER" env-default:"openai"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	OpenAIModel     string `env:"OPENAI_MODEL" env-default:"gpt-5"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" env-default:"claude-sonnet-4-5"`
}

// APIKey returns the credential of the selected provider.
func (c AIConfig) APIKey() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

// Enabled reports whether the selected provider has a credential.
func (c AIConfig) Enabled() bool {
	return c.APIKey() != ""
}

// LoadConfig reads a .env file when present and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, relying on environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.AI.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q", c.AI.Provider)
	}
	return nil
}
