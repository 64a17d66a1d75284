package config

import (
	"fmt"

	pkgconfig "github.com/vidriera/showcase/pkg/config"
)

// Config holds all configuration for the showcase service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SHOWCASE_HTTP_PORT" envDefault:"8012"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"ecommerce"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"ecommerce_secret"`
	PostgresDB   string `env:"SHOWCASE_DB_NAME" envDefault:"showcase_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Engine tuning. The defaults match the production arrangement; the
	// windows and spacing are bounds, not contracts, so they stay
	// adjustable without a rebuild.
	EngineTypedWindow    int  `env:"ENGINE_TYPED_WINDOW" envDefault:"300"`
	EngineFallbackWindow int  `env:"ENGINE_FALLBACK_WINDOW" envDefault:"100"`
	EngineHeroSpacing    int  `env:"ENGINE_HERO_SPACING" envDefault:"2"`
	EngineMaxRowFactor   int  `env:"ENGINE_MAX_ROW_FACTOR" envDefault:"2"`
	EngineLegacyOrdering bool `env:"ENGINE_LEGACY_ORDERING" envDefault:"false"`

	// Upload limits
	MaxFeedUploadBytes int64 `env:"MAX_FEED_UPLOAD_BYTES" envDefault:"33554432"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load showcase config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.EngineTypedWindow < 1 {
		return nil, fmt.Errorf("ENGINE_TYPED_WINDOW must be positive, got %d", cfg.EngineTypedWindow)
	}
	if cfg.EngineFallbackWindow < 1 {
		return nil, fmt.Errorf("ENGINE_FALLBACK_WINDOW must be positive, got %d", cfg.EngineFallbackWindow)
	}
	if cfg.EngineHeroSpacing < 0 {
		return nil, fmt.Errorf("ENGINE_HERO_SPACING must not be negative, got %d", cfg.EngineHeroSpacing)
	}
	if cfg.EngineMaxRowFactor < 1 {
		return nil, fmt.Errorf("ENGINE_MAX_ROW_FACTOR must be positive, got %d", cfg.EngineMaxRowFactor)
	}
	return cfg, nil
}

// PostgresDSN returns the PostgreSQL connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB, c.PostgresSSL,
	)
}
