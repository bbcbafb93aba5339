package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Store backends accepted by STORE_BACKEND.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	APIBaseURL    string `env:"API_BASE_URL" envDefault:"https://sarakhan100-securespot.hf.space"`
	BotBaseURL    string `env:"BOT_BASE_URL" envDefault:"https://itsnida07-securespotbot.hf.space"`
	VisionBaseURL string `env:"VISION_BASE_URL" envDefault:"https://sarakhan100-image-testing.hf.space"`
	MapsBaseURL   string `env:"MAPS_BASE_URL" envDefault:"https://maps.googleapis.com"`
	MapsAPIKey    string `env:"MAPS_API_KEY"`

	StoreBackend string `env:"STORE_BACKEND" envDefault:"sqlite"`
	StorePath    string `env:"STORE_PATH" envDefault:"securespot.db"`
	DatabaseURL  string `env:"DATABASE_URL"`
	RedisURL     string `env:"REDIS_URL"`

	HTTPTimeoutSeconds int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"30"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("STORE_PATH is required when STORE_BACKEND=sqlite")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want sqlite, postgres or redis)", c.StoreBackend)
	}
	return nil
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
