package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Env            string   `mapstructure:"ENV"`
	DatabaseURL    string   `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins    []string `mapstructure:"CORS_ORIGINS"`
	VerifyBaseURL  string   `mapstructure:"VERIFY_BASE_URL"`
	SeedDemoData   bool     `mapstructure:"SEED_DEMO_DATA"`
	StoreLatencyMS int      `mapstructure:"STORE_LATENCY_MS"`
	SearchDebounce int      `mapstructure:"SEARCH_DEBOUNCE_MS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("VERIFY_BASE_URL", "http://localhost:8000")
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("STORE_LATENCY_MS", 0)
	v.SetDefault("SEARCH_DEBOUNCE_MS", 300)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("VERIFY_BASE_URL")
	v.BindEnv("SEED_DEMO_DATA")
	v.BindEnv("STORE_LATENCY_MS")
	v.BindEnv("SEARCH_DEBOUNCE_MS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		log.Println("WARNING: DATABASE_URL is not set.")
		log.Println("WARNING: The server will run against the in-memory store; all")
		log.Println("WARNING: visits written in this session are lost on shutdown.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UseMemoryStore reports whether the server should run on the in-memory
// store instead of Postgres.
func (c *Config) UseMemoryStore() bool {
	return c.DatabaseURL == ""
}
