package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	AI     AIConfig
	Media  MediaConfig
	App    AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// StoreConfig selects and configures the project persistence backend.
// Backend is either "postgres" or "supabase".
type StoreConfig struct {
	Backend     string
	DatabaseURL string
	SupabaseURL string
	SupabaseKey string
}

type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type MediaConfig struct {
	APIKey  string
	BaseURL string
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		},
		Store: StoreConfig{
			Backend:     getEnv("PROJECT_STORE", "postgres"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			SupabaseURL: getEnv("SUPABASE_URL", ""),
			SupabaseKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		},
		AI: AIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Media: MediaConfig{
			APIKey:  getEnv("PEXELS_API_KEY", ""),
			BaseURL: getEnv("PEXELS_BASE_URL", "https://api.pexels.com/v1"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case "supabase":
		if c.Store.SupabaseURL == "" || c.Store.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY are required for the supabase backend")
		}
	default:
		return fmt.Errorf("unknown PROJECT_STORE %q (want postgres or supabase)", c.Store.Backend)
	}

	return nil
}

// splitOrigins splits a comma-separated origin list, dropping empty entries.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
