package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiokit/projects-backend/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/projects")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres", cfg.Store.Backend)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, "https://api.pexels.com/v1", cfg.Media.BaseURL)
}

func TestLoad_SplitsAndTrimsOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/projects")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com , ,https://*.b.example.com,")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://*.b.example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoad_PostgresBackendNeedsDatabaseURL(t *testing.T) {
	t.Setenv("PROJECT_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_SupabaseBackendNeedsCredentials(t *testing.T) {
	t.Setenv("PROJECT_STORE", "supabase")
	t.Setenv("SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "")

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "supabase", cfg.Store.Backend)
}

func TestLoad_UnknownBackendRejected(t *testing.T) {
	t.Setenv("PROJECT_STORE", "dynamo")

	_, err := config.Load()
	assert.Error(t, err)
}
