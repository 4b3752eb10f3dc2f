package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbcanalyzer/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 180*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.Equal(t, "bedrock", cfg.Generation.Provider)
	assert.Equal(t, "us-east-1", cfg.Generation.Region)
	assert.Equal(t, 4000, cfg.Generation.MaxTokens)
	assert.InDelta(t, 0.5, cfg.Generation.Temperature, 1e-9)
	assert.InDelta(t, 0.9, cfg.Generation.TopP, 1e-9)
	assert.Equal(t, 120*time.Second, cfg.Generation.Timeout())

	assert.False(t, cfg.S3.Enabled)
	assert.Equal(t, int64(20*1024*1024), cfg.Upload.MaxBytes())
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SBC_GENERATION_PROVIDER", "anthropic")
	t.Setenv("SBC_GENERATION_API_KEY", "sk-test")
	t.Setenv("SBC_GENERATION_MODEL", "claude-test")
	t.Setenv("SBC_GENERATION_TEMPERATURE", "0.2")
	t.Setenv("SBC_GENERATION_TIMEOUT_SECS", "30")
	t.Setenv("SBC_S3_ENABLED", "true")
	t.Setenv("SBC_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("SBC_UPLOAD_MAX_FILE_SIZE_MB", "5")
	t.Setenv("SBC_CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SBC_SERVER_READ_TIMEOUT", "3s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Generation.Provider)
	assert.Equal(t, "sk-test", cfg.Generation.APIKey)
	assert.Equal(t, "claude-test", cfg.Generation.Model)
	assert.InDelta(t, 0.2, cfg.Generation.Temperature, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.Generation.Timeout())
	assert.True(t, cfg.S3.Enabled)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_PortFallback(t *testing.T) {
	tests := []struct {
		name       string
		port       string
		serverPort string
		want       string
	}{
		{"PORT used when server port unset", "9090", "", ":9090"},
		{"explicit server port wins", "9090", ":7070", ":7070"},
		{"default without either", "", "", ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			t.Setenv("SBC_SERVER_PORT", tt.serverPort)

			cfg, err := config.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Server.Port)
		})
	}
}

func TestGenerationConfig_Timeout(t *testing.T) {
	assert.Equal(t, 120*time.Second, (&config.GenerationConfig{}).Timeout())
	assert.Equal(t, 120*time.Second, (&config.GenerationConfig{TimeoutSecs: -1}).Timeout())
	assert.Equal(t, 45*time.Second, (&config.GenerationConfig{TimeoutSecs: 45}).Timeout())
}
