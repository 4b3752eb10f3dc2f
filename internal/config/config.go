package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Generation GenerationConfig
	S3         S3Config
	Upload     UploadConfig
	CORS       CORSConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GenerationConfig holds settings for the text-generation backend.
type GenerationConfig struct {
	Provider    string  `mapstructure:"provider"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Region      string  `mapstructure:"region"`
	Endpoint    string  `mapstructure:"endpoint"`
	TimeoutSecs int     `mapstructure:"timeout_secs"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	TopP        float64 `mapstructure:"top_p"`
}

// Timeout returns the transport timeout for HTTP-based providers.
func (g *GenerationConfig) Timeout() time.Duration {
	if g.TimeoutSecs <= 0 {
		return 120 * time.Second
	}
	return time.Duration(g.TimeoutSecs) * time.Second
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// S3Config holds AWS S3 settings used to fetch documents by URI.
type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// UploadConfig holds limits for uploaded documents.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the SBC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SBC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Generation defaults match the Bedrock deployment the analyzer was built for.
	v.SetDefault("generation.provider", "bedrock")
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.model", "")
	v.SetDefault("generation.region", "us-east-1")
	v.SetDefault("generation.endpoint", "")
	v.SetDefault("generation.timeout_secs", 120)
	v.SetDefault("generation.max_tokens", 4000)
	v.SetDefault("generation.temperature", 0.5)
	v.SetDefault("generation.top_p", 0.9)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")

	v.SetDefault("upload.max_file_size_mb", 20)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "SBC_SERVER_PORT",
		"server.read_timeout":     "SBC_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "SBC_SERVER_WRITE_TIMEOUT",
		"server.environment":      "SBC_SERVER_ENVIRONMENT",
		"log.level":               "SBC_LOG_LEVEL",
		"log.format":              "SBC_LOG_FORMAT",
		"generation.provider":     "SBC_GENERATION_PROVIDER",
		"generation.api_key":      "SBC_GENERATION_API_KEY",
		"generation.model":        "SBC_GENERATION_MODEL",
		"generation.region":       "SBC_GENERATION_REGION",
		"generation.endpoint":     "SBC_GENERATION_ENDPOINT",
		"generation.timeout_secs": "SBC_GENERATION_TIMEOUT_SECS",
		"generation.max_tokens":   "SBC_GENERATION_MAX_TOKENS",
		"generation.temperature":  "SBC_GENERATION_TEMPERATURE",
		"generation.top_p":        "SBC_GENERATION_TOP_P",
		"s3.enabled":              "SBC_S3_ENABLED",
		"s3.region":               "SBC_S3_REGION",
		"s3.endpoint":             "SBC_S3_ENDPOINT",
		"s3.access_key":           "SBC_S3_ACCESS_KEY",
		"s3.secret_key":           "SBC_S3_SECRET_KEY",
		"upload.max_file_size_mb": "SBC_UPLOAD_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":    "SBC_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SBC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SBC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Generation = GenerationConfig{
		Provider:    v.GetString("generation.provider"),
		APIKey:      v.GetString("generation.api_key"),
		Model:       v.GetString("generation.model"),
		Region:      v.GetString("generation.region"),
		Endpoint:    v.GetString("generation.endpoint"),
		TimeoutSecs: v.GetInt("generation.timeout_secs"),
		MaxTokens:   v.GetInt("generation.max_tokens"),
		Temperature: v.GetFloat64("generation.temperature"),
		TopP:        v.GetFloat64("generation.top_p"),
	}
	cfg.S3 = S3Config{
		Enabled:   v.GetBool("s3.enabled"),
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
