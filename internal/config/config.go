package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"alfredoptarigan/ats-analyzer/internal/apperrors"
	"alfredoptarigan/ats-analyzer/internal/logger"
)

const (
	InputModeMultipart = "multipart"
	InputModeJSON      = "json"
)

// MaxRetryAttempts caps RETRY_MAX_ATTEMPTS so the doubling backoff stays
// within minutes.
const MaxRetryAttempts = 10

type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Retry    RetryConfig
	Upload   UploadConfig
	Analysis AnalysisConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

type UploadConfig struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

// AllowsFile reports the lower-cased extension of name and whether it is in
// AllowedExtensions.
func (u UploadConfig) AllowsFile(name string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	return ext, slices.Contains(u.AllowedExtensions, ext)
}

type AnalysisConfig struct {
	InputMode             string
	WithKeywordExtraction bool
	StrictResultSchema    bool
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the given .env files (".env" when none are given) and then the
// process environment.
func Load(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Info().Msg("No .env file found. Using environment and default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			Env:         getEnv("ENV", "development"),
			CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.3),
		},
		Retry: RetryConfig{
			MaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			InitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "1s"),
		},
		Upload: UploadConfig{
			MaxFileSize:       getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			AllowedExtensions: getEnvAsList("ALLOWED_EXTENSIONS", ".pdf"),
		},
		Analysis: AnalysisConfig{
			InputMode:             strings.ToLower(getEnv("INPUT_MODE", InputModeMultipart)),
			WithKeywordExtraction: getEnvAsBool("WITH_KEYWORD_EXTRACTION", true),
			StrictResultSchema:    getEnvAsBool("STRICT_RESULT_SCHEMA", true),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "pretty"),
		},
	}
}

// Validate fails fast on configuration the service cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return &apperrors.ConfigurationError{Key: "GEMINI_API_KEY", Message: "is required"}
	}
	if c.Retry.MaxAttempts < 1 || c.Retry.MaxAttempts > MaxRetryAttempts {
		return &apperrors.ConfigurationError{
			Key:     "RETRY_MAX_ATTEMPTS",
			Message: fmt.Sprintf("must be between 1 and %d", MaxRetryAttempts),
		}
	}
	if c.Retry.InitialDelay < 0 {
		return &apperrors.ConfigurationError{Key: "RETRY_INITIAL_DELAY", Message: "must not be negative"}
	}
	if c.Upload.MaxFileSize <= 0 {
		return &apperrors.ConfigurationError{Key: "MAX_FILE_SIZE", Message: "must be positive"}
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		return &apperrors.ConfigurationError{Key: "ALLOWED_EXTENSIONS", Message: "must list at least one extension"}
	}
	switch c.Analysis.InputMode {
	case InputModeMultipart, InputModeJSON:
	default:
		return &apperrors.ConfigurationError{
			Key:     "INPUT_MODE",
			Message: fmt.Sprintf("must be %q or %q, got %q", InputModeMultipart, InputModeJSON, c.Analysis.InputMode),
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

// getEnvAsList splits a comma-separated value, lower-casing each entry and
// ensuring a leading dot.
func getEnvAsList(key string, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if !strings.HasPrefix(item, ".") {
			item = "." + item
		}
		out = append(out, item)
	}
	return out
}
