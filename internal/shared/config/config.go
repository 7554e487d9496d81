package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"resume-profile/internal/shared/telemetry"
)

const (
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port            string   `validate:"required"`
	Env             string   `validate:"oneof=dev local staging production"`
	CORSAllowOrigin []string `validate:"dive,url"`
	ObjectStoreType string   `validate:"oneof=local s3"`
	LocalStoreDir   string   `validate:"required_if=ObjectStoreType local"`
	AWSRegion       string
	S3Bucket        string `validate:"required_if=ObjectStoreType s3"`
	S3Prefix        string
	SSEKMSKeyID     string
	StorageBackend  string `validate:"oneof=redis postgres memory"`
	DatabaseURL     string `validate:"required_if=StorageBackend postgres"`
	RedisURL        string `validate:"required_if=StorageBackend redis"`
	RedisPassword   string
	LLMProvider     string `validate:"oneof=openai none"`
	LLMModel        string
	OpenAIAPIKey    string
	PublicBaseURL   string `validate:"omitempty,url"`
	ChromePath      string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string `validate:"omitempty,url"`
	UIRedirectURL      string `validate:"omitempty,url"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Local env files are optional; a missing file is not an error.
	for _, path := range []string{".env", "cmd/.env"} {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			telemetry.Warn("config.dotenv_failed", map[string]any{"path": path, "error": err.Error()})
		}
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	redisURL := os.Getenv("REDIS_URL")

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		ObjectStoreType:    normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:      getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:          getEnv("AWS_REGION", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3Prefix:           getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:        getEnv("SSE_KMS_KEY_ID", ""),
		StorageBackend:     normalizeBackend(os.Getenv("STORAGE_BACKEND"), redisURL, dbURL),
		DatabaseURL:        dbURL,
		RedisURL:           redisURL,
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		LLMProvider:        normalizeProvider(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:           getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		PublicBaseURL:      strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		ChromePath:         getEnv("CHROME_PATH", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}
}

// Validate checks field constraints. Production additionally requires a
// durable storage backend.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Env == "production" && c.StorageBackend == StorageMemory {
		return fmt.Errorf("invalid config: STORAGE_BACKEND=memory is not allowed in production")
	}
	return nil
}

// IsDevLike reports whether the environment tolerates in-memory fallbacks.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none", "off", "placeholder":
		return "none"
	default:
		return "openai"
	}
}

// normalizeBackend picks the record store. An explicit STORAGE_BACKEND wins;
// otherwise Redis is preferred, then Postgres, then memory.
func normalizeBackend(raw, redisURL, dbURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "redis":
		return StorageRedis
	case "postgres", "pg":
		return StoragePostgres
	case "memory", "mem":
		return StorageMemory
	}
	switch {
	case strings.TrimSpace(redisURL) != "":
		return StorageRedis
	case strings.TrimSpace(dbURL) != "":
		return StoragePostgres
	default:
		return StorageMemory
	}
}
