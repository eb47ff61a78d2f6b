package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	JWTIssuer        string
	TokenTTL         time.Duration
	CorsOrigins      []string
	RateLimitWindow  time.Duration
	RateLimitMax     int
	TrustProxy       bool
	Upload           UploadConfig
	LogDir           string
	LogRetentionDays int
}

type UploadConfig struct {
	Backend  string
	Dir      string
	MaxBytes int64
	Minio    MinioConfig
	GCS      GCSConfig
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type GCSConfig struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
}

func Load() Config {
	return Config{
		Port:             envOr("PORT", "5000"),
		DatabaseURL:      mustEnv("DATABASE_URL"),
		JWTSecret:        mustEnv("JWT_SECRET"),
		JWTIssuer:        envOr("JWT_ISSUER", "schoolsite"),
		TokenTTL:         envOrDuration("JWT_EXPIRES_IN", 24*time.Hour),
		CorsOrigins:      parseCSV(envOr("CORS_ORIGIN", "*")),
		RateLimitWindow:  envOrDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:     envOrInt("RATE_LIMIT_MAX", 100),
		TrustProxy:       envOrBool("TRUST_PROXY", false),
		LogDir:           envOr("LOG_DIR", "storage/logs"),
		LogRetentionDays: envOrInt("LOG_RETENTION_DAYS", 7),
		Upload: UploadConfig{
			Backend:  strings.ToLower(envOr("UPLOAD_BACKEND", "local")),
			Dir:      envOr("UPLOAD_DIR", "uploads"),
			MaxBytes: int64(envOrInt("UPLOAD_MAX_BYTES", 50<<20)),
			Minio: MinioConfig{
				Endpoint:  envOr("MINIO_ENDPOINT", ""),
				AccessKey: envOr("MINIO_ACCESS_KEY", ""),
				SecretKey: envOr("MINIO_SECRET_KEY", ""),
				Bucket:    envOr("MINIO_BUCKET", "schoolsite"),
				UseSSL:    envOrBool("MINIO_USE_SSL", false),
			},
			GCS: GCSConfig{
				Bucket:          envOr("GCS_BUCKET", ""),
				ProjectID:       envOr("GCS_PROJECT_ID", ""),
				CredentialsFile: envOr("GCS_CREDENTIALS_FILE", ""),
			},
		},
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// envOrDuration accepts Go durations ("24h") and a bare number of seconds.
func envOrDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
