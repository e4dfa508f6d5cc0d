package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// MongoConfig holds MongoDB connection settings.
// URI takes precedence; otherwise the URI is built from the individual parts.
type MongoConfig struct {
	URI      string
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL, when set, is used to build direct object URLs instead of pre-signed ones.
	PublicBaseURL string
	URLExpiry     time.Duration
}

// UploadConfig limits what the upload endpoint accepts.
type UploadConfig struct {
	MaxBytes     int64
	AllowedTypes []string
}

// AuthConfig holds the throttling applied to the authentication endpoints.
type AuthConfig struct {
	RatePerMinute int
	RateBurst     int
}

// NotifyConfig holds contact-message notification settings.
// Notifications are disabled when ResendAPIKey is empty.
type NotifyConfig struct {
	ResendAPIKey string
	From         string
	To           []string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppEnv    string
	Port      string
	PublicDir string
	APIKey    string
	// CORSOrigins is a comma-separated list of origins allowed to send credentialed requests.
	CORSOrigins string
	Mongo       MongoConfig
	MinIO       MinIOConfig
	Upload      UploadConfig
	Auth        AuthConfig
	Notify      NotifyConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppEnv:      getEnv("APP_ENV", "production"),
		Port:        getEnv("PORT", "4000"),
		PublicDir:   getEnv("PUBLIC_DIR", "public"),
		APIKey:      getEnv("API_KEY", ""),
		CORSOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:4000"),
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", ""),
			Host:     getEnv("MONGODB_HOST", ""),
			Port:     getEnv("MONGODB_PORT", "27017"),
			User:     getEnv("MONGODB_USER", ""),
			Password: getEnv("MONGODB_PASSWORD", ""),
			Database: getEnv("MONGODB_DB", "vidar_db"),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: strings.TrimRight(getEnv("MINIO_PUBLIC_BASE_URL", ""), "/"),
			URLExpiry:     getEnvDuration("MINIO_URL_EXPIRY", 7*24*time.Hour),
		},
		Upload: UploadConfig{
			MaxBytes:     int64(getEnvInt("UPLOAD_MAX_BYTES", 8<<20)),
			AllowedTypes: []string{"image/png", "image/jpeg", "image/jpg", "image/webp"},
		},
		Auth: AuthConfig{
			RatePerMinute: getEnvInt("AUTH_RATE_PER_MINUTE", 30),
			RateBurst:     getEnvInt("AUTH_RATE_BURST", 10),
		},
		Notify: NotifyConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("CONTACT_NOTIFY_FROM", ""),
			To:           getEnvList("CONTACT_NOTIFY_TO"),
		},
	}
}

// Validate reports the critical settings that are missing. The server must not start without them.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required"))
	}
	if c.Mongo.URI == "" && c.Mongo.Host == "" {
		errs = append(errs, errors.New("MONGODB_URI or MONGODB_HOST is required"))
	}
	if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
		errs = append(errs, errors.New("MINIO_ENDPOINT and MINIO_BUCKET are required"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil && d > 0 {
			return d
		}
	}
	return def
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
