package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string

	DatabaseURL string
	RedisURL    string
	JWTSecret   string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	// Attempts allowed per client per window on login and register.
	AuthRateLimit       int64
	AuthRateLimitWindow time.Duration

	AllowAdminRegistration bool

	AdminEmail    string
	AdminPassword string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "placement_portal"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@placement.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	var err error
	cfg.AuthRateLimit, err = strconv.ParseInt(getEnv("RATE_LIMIT_AUTH", "10"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AUTH: %w", err)
	}
	cfg.AuthRateLimitWindow, err = parseDuration(getEnv("RATE_LIMIT_AUTH_WINDOW", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AUTH_WINDOW: %w", err)
	}
	// admin self-registration defaults to on only in development
	cfg.AllowAdminRegistration = cfg.IsDevelopment()
	if raw := os.Getenv("ALLOW_ADMIN_REGISTRATION"); raw != "" {
		cfg.AllowAdminRegistration, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ALLOW_ADMIN_REGISTRATION: %w", err)
		}
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = "change-me"
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// CloudinaryEnabled reports whether resume uploads can be stored.
func (c *Config) CloudinaryEnabled() bool {
	if os.Getenv("CLOUDINARY_URL") != "" {
		return true
	}
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
