package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// Firestore / Firebase.
	FirebaseProjectID string
	CredentialsFile   string

	RedisURL        string
	CatalogCacheTTL time.Duration

	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int

	// Media provider (Cloudinary).
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	UploadFolder        string
	MaxUploadBytes      int64

	// RelayRequireAuth protects /upload and /delete with a JWT when true.
	RelayRequireAuth   bool
	RelayRatePerMinute int

	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted.
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:          getEnv("PORT", getEnv("SERVER_PORT", "8080")),
		GinMode:             getEnv("GIN_MODE", "debug"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "pretty"),
		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),
		CredentialsFile:     getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379/0"),
		CatalogCacheTTL:     time.Duration(getEnvInt("CATALOG_CACHE_TTL_MINUTES", 10)) * time.Minute,
		JWTSecret:           getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		JWTExpiry:           time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		BcryptCost:          getEnvInt("BCRYPT_COST", 10),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		UploadFolder:        getEnv("CLOUDINARY_FOLDER", "uploads"),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 10)) * 1024 * 1024,
		RelayRequireAuth:    getEnvBool("RELAY_REQUIRE_AUTH", false),
		RelayRatePerMinute:  getEnvInt("RELAY_RATE_LIMIT_PER_MINUTE", 60),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
