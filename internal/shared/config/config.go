package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"jobportal/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string
	LogLevel        string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	S3Endpoint      string
	S3AccessKeyID   string
	S3SecretKey     string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string

	AdzunaAppID         string
	AdzunaAppKey        string
	AdzunaCountry       string
	RapidAPIKey         string
	JobsDefaultLocation string

	TranslateAPIKey   string
	TranslateBaseURL  string
	RedisURL          string
	TranslateCacheTTL time.Duration

	ApplicationsQueueURL string

	RateLimitRPM   int
	RateLimitBurst int

	GuestRetention  time.Duration
	JanitorSchedule string
}

var defaults = map[string]any{
	"PORT":                  "8080",
	"ENV":                   "dev",
	"CORS_ALLOW_ORIGINS":    "http://localhost:5173",
	"LOG_LEVEL":             "info",
	"OBJECT_STORE":          "local",
	"LOCAL_STORE_DIR":       "./data",
	"ADZUNA_COUNTRY":        "in",
	"JOBS_DEFAULT_LOCATION": "India",
	"TRANSLATE_BASE_URL":    "https://translation.googleapis.com",
	"TRANSLATE_CACHE_TTL":   "24h",
	"RATE_LIMIT_RPM":        120,
	"RATE_LIMIT_BURST":      30,
	"GUEST_RETENTION":       "720h",
	"JANITOR_SCHEDULE":      "@every 6h",
}

// Load reads configuration from the environment, after best-effort loading
// of local .env files for development.
func Load() Config {
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Warn("config.missing_database_url", map[string]any{"env": env})
	}

	return Config{
		Port:            v.GetString("PORT"),
		CORSAllowOrigin: splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		Env:             env,
		DatabaseURL:     dbURL,
		LogLevel:        v.GetString("LOG_LEVEL"),

		ObjectStoreType: normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:   v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:       v.GetString("AWS_REGION"),
		S3Bucket:        v.GetString("S3_BUCKET"),
		S3Prefix:        v.GetString("S3_PREFIX"),
		SSEKMSKeyID:     v.GetString("SSE_KMS_KEY_ID"),
		S3Endpoint:      strings.TrimSpace(v.GetString("S3_ENDPOINT")),
		S3AccessKeyID:   v.GetString("S3_ACCESS_KEY_ID"),
		S3SecretKey:     v.GetString("S3_SECRET_ACCESS_KEY"),

		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		UIRedirectURL:      v.GetString("UI_REDIRECT_URL"),

		AdzunaAppID:         v.GetString("ADZUNA_APP_ID"),
		AdzunaAppKey:        v.GetString("ADZUNA_APP_KEY"),
		AdzunaCountry:       strings.ToLower(strings.TrimSpace(v.GetString("ADZUNA_COUNTRY"))),
		RapidAPIKey:         v.GetString("RAPIDAPI_KEY"),
		JobsDefaultLocation: v.GetString("JOBS_DEFAULT_LOCATION"),

		TranslateAPIKey:   v.GetString("TRANSLATE_API_KEY"),
		TranslateBaseURL:  v.GetString("TRANSLATE_BASE_URL"),
		RedisURL:          v.GetString("REDIS_URL"),
		TranslateCacheTTL: v.GetDuration("TRANSLATE_CACHE_TTL"),

		ApplicationsQueueURL: strings.TrimSpace(v.GetString("APPLICATIONS_QUEUE_URL")),

		RateLimitRPM:   v.GetInt("RATE_LIMIT_RPM"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),

		GuestRetention:  v.GetDuration("GUEST_RETENTION"),
		JanitorSchedule: v.GetString("JANITOR_SCHEDULE"),
	}
}

// IsDevLike reports whether the environment may fall back to in-memory
// repositories.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
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
