package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the gateway reads from the environment.
// Load is called once at startup; handlers receive values through
// their constructors rather than reading env vars themselves.
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	LogFile     string

	// Mixit backend API
	APIBaseURL      string
	APITimeout      time.Duration
	ServiceToken    string // shared token for public home/tag reads (see DESIGN.md)
	OutboundRPS     float64
	OutboundBurst   int

	// Session cookie
	SessionSecret string
	CookieName    string
	CookieDomain  string
	CookieSecure  bool

	// Kakao OAuth
	KakaoClientID     string
	KakaoClientSecret string
	KakaoRedirectURL  string
	LoginRedirectURL  string // where OAuth failures send the browser

	// Redis (optional - rate limiting and response cache degrade without it)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// OpenTelemetry (optional)
	OTLPEndpoint      string
	TraceSamplingRate float64

	// Browser origins allowed to send the session cookie
	AllowedOrigins []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8989"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", "gateway.log"),

		APIBaseURL:    os.Getenv("MIXIT_API_BASE_URL"),
		APITimeout:    10 * time.Second,
		ServiceToken:  os.Getenv("MIXIT_SERVICE_TOKEN"),
		OutboundRPS:   100,
		OutboundBurst: 200,

		SessionSecret: os.Getenv("SESSION_SECRET"),
		CookieName:    getEnv("SESSION_COOKIE_NAME", "mixit_session"),
		CookieDomain:  os.Getenv("SESSION_COOKIE_DOMAIN"),
		CookieSecure:  getEnv("ENVIRONMENT", "development") == "production",

		KakaoClientID:     os.Getenv("KAKAO_CLIENT_ID"),
		KakaoClientSecret: os.Getenv("KAKAO_CLIENT_SECRET"),
		KakaoRedirectURL:  os.Getenv("KAKAO_REDIRECT_URL"),
		LoginRedirectURL:  getEnv("LOGIN_REDIRECT_URL", "/login"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		OTLPEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TraceSamplingRate: getEnvFloat("TRACE_SAMPLING_RATE", 0.1),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("MIXIT_API_BASE_URL environment variable is required")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if cfg.KakaoRedirectURL == "" {
		// Default mirrors the server's own callback route
		base := getEnv("GATEWAY_BASE_URL", "http://localhost:"+cfg.Port)
		cfg.KakaoRedirectURL = base + "/api/v1/auth/kakao/callback"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
