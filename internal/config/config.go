package config

import (
	"os"
	"strings"
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Progression store. Empty disables persistence; the render endpoints
	// still work without it.
	DatabaseURL string

	// Extra color schemes (TOML), loaded once at startup
	ColorSchemesFile string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode for write endpoints
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from the gateway
	// - "jwt": Validate HMAC bearer tokens signed with JWTSecret
	AuthMode  string
	JWTSecret string

	// Comma separated list; "*" allows any origin
	CORSAllowedOrigins []string
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		ColorSchemesFile:   getEnv("COLOR_SCHEMES_FILE", ""),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		AuthMode:           getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
		JWTSecret:          getEnv("JWT_SECRET", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsGatewayMode returns true if running behind the gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsJWTMode returns true if write endpoints require a signed bearer token
func (c *Config) IsJWTMode() bool {
	return c.AuthMode == "jwt"
}

// StoreEnabled reports whether progressions can be persisted
func (c *Config) StoreEnabled() bool {
	return c.DatabaseURL != ""
}
