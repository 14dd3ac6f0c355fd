package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Session storage (cookie sessions by default; Redis when set)
	RedisURL string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Admin credentials (always-available login path)
	AdminUsername string
	AdminPassword string

	// OIDC (optional second login path)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
	OIDCAdminEmails  string // Comma-separated emails granted admin on OIDC login

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/relieflink?sslmode=disable"),
		RedisURL:         getEnv("REDIS_URL", ""),
		TLSEnabled:       getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:      getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:       getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:        getEnv("TLS_CA_FILE", ""),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		OIDCAdminEmails:  getEnv("OIDC_ADMIN_EMAILS", ""),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Validate checks that required settings are present for the environment.
func (c *Config) Validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if !c.IsDev() && c.SessionSecret == "change-me-in-production-min-32-chars" {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return nil
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// IsAdminEmail reports whether an OIDC-authenticated email is on the admin
// allowlist. Matching is case-insensitive.
func (c *Config) IsAdminEmail(email string) bool {
	if email == "" || c.OIDCAdminEmails == "" {
		return false
	}
	for _, allowed := range strings.Split(c.OIDCAdminEmails, ",") {
		if strings.EqualFold(strings.TrimSpace(allowed), email) {
			return true
		}
	}
	return false
}
