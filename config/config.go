package config

import (
	"fmt"
	"os"
	"time"
)

// Identity provider kinds, selected once at startup.
const (
	ProviderFirebase = "firebase"
	ProviderOpenID   = "openid"
)

// Config captures all process configuration, built once from the
// environment so main stays lean and nothing is decided per-request.
type Config struct {
	Addr         string
	DatabasePath string
	AdminKey     string

	// Identity oracle. Provider picks the verifier; for firebase either
	// ServiceAccountFile (strict credential load) or ProjectID
	// (ambient/default credentials) must be set.
	Provider           string
	ServiceAccountFile string
	ProjectID          string
	OIDCIssuer         string
	OIDCClientID       string

	// Upstream lookup gateway.
	LookupBaseURL      string
	LookupTimeout      time.Duration
	LookupTokenURL     string
	LookupClientID     string
	LookupClientSecret string
}

// FromEnv builds the config from environment variables
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:               getEnv("ADDR", ":8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "lookup_gateway.db"),
		AdminKey:           os.Getenv("ADMIN_KEY"),
		Provider:           getEnv("IDENTITY_PROVIDER", ProviderFirebase),
		ServiceAccountFile: os.Getenv("FIREBASE_SERVICE_ACCOUNT_FILE"),
		ProjectID:          os.Getenv("FIREBASE_PROJECT_ID"),
		OIDCIssuer:         os.Getenv("OIDC_ISSUER"),
		OIDCClientID:       os.Getenv("OIDC_CLIENT_ID"),
		LookupBaseURL:      os.Getenv("LOOKUP_BASE_URL"),
		LookupTimeout:      15 * time.Second,
		LookupTokenURL:     os.Getenv("LOOKUP_TOKEN_URL"),
		LookupClientID:     os.Getenv("LOOKUP_CLIENT_ID"),
		LookupClientSecret: os.Getenv("LOOKUP_CLIENT_SECRET"),
	}

	if raw := os.Getenv("LOOKUP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOOKUP_TIMEOUT: %w", err)
		}
		cfg.LookupTimeout = timeout
	}

	switch cfg.Provider {
	case ProviderFirebase:
		if cfg.ServiceAccountFile == "" && cfg.ProjectID == "" {
			return Config{}, fmt.Errorf("firebase provider requires FIREBASE_SERVICE_ACCOUNT_FILE or FIREBASE_PROJECT_ID")
		}
	case ProviderOpenID:
		if cfg.OIDCIssuer == "" || cfg.OIDCClientID == "" {
			return Config{}, fmt.Errorf("openid provider requires OIDC_ISSUER and OIDC_CLIENT_ID")
		}
	default:
		return Config{}, fmt.Errorf("unknown identity provider %q", cfg.Provider)
	}

	if cfg.LookupBaseURL == "" {
		return Config{}, fmt.Errorf("LOOKUP_BASE_URL is required")
	}

	return cfg, nil
}

// getEnv reads an environment variable with a default
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
