package toolserver

import (
	"fmt"
	"os"
)

// EnvConfig is the runtime configuration read from the environment.
type EnvConfig struct {
	// Port the HTTP server listens on.
	Port string
	// Issuer expected in token "iss" claims.
	Issuer string
	// Audience expected in token "aud" claims.
	Audience string
	// JWKSURL is the identity provider's key-set endpoint.
	JWKSURL string
}

// LoadEnv reads server configuration from environment variables, applying
// the given default port. JWKS_URL is required: token validation is
// delegated to the identity provider's published keys.
func LoadEnv(defaultPort string) (EnvConfig, error) {
	cfg := EnvConfig{
		Port:     os.Getenv("PORT"),
		Issuer:   os.Getenv("ISSUER"),
		Audience: os.Getenv("AUDIENCE"),
		JWKSURL:  os.Getenv("JWKS_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.JWKSURL == "" {
		return cfg, fmt.Errorf("JWKS_URL is required")
	}
	return cfg, nil
}
