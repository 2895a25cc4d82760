// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

import (
	"fmt"
	"time"
)

// InsecureDevSecret is the fallback session secret used when AUTH_SECRET is
// unset. It exists so a bare `go run` works in development; Validate refuses
// to start a production server with it.
const InsecureDevSecret = "taskmaster-dev-secret-never-use-in-production"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds runtime settings for the TaskMaster server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects the in-memory store.
//   - AuthSecret: symmetric secret sealing session cookies and signing
//     access tokens (HS256). Do not use the dev fallback in prod.
//   - Environment: "development" or "production"; controls the cookie
//     Secure flag and secret validation.
//   - SessionValidityDuration / AccessTokenValidityDuration: lifetimes for
//     the sealed cookie session and the bearer access token.
//   - CORSAllowedOrigin: origin allowed by the CORS middleware.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     S3-compatible storage for user avatars.
//   - SuggestBaseURL / SuggestAPIKey / SuggestModel / SuggestTimeout:
//     OpenAI-compatible endpoint for task description suggestions. An empty
//     API key sends no Authorization header (for local endpoints).
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDSN                 string
	AuthSecret                  string
	Environment                 string
	SessionValidityDuration     time.Duration
	AccessTokenValidityDuration time.Duration
	CORSAllowedOrigin           string
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
	SuggestBaseURL              string
	SuggestAPIKey               string
	SuggestModel                string
	SuggestTimeout              time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.AuthSecret = InsecureDevSecret
	c.Environment = EnvDevelopment
	c.SessionValidityDuration = 7 * 24 * time.Hour
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.CORSAllowedOrigin = "*"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "avatars"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.SuggestBaseURL = "https://api.openai.com/v1"
	c.SuggestAPIKey = ""
	c.SuggestModel = "gpt-4o-mini"
	c.SuggestTimeout = 10 * time.Second
}

// IsProduction reports whether the server runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate fails closed on deployment misconfiguration: a production server
// must carry a real secret of at least 32 bytes instead of silently falling
// back to the insecure default.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.AuthSecret == InsecureDevSecret {
		return fmt.Errorf("AUTH_SECRET is not set: refusing to run in production with the built-in development secret")
	}
	if len(c.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be at least 32 characters, got %d", len(c.AuthSecret))
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
