package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading a
// .env file first when one is present. Unknown or malformed duration values
// are ignored in favor of whatever the config already holds.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	setString(&config.EndpointAddrHTTP, "ADDRESS")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.AuthSecret, "AUTH_SECRET")
	setString(&config.Environment, "APP_ENV")
	setDuration(&config.SessionValidityDuration, "SESSION_TTL")
	setDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	setString(&config.CORSAllowedOrigin, "CORS_ALLOWED_ORIGIN")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setString(&config.SuggestBaseURL, "SUGGEST_BASE_URL")
	setString(&config.SuggestAPIKey, "SUGGEST_API_KEY")
	setString(&config.SuggestModel, "SUGGEST_MODEL")
	setDuration(&config.SuggestTimeout, "SUGGEST_TIMEOUT")
}
