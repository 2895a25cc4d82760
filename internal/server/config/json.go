package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sanjaympqwer/TASK-MASTER/internal/flagx"
	"github.com/sanjaympqwer/TASK-MASTER/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Duration fields use
// timex.Duration so both "168h" strings and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	AuthSecret                  string         `json:"auth_secret"`
	Environment                 string         `json:"environment"`
	SessionValidityDuration     timex.Duration `json:"session_validity_duration"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	CORSAllowedOrigin           string         `json:"cors_allowed_origin"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	SuggestBaseURL              string         `json:"suggest_base_url"`
	SuggestAPIKey               string         `json:"suggest_api_key"`
	SuggestModel                string         `json:"suggest_model"`
	SuggestTimeout              timex.Duration `json:"suggest_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. Nothing is loaded when the flag
// is absent. Unreadable or invalid files panic: a config file that exists
// but cannot be applied is a startup fault, not something to run past.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.AuthSecret != "" {
		config.AuthSecret = c.AuthSecret
	}
	if c.Environment != "" {
		config.Environment = c.Environment
	}
	if c.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.CORSAllowedOrigin != "" {
		config.CORSAllowedOrigin = c.CORSAllowedOrigin
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.SuggestBaseURL != "" {
		config.SuggestBaseURL = c.SuggestBaseURL
	}
	if c.SuggestAPIKey != "" {
		config.SuggestAPIKey = c.SuggestAPIKey
	}
	if c.SuggestModel != "" {
		config.SuggestModel = c.SuggestModel
	}
	if c.SuggestTimeout.Duration != 0 {
		config.SuggestTimeout = time.Duration(c.SuggestTimeout.Duration)
	}
}
