package config

import (
	"flag"
	"os"

	"github.com/sanjaympqwer/TASK-MASTER/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":8080")
//	-d string     PostgreSQL DSN; empty selects the in-memory store
//	-s string     session/auth secret
//	-env string   environment: development or production
//	-t duration   access token validity (e.g., "15m")
//	-l duration   session validity (e.g., "168h")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-env", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AuthSecret, "s", config.AuthSecret, "auth secret")
	fs.StringVar(&config.Environment, "env", config.Environment, "environment (development|production)")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token validity")
	fs.DurationVar(&config.SessionValidityDuration, "l", config.SessionValidityDuration, "session validity")

	_ = fs.Parse(args)
}
