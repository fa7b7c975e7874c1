// Package config provides configuration for both FinPainel binaries,
// sourced from environment variables with command-line flag overrides.
package config

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr is the reference backend's listening address.
	Addr string `env:"ADDR, default=localhost:3000"`

	// BaseURL is the backend API base, including the /api prefix.
	BaseURL string `env:"BASE_URL, default=http://localhost:3000/api"`

	// FallbackBaseURL, when set, is tried after BaseURL for the
	// financial-summary orders fetch. Empty disables the fallback.
	FallbackBaseURL string `env:"FALLBACK_BASE_URL"`

	// SessionFile is where the dashboard persists token and role.
	SessionFile string `env:"SESSION_FILE, default=session.json"`

	// LogLevel is the minimum zap level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs the tokens issued by the reference backend.
	JWTSecret string `env:"JWT_SECRET, default=finpainel-dev-secret"`

	// TokenTTL bounds the lifetime of issued tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// SeedAdminEmail and SeedAdminPassword configure the SUPER_ADMIN
	// account the reference backend creates on startup.
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL, default=admin@finpainel.local"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin123"`
}

var options = &Options{}

// Parse reads environment variables into Options and then applies any
// command-line flag overrides. It must be called once, from main.
func Parse() *Options {
	if err := envconfig.Process(context.Background(), options); err != nil {
		log.Fatalf("error while reading configuration: %v", err)
	}

	flag.StringVar(&options.Addr, "a", options.Addr, "run server on ip:port")
	flag.StringVar(&options.BaseURL, "url", options.BaseURL, "backend API base URL")
	flag.StringVar(&options.SessionFile, "session", options.SessionFile, "path to the session file")
	flag.StringVar(&options.LogLevel, "log", options.LogLevel, "log level")
	flag.Parse()

	return options
}
