package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/upsy-api/shared/database"
	"github.com/vasapolrittideah/upsy-api/shared/mailer"
)

// AppServiceConfig is the complete runtime configuration of the service.
type AppServiceConfig struct {
	Port               int           `env:"PORT"                 envDefault:"8080"`
	Environment        string        `env:"APP_ENV"              envDefault:"development"`
	LogLevel           string        `env:"LOG_LEVEL"            envDefault:"info"`
	AppBaseURL         string        `env:"APP_BASE_URL"         envDefault:"https://upsy.in"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"     envDefault:"10s"`

	// StaffEmails may list and review partnership requests.
	StaffEmails []string `env:"STAFF_EMAILS" envSeparator:","`
	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	Mongo     database.MongoConfig `envPrefix:"MONGODB_"`
	Token     TokenConfig          `envPrefix:"TOKEN_"`
	RateLimit RateLimitConfig      `envPrefix:"RATE_LIMIT_"`
	Mailer    mailer.Config
}

type TokenConfig struct {
	SessionSecret              string        `env:"SESSION_SECRET,required"`
	SessionExpiresIn           time.Duration `env:"SESSION_EXPIRES_IN"            envDefault:"168h"`
	Issuer                     string        `env:"ISSUER"                        envDefault:"upsy-api"`
	EmailVerificationExpiresIn time.Duration `env:"EMAIL_VERIFICATION_EXPIRES_IN" envDefault:"24h"`
}

type RateLimitConfig struct {
	RPS   float64 `env:"RPS"   envDefault:"1"`
	Burst int     `env:"BURST" envDefault:"5"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*AppServiceConfig, error) {
	cfg, err := env.ParseAs[AppServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AppServiceConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	u, err := url.Parse(c.AppBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid APP_BASE_URL %q", c.AppBaseURL)
	}

	if len(c.Token.SessionSecret) < 32 {
		return errors.New("TOKEN_SESSION_SECRET must be at least 32 characters")
	}
	if c.Token.SessionExpiresIn <= 0 {
		return errors.New("TOKEN_SESSION_EXPIRES_IN must be positive")
	}
	if c.Token.EmailVerificationExpiresIn <= 0 {
		return errors.New("TOKEN_EMAIL_VERIFICATION_EXPIRES_IN must be positive")
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	if c.Mongo.Timeout <= 0 {
		return errors.New("MONGODB_TIMEOUT must be positive")
	}

	return c.Mailer.Validate()
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *AppServiceConfig) IsProduction() bool {
	return c.Environment == "production"
}

// IsStaffEmail reports whether email is in STAFF_EMAILS, ignoring case and
// surrounding space.
func (c *AppServiceConfig) IsStaffEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	return slices.ContainsFunc(c.StaffEmails, func(staff string) bool {
		return strings.EqualFold(strings.TrimSpace(staff), email)
	})
}
