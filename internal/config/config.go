package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT" validate:"required"`
		Mode string `yaml:"mode" env:"SERVER_MODE" validate:"oneof=development production test"`
	} `yaml:"server"`

	Backend struct {
		BaseURL string `yaml:"base_url" env:"BACKEND_BASE_URL" validate:"required,url"`
		Timeout string `yaml:"timeout" env:"BACKEND_TIMEOUT"`
	} `yaml:"backend"`

	Roster struct {
		Editable bool `yaml:"editable" env:"ROSTER_EDITABLE"`
		PageSize int  `yaml:"page_size" env:"ROSTER_PAGE_SIZE" validate:"oneof=10 25 100"`
	} `yaml:"roster"`

	Session struct {
		IdleTTL      string `yaml:"idle_ttl" env:"SESSION_IDLE_TTL"`
		CookieSecure bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE"`
	} `yaml:"session"`

	RateLimit struct {
		PerMinute int `yaml:"per_minute" env:"RATE_LIMIT_PER_MINUTE" validate:"gte=0"`
	} `yaml:"rate_limit"`

	CORS struct {
		AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=pretty json"`
	} `yaml:"logging"`
}

var validate = validator.New()

// LoadConfig loads configuration from a file, a .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env is the normal case outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Backend.BaseURL = "http://127.0.0.1:3000"
	config.Backend.Timeout = "10s"

	config.Roster.Editable = false
	config.Roster.PageSize = 10

	config.Session.IdleTTL = "30m"

	config.RateLimit.PerMinute = 240

	config.Logging.Level = "info"
	config.Logging.Format = "pretty"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}

	if _, err := positiveDuration(config.Backend.Timeout); err != nil {
		return fmt.Errorf("invalid backend timeout: %w", err)
	}

	if _, err := positiveDuration(config.Session.IdleTTL); err != nil {
		return fmt.Errorf("invalid session idle TTL: %w", err)
	}

	return nil
}

func positiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%q must be positive", s)
	}
	return d, nil
}

// BackendTimeout is the per-request timeout for backend calls.
// LoadConfig has already rejected unparsable values; fallback covers a
// Config built by hand.
func (c *Config) BackendTimeout(fallback time.Duration) time.Duration {
	if d, err := positiveDuration(c.Backend.Timeout); err == nil {
		return d
	}
	return fallback
}

// SessionIdleTTL is how long an untouched session keeps its screen
func (c *Config) SessionIdleTTL(fallback time.Duration) time.Duration {
	if d, err := positiveDuration(c.Session.IdleTTL); err == nil {
		return d
	}
	return fallback
}

// APIBaseURL returns the backend root every API path is appended to
func (c *Config) APIBaseURL() string {
	return strings.TrimRight(c.Backend.BaseURL, "/") + "/api/v1"
}

// CORSOrigins splits the comma separated origin list
func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORS.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsProduction reports whether gin should run in release mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
