// Package config reads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinSecretLength is the shortest session secret accepted for HMAC-SHA256.
const MinSecretLength = 32

// Config holds every setting of one run. DefaultUser is the email signed
// in at start. LogFile receives JSON logs next to the text logs on stderr,
// and MetricsFile a Prometheus text dump at exit, when set.
type Config struct {
	DatabasePath  string        `env:"FESTA_DATABASE_PATH" envDefault:":memory:"`
	SessionSecret string        `env:"FESTA_SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"FESTA_SESSION_TTL" envDefault:"24h"`
	LogLevel      slog.Level    `env:"FESTA_LOG_LEVEL" envDefault:"INFO"`
	LogFile       string        `env:"FESTA_LOG_FILE"`
	Seed          bool          `env:"FESTA_SEED" envDefault:"true"`
	DefaultUser   string        `env:"FESTA_DEFAULT_USER" envDefault:"admin@example.com"`
	MetricsFile   string        `env:"FESTA_METRICS_FILE"`
}

// Load reads the given dotenv files (".env" when none are given) and then
// parses the environment. Missing dotenv files are ignored; variables
// already set in the environment win over the files.
func Load(dotenvPaths ...string) (*Config, error) {
	if len(dotenvPaths) == 0 {
		dotenvPaths = []string{".env"}
	}
	for _, p := range dotenvPaths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
	}
	return Parse()
}

// Parse builds a Config from environment variables only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values env tags cannot express.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSecretLength {
		return fmt.Errorf("FESTA_SESSION_SECRET must be at least %d characters for HMAC-SHA256 security", MinSecretLength)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("FESTA_SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.DatabasePath == "" {
		return errors.New("FESTA_DATABASE_PATH must not be empty")
	}
	return nil
}
