package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment. SECRET_KEY is the only required
// value; everything else has a sensible default.
type Config struct {
	SecretKey          string `env:"SECRET_KEY,required"`
	Issuer             string `env:"JWT_ISSUER" envDefault:"identity"`
	Audience           string `env:"JWT_AUDIENCE" envDefault:"identity"`
	JWTLifetimeSeconds int    `env:"JWT_LIFETIME_SECONDS" envDefault:"3600"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"identity.db"`
	PepperFile   string `env:"AUTH_PEPPER_FILE" envDefault:"pepper"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// JWTLifetime returns the configured access token lifetime.
func (c Config) JWTLifetime() time.Duration {
	return time.Duration(c.JWTLifetimeSeconds) * time.Second
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
