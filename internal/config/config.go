package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port        string `validate:"required,numeric"`
	Provider    string `validate:"oneof=restcountries fixture"`
	CORSOrigins []string
	Log         LogConfig
	Upstream    UpstreamConfig
	Metrics     MetricsConfig
}

// LogConfig selects the slog handler level and format.
type LogConfig struct {
	Level  string `validate:"oneof=debug info warn warning error"`
	Format string `validate:"oneof=text json"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:        envOrDefault(envPort, defaultPort),
		Provider:    strings.ToLower(envOrDefault(envProvider, defaultProvider)),
		CORSOrigins: listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		Log: LogConfig{
			Level:  strings.ToLower(envOrDefault(envLogLevel, defaultLogLevel)),
			Format: strings.ToLower(envOrDefault(envLogFormat, defaultLogFormat)),
		},
		Upstream: loadUpstream(),
		Metrics:  loadMetrics(),
	}
}

// LoadDotEnv populates unset environment variables from .env style files.
// With no arguments it reads ./.env. Variables already set are left alone.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

// Validate checks field constraints and returns one error per violated field.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.Join(errs...)
}
