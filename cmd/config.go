package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration written as "90s" or "1h" in the config file.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Config struct {
	Listen      string   `toml:"listen"`
	ClientURLs  []string `toml:"client_urls"`
	Environment string   `toml:"environment"`

	DbURI     string `toml:"db_uri" required:"true"`
	JWTSecret string `toml:"jwt_secret" required:"true"`

	// TokenTTL of 0 issues session tokens that never expire.
	TokenTTL           Duration `toml:"token_ttl"`
	ResolutionInterval Duration `toml:"resolution_interval"`
}

// Default config values
func defaultConfig() Config {
	return Config{
		Listen:             "0.0.0.0:3001",
		Environment:        "development",
		ResolutionInterval: Duration(time.Hour),
	}
}

// loadConfig reads the optional TOML file at path and then applies the
// environment overrides.
func loadConfig(path string, getenv func(string) string) (Config, error) {
	config := defaultConfig()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return config, fmt.Errorf("failed to open config file: %w", err)
		}
		err = toml.NewDecoder(file).DisallowUnknownFields().Decode(&config)
		if err != nil {
			_ = file.Close()
			return config, fmt.Errorf("failed to decode config file: %w", err)
		}
		if err = file.Close(); err != nil {
			return config, fmt.Errorf("failed to close config file: %w", err)
		}
	}

	if v := getenv("DATABASE_URL"); v != "" {
		config.DbURI = v
	}
	if v := getenv("JWTSECRET"); v != "" {
		config.JWTSecret = v
	}
	if v := getenv("PORT"); v != "" {
		config.Listen = "0.0.0.0:" + v
	}
	if v := getenv("APP_ENV"); v != "" {
		config.Environment = v
	}
	if v := getenv("CLIENT_URLS"); v != "" {
		config.ClientURLs = nil
		for _, url := range strings.Split(v, ",") {
			if url = strings.TrimSpace(url); url != "" {
				config.ClientURLs = append(config.ClientURLs, url)
			}
		}
	}

	return config, config.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.DbURI == "" {
		errs = append(errs, errors.New("db_uri (DATABASE_URL) is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret (JWTSECRET) is required"))
	}
	if c.TokenTTL < 0 {
		errs = append(errs, errors.New("token_ttl cannot be negative"))
	}
	if c.ResolutionInterval <= 0 {
		errs = append(errs, errors.New("resolution_interval must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) Production() bool {
	return c.Environment == "production"
}
