package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Store   StoreConfig   `koanf:"store"`
	Auth    AuthConfig    `koanf:"auth"`
	Hooks   HooksConfig   `koanf:"hooks"`
	Logging LoggingConfig `koanf:"logging"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig selects the document store. Driver "sqlite" uses a local
// file; "firestore" needs a project id and usually a credentials file.
type StoreConfig struct {
	Driver          string `koanf:"driver"`
	SQLitePath      string `koanf:"sqlite_path"`
	ProjectID       string `koanf:"project_id"`
	CredentialsFile string `koanf:"credentials_file"`
}

// AuthConfig selects the identity backend. Mode "firebase" verifies ID
// tokens against Firebase and signs users in through the Identity
// Toolkit REST API (WebAPIKey required); mode "local" signs and
// verifies HS256 tokens in-process against the local user table.
type AuthConfig struct {
	Mode      string        `koanf:"mode"`
	WebAPIKey string        `koanf:"web_api_key"`
	JWTSecret string        `koanf:"jwt_secret"`
	JWTIssuer string        `koanf:"jwt_issuer"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// HooksConfig guards the user lifecycle webhook endpoints. Hooks are
// disabled while the secret is empty.
type HooksConfig struct {
	Secret string `koanf:"secret"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "console" or "json"
}

const envPrefix = "MOVIEHUB_"

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver: "sqlite",
		},
		Auth: AuthConfig{
			Mode: "local",
			// dev default (change for demo / production)
			JWTSecret: "dev-secret-change-me",
			JWTIssuer: "moviehub",
			TokenTTL:  24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig layers struct defaults, an optional YAML file and
// MOVIEHUB_* environment variables, highest last. Nested keys use a
// double underscore in the environment: MOVIEHUB_SERVER__ADDR=:9090
// sets server.addr, MOVIEHUB_STORE__SQLITE_PATH sets store.sqlite_path.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Store.Driver {
	case "sqlite":
	case "firestore":
		if cfg.Store.ProjectID == "" {
			return fmt.Errorf("store.project_id is required with the firestore driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	switch cfg.Auth.Mode {
	case "local":
		if cfg.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required in local auth mode")
		}
	case "firebase":
		if cfg.Auth.WebAPIKey == "" {
			return fmt.Errorf("auth.web_api_key is required in firebase auth mode")
		}
	default:
		return fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}

	return nil
}
