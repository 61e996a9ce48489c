package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Journal   JournalConfig   `yaml:"journal"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects where the journal document lives.
// Path is used by the sqlite driver, Database and Migrations by postgres.
type StorageConfig struct {
	Driver     string         `yaml:"driver"`
	Path       string         `yaml:"path"`
	Migrations string         `yaml:"migrations"`
	Database   DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// JournalConfig names the storage key of the journal document and the
// older keys probed when it is missing.
type JournalConfig struct {
	StorageKey string   `yaml:"storage_key"`
	LegacyKeys []string `yaml:"legacy_keys"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8080},
		Storage: StorageConfig{
			Driver:     "sqlite",
			Path:       "data/ironpulse.db",
			Migrations: "migrations",
		},
		Journal: JournalConfig{
			StorageKey: "ironpulse.v1",
			LegacyKeys: []string{"forgetrack.v2", "forgetrack.v1"},
		},
		Tailscale: TailscaleConfig{Hostname: "ironpulse", StateDir: "data/tsnet"},
	}
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix IRONPULSE_ and underscore-separated paths:
//
//	IRONPULSE_SERVER_HOST, IRONPULSE_SERVER_PORT,
//	IRONPULSE_STORAGE_DRIVER, IRONPULSE_STORAGE_PATH, IRONPULSE_STORAGE_MIGRATIONS,
//	IRONPULSE_DB_HOST, IRONPULSE_DB_PORT, IRONPULSE_DB_NAME,
//	IRONPULSE_DB_USER, IRONPULSE_DB_PASSWORD, IRONPULSE_DB_SSLMODE,
//	IRONPULSE_JOURNAL_STORAGE_KEY, IRONPULSE_JOURNAL_LEGACY_KEYS (comma-separated),
//	IRONPULSE_TAILSCALE_ENABLED, IRONPULSE_TAILSCALE_HOSTNAME, IRONPULSE_TAILSCALE_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setString := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) {
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("IRONPULSE_SERVER_HOST", &cfg.Server.Host)
	setInt("IRONPULSE_SERVER_PORT", &cfg.Server.Port)
	setString("IRONPULSE_STORAGE_DRIVER", &cfg.Storage.Driver)
	setString("IRONPULSE_STORAGE_PATH", &cfg.Storage.Path)
	setString("IRONPULSE_STORAGE_MIGRATIONS", &cfg.Storage.Migrations)
	setString("IRONPULSE_DB_HOST", &cfg.Storage.Database.Host)
	setInt("IRONPULSE_DB_PORT", &cfg.Storage.Database.Port)
	setString("IRONPULSE_DB_NAME", &cfg.Storage.Database.Name)
	setString("IRONPULSE_DB_USER", &cfg.Storage.Database.User)
	setString("IRONPULSE_DB_PASSWORD", &cfg.Storage.Database.Password)
	setString("IRONPULSE_DB_SSLMODE", &cfg.Storage.Database.SSLMode)
	setString("IRONPULSE_JOURNAL_STORAGE_KEY", &cfg.Journal.StorageKey)
	if v := os.Getenv("IRONPULSE_JOURNAL_LEGACY_KEYS"); v != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		cfg.Journal.LegacyKeys = keys
	}
	if v := os.Getenv("IRONPULSE_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	setString("IRONPULSE_TAILSCALE_HOSTNAME", &cfg.Tailscale.Hostname)
	setString("IRONPULSE_TAILSCALE_STATE_DIR", &cfg.Tailscale.StateDir)
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Journal.StorageKey == "" {
		return fmt.Errorf("journal.storage_key is required")
	}
	for _, k := range c.Journal.LegacyKeys {
		if k == c.Journal.StorageKey {
			return fmt.Errorf("journal.legacy_keys must not contain the storage key %q", k)
		}
	}
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for sqlite")
		}
	case "postgres":
		if c.Storage.Database.Host == "" {
			return fmt.Errorf("storage.database.host is required")
		}
		if c.Storage.Database.Port == 0 {
			return fmt.Errorf("storage.database.port is required")
		}
		if c.Storage.Database.Name == "" {
			return fmt.Errorf("storage.database.name is required")
		}
		if c.Storage.Database.User == "" {
			return fmt.Errorf("storage.database.user is required")
		}
	default:
		return fmt.Errorf("storage.driver must be sqlite or postgres, got %q", c.Storage.Driver)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
