package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
	DriverMemory   = "memory"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Carteira"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Currency string `envconfig:"CURRENCY" default:"BRL"`
		// Catalog is an optional YAML file replacing the built-in
		// categories, investment types and plans.
		Catalog string `envconfig:"CATALOG_FILE"`
	}

	Storage struct {
		Driver string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
		// DSN is the SQLite file path, or a full postgres URL. When empty
		// with the pgx driver, the DB_* fields are used instead.
		DSN string `envconfig:"STORAGE_DSN" default:"carteira.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"carteira"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
		File  string `envconfig:"LOG_FILE"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// DataSource returns the driver name and DSN to open the slot database with.
func (c *Config) DataSource() (string, string, error) {
	switch c.Storage.Driver {
	case DriverSQLite:
		return DriverSQLite, c.Storage.DSN, nil
	case DriverMemory:
		return DriverMemory, "", nil
	case DriverPostgres, "postgres":
		dsn := c.Storage.DSN
		if dsn == "" || !strings.Contains(dsn, "://") {
			dsn = c.ConnectionString()
		}

		return DriverPostgres, dsn, nil
	}

	return "", "", fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
