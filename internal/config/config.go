package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultSettingsFile is the settings file read when no path is given.
const DefaultSettingsFile = "config.toml"

const uploadsSubdir = "uploads"

// Config holds the runtime settings of the storefront.
type Config struct {
	AppPort           string
	DatabaseDriver    string
	DatabaseDSN       string
	RedisURL          string
	RabbitMQURL       string
	UploadDir         string // always StaticDir/uploads, served under /static/uploads
	StaticDir         string
	SessionExpiration time.Duration
	CookieSecure      bool
	SeedDemo          bool
	LogLevel          string
	LogFormat         string
	Admin             AdminCredentials
}

// AdminCredentials is the administrator login pair. It is compared in
// plaintext and never stored in the user table.
type AdminCredentials struct {
	Username string
	Password string
}

// Load reads configuration from environment variables and the optional
// TOML settings file at settingsPath. A missing settings file is ignored.
func Load(settingsPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "store.db")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("SESSION_EXPIRATION", "24h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("SEED_DEMO", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin")
	v.AutomaticEnv()

	if settingsPath == "" {
		settingsPath = DefaultSettingsFile
	}
	v.SetConfigFile(settingsPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settingsPath, err)
		}
	}

	driver := v.GetString("DATABASE_DRIVER")
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	return &Config{
		AppPort:           v.GetString("APP_PORT"),
		DatabaseDriver:    driver,
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		RedisURL:          v.GetString("REDIS_URL"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		UploadDir:         filepath.Join(v.GetString("STATIC_DIR"), uploadsSubdir),
		StaticDir:         v.GetString("STATIC_DIR"),
		SessionExpiration: v.GetDuration("SESSION_EXPIRATION"),
		CookieSecure:      v.GetBool("COOKIE_SECURE"),
		SeedDemo:          v.GetBool("SEED_DEMO"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		Admin: AdminCredentials{
			Username: v.GetString("admin.username"),
			Password: v.GetString("admin.password"),
		},
	}, nil
}
