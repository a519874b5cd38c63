package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "static/uploads", cfg.UploadDir)
	assert.Equal(t, 24*time.Hour, cfg.SessionExpiration)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin", cfg.Admin.Password)
}

func TestLoad_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	settings := "[admin]\nusername = \"boss\"\npassword = \"s3cret\"\n"
	require.NoError(t, os.WriteFile(path, []byte(settings), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "boss", cfg.Admin.Username)
	assert.Equal(t, "s3cret", cfg.Admin.Password)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=db user=shop dbname=shop")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "host=db user=shop dbname=shop", cfg.DatabaseDSN)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestLoad_UploadDirFollowsStaticDir(t *testing.T) {
	t.Setenv("STATIC_DIR", "/srv/storefront/public")
	t.Setenv("UPLOAD_DIR", "/tmp/elsewhere")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/storefront/public", cfg.StaticDir)
	assert.Equal(t, "/srv/storefront/public/uploads", cfg.UploadDir)
}
