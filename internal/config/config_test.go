package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"alcyxob/training-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  address: ":9090"
database:
  driver: memory
jwt:
  secret: s3cr3t
  expiration: 30m
s3:
  presign_expiry: 5m
logging:
  level: debug
  max_backups: 3
`)

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, config.DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 5*time.Minute, cfg.S3.PresignExpiry)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Logging.MaxBackups)
	assert.Equal(t, 50, cfg.Logging.MaxSizeMB)
	assert.Equal(t, "training_tracker", cfg.Metrics.Namespace)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: memory
jwt:
  secret: from-file
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_ADDRESS", ":7070")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, ":7070", cfg.Server.Address)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, config.DriverMongo, cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 10, cfg.Logging.MaxBackups)
	assert.True(t, cfg.Logging.Compress)
}

func TestConfig_Validate(t *testing.T) {
	valid := config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		JWT:      config.JWTConfig{Secret: "x"},
	}
	assert.NoError(t, valid.Validate())

	noSecret := valid
	noSecret.JWT.Secret = ""
	assert.Error(t, noSecret.Validate())

	badDriver := valid
	badDriver.Database.Driver = "postgres"
	assert.Error(t, badDriver.Validate())

	noBucket := valid
	noBucket.S3.Enabled = true
	assert.Error(t, noBucket.Validate())
}
