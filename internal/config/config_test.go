package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfigFromYAMLWithDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: memory
jwt:
  secret: s3cret
security:
  profile_access: self_or_admin
`)

	for _, key := range []string{"SERVER_PORT", "SERVER_MODE", "JWT_SECRET", "DB_DRIVER", "SECURITY_PROFILE_ACCESS"} {
		unsetEnv(t, key)
	}

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, "24h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Server.StoragePath)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ProfileAccessSelfOrAdmin, cfg.Security.ProfileAccess)
	assert.Equal(t, "admin@alumni.com", cfg.Seed.AdminEmail)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
database:
  driver: memory
jwt:
  secret: from-file
`)
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_MODE", "production")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigWithoutFileUsesEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "env-only")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.JWT.Secret)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "database:\n  driver: memory\n"},
		{"unknown driver", "database:\n  driver: oracle\njwt:\n  secret: x\n"},
		{"bad expiration", "database:\n  driver: memory\njwt:\n  secret: x\n  access_token_expiration: forever\n"},
		{"bad profile policy", "database:\n  driver: memory\njwt:\n  secret: x\nsecurity:\n  profile_access: everyone\n"},
		{"origin without scheme", "server:\n  allowed_origins:\n    - localhost:3000\ndatabase:\n  driver: memory\njwt:\n  secret: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, "JWT_SECRET")
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "alumni"

	assert.Equal(t, "postgres://u:p@db:5432/alumni?sslmode=disable", cfg.GetPostgresConnectionString())
}
