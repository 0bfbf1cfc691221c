package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: jobtracker
  log:
    level: debug
http:
  port: 8080
database:
  driver: sqlite
  sqlitePath: ":memory:"
secretKey:
  access: from-file
auth:
  accessTokenTTL: 15m
  loginIdentifier: EMAIL
`

func TestLoadWithEnv_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfigYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Driver = "SQLite"

	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, defaultSQLitePath, cfg.Database.SQLitePath)
	assert.Equal(t, DefaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, LoginByEither, cfg.Auth.LoginIdentifier)
	assert.Equal(t, DefaultPageLimit, cfg.Pagination.DefaultLimit)
	assert.Equal(t, DefaultMaxPageLimit, cfg.Pagination.MaxLimit)
}

func TestApplyDefaults_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "postgres without connection settings",
			mutate:  func(cfg *Config) {},
			wantErr: "postgres configuration is required",
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *Config) { cfg.Database.Driver = "oracle" },
			wantErr: "unsupported database driver",
		},
		{
			name: "unknown login identifier",
			mutate: func(cfg *Config) {
				cfg.Database.Driver = DriverSQLite
				cfg.Auth = &AuthConfig{LoginIdentifier: "phone"}
			},
			wantErr: "unsupported auth.loginIdentifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			tt.mutate(cfg)

			err := cfg.applyDefaults()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyDefaults_ClampsDefaultLimit(t *testing.T) {
	cfg := &Config{Pagination: &PaginationConfig{DefaultLimit: 500, MaxLimit: 50}}
	cfg.Database.Driver = DriverSQLite

	require.NoError(t, cfg.applyDefaults())
	assert.Equal(t, 50, cfg.Pagination.DefaultLimit)
}
