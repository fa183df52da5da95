package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5433
  user: tracker
  password: secret
  dbname: player_tracker
  sslmode: require
server:
  host: 127.0.0.1
  port: 9090
auth:
  admin_api_keys:
    - key-one
    - key-two
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_EVENTS"
hiscores:
  base_url: "http://localhost:9999/hiscores"
  timeout: "3s"
webhook:
  url: "https://client.example.com/hooks"
  hex_secret: "deadbeef"
blocked_names:
  path: "config/blocked_names.json"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.AdminAPIKeys)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, "http://localhost:9999/hiscores", cfg.Hiscores.BaseURL)
				assert.Equal(t, 3*time.Second, cfg.Hiscores.Timeout)
				assert.Equal(t, "https://client.example.com/hooks", cfg.Webhook.URL)
				assert.Equal(t, "deadbeef", cfg.Webhook.HexSecret)
				assert.Equal(t, "config/blocked_names.json", cfg.BlockedNames.Path)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: tracker
  password: secret
  dbname: player_tracker
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				// Check defaults
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15, cfg.Server.ReadTimeout)
				assert.Equal(t, "NAME_CHANGE_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, 10*time.Second, cfg.Hiscores.Timeout)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 10, cfg.RateLimiter.MaxWorkers)
				assert.True(t, cfg.RateLimiter.EnableLocalFallback)
				// Webhook delivery is off until configured
				assert.Empty(t, cfg.Webhook.URL)
				assert.Empty(t, cfg.BlockedNames.Path)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: player_tracker
`,
			expectError: "database.host is required",
		},
		{
			name: "missing database name",
			configFile: `
database:
  host: localhost
`,
			expectError: "database.dbname is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.configFile)

			cfg, err := LoadAPIConfig(path, t.TempDir())
			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
				return
			}

			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadSweeperConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *SweeperConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: localhost
  user: tracker
  password: secret
  dbname: player_tracker
snapshot_refresh:
  batch_size: 200
  worker_pool_size: 8
  refresh_after: "6h"
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, 200, cfg.SnapshotRefresh.BatchSize)
				assert.Equal(t, 8, cfg.SnapshotRefresh.WorkerPoolSize)
				assert.Equal(t, 6*time.Hour, cfg.SnapshotRefresh.RefreshAfter)
			},
		},
		{
			name: "sweeper defaults",
			configFile: `
database:
  host: localhost
  dbname: player_tracker
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, 50, cfg.SnapshotRefresh.BatchSize)
				assert.Equal(t, 4, cfg.SnapshotRefresh.WorkerPoolSize)
				assert.Equal(t, 24*time.Hour, cfg.SnapshotRefresh.RefreshAfter)
				assert.Equal(t, "https://secure.runescape.com/m=hiscore_oldschool", cfg.Hiscores.BaseURL)
			},
		},
		{
			name:        "missing required fields",
			configFile:  "debug: true\n",
			expectError: "database.host is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.configFile)

			cfg, err := LoadSweeperConfig(path, t.TempDir())
			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
				return
			}

			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "tracker",
		Password: "secret",
		DBName:   "player_tracker",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5432 user=tracker password=secret dbname=player_tracker sslmode=require",
		cfg.DSN(),
	)
}
