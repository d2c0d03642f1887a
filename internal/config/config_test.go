package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testdb", cfg.Database.Name)
				assert.Equal(t, "testuser", cfg.Database.User)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)
				assert.Equal(t, "Regular", cfg.Engine.Mode)
				assert.Equal(t, "weighted-distance", cfg.Engine.ScoringVariant)
				assert.Equal(t, "bounded", cfg.Engine.CondValueVariant)
				assert.Equal(t, "pieces", cfg.Engine.OversoldMethod)
				assert.InDelta(t, 100.0, cfg.Engine.FitSpreadRate, 0.001)
				assert.InDelta(t, 5.0, cfg.Engine.RateLimit.PerSecond, 0.001)
				assert.Equal(t, 10, cfg.Engine.RateLimit.Burst)
				assert.Equal(t, int64(5000), cfg.Engine.RateLimit.DailyLimit)
				assert.Equal(t, 15*time.Minute, cfg.Schedule.RepricingInterval)
				assert.Equal(t, 30*time.Second, cfg.Schedule.StaggerOffset)
				assert.Equal(t, 10000, cfg.Upload.MaxRows)
				assert.Equal(t, 16<<20, cfg.Upload.MaxBodyBytes)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
  password: "${TEST_DB_PASSWORD}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
			},
		},
		{
			name: "missing required database.host",
			yaml: `
database:
  name: testdb
  user: testuser
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing required database.name",
			yaml: `
database:
  host: localhost
  user: testuser
`,
			wantErr: "database.name is required",
		},
		{
			name: "missing required database.user",
			yaml: `
database:
  host: localhost
  name: testdb
`,
			wantErr: "database.user is required",
		},
		{
			name: "invalid engine mode",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
engine:
  mode: Turbo
`,
			wantErr: `engine.mode must be "Regular" or "Oh, Elon" (got "Turbo")`,
		},
		{
			name: "invalid scoring variant",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
engine:
  scoring_variant: cosine
`,
			wantErr: `engine.scoring_variant must be weighted-distance or factor-similarity (got "cosine")`,
		},
		{
			name: "invalid condvalue variant",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
engine:
  condvalue_variant: quadratic
`,
			wantErr: `engine.condvalue_variant must be bounded or spread (got "quadratic")`,
		},
		{
			name: "invalid oversold method",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
engine:
  oversold_method: volume
`,
			wantErr: `engine.oversold_method must be pieces or area (got "volume")`,
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
database:
  host: db.example.com
  port: 5433
  name: priceboard_prod
  user: admin
  password: pass
  sslmode: require
  pool_size: 20
engine:
  mode: "Oh, Elon"
  scoring_variant: factor-similarity
  condvalue_variant: spread
  oversold_method: area
  fit_spread_rate: 50
  rate_limit:
    per_second: 2
    burst: 4
    daily_limit: 100
schedule:
  repricing_interval: 1h
  stagger_offset: 10s
upload:
  max_rows: 500
  max_body_bytes: 1048576
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, time.Minute, cfg.Server.ReadTimeout)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 20, cfg.Database.PoolSize)
				assert.Equal(t, "Oh, Elon", cfg.Engine.Mode)
				assert.Equal(t, "factor-similarity", cfg.Engine.ScoringVariant)
				assert.Equal(t, "spread", cfg.Engine.CondValueVariant)
				assert.Equal(t, "area", cfg.Engine.OversoldMethod)
				assert.InDelta(t, 50.0, cfg.Engine.FitSpreadRate, 0.001)
				assert.InDelta(t, 2.0, cfg.Engine.RateLimit.PerSecond, 0.001)
				assert.Equal(t, 4, cfg.Engine.RateLimit.Burst)
				assert.Equal(t, int64(100), cfg.Engine.RateLimit.DailyLimit)
				assert.Equal(t, time.Hour, cfg.Schedule.RepricingInterval)
				assert.Equal(t, 10*time.Second, cfg.Schedule.StaggerOffset)
				assert.Equal(t, 500, cfg.Upload.MaxRows)
				assert.Equal(t, 1<<20, cfg.Upload.MaxBodyBytes)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			cfg, err := Load(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDSN(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{
		Host: "localhost", Port: 5432, Name: "pb",
		User: "u", Password: "p", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 dbname=pb user=u password=p sslmode=disable",
		d.DSN(),
	)
}
