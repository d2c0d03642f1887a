// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Engine        EngineConfig        `yaml:"engine"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Upload        UploadConfig        `yaml:"upload"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// EngineConfig defines the pricing-engine defaults. Per-object pricing
// configs override these at run time; the values here seed new objects and
// drive scheduled repricing.
type EngineConfig struct {
	Mode             string          `yaml:"mode"`              // Regular, "Oh, Elon"
	ScoringVariant   string          `yaml:"scoring_variant"`   // weighted-distance, factor-similarity
	CondValueVariant string          `yaml:"condvalue_variant"` // bounded, spread
	OversoldMethod   string          `yaml:"oversold_method"`   // pieces, area
	FitSpreadRate    float64         `yaml:"fit_spread_rate"`
	RateLimit        RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles engine-triggered repricing runs.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ScheduleConfig defines cron intervals for background repricing.
type ScheduleConfig struct {
	RepricingInterval time.Duration `yaml:"repricing_interval"`
	StaggerOffset     time.Duration `yaml:"stagger_offset"`
}

// UploadConfig bounds bulk spreadsheet ingestion.
type UploadConfig struct {
	MaxRows      int `yaml:"max_rows"`
	MaxBodyBytes int `yaml:"max_body_bytes"`
}

// NotificationsConfig selects the notification backend. An empty webhook URL
// disables delivery.
type NotificationsConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyEngineDefaults(&cfg.Engine)
	applyScheduleDefaults(&cfg.Schedule)
	applyUploadDefaults(&cfg.Upload)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyEngineDefaults(e *EngineConfig) {
	if e.Mode == "" {
		e.Mode = string(domain.EngineRegular)
	}
	if e.ScoringVariant == "" {
		e.ScoringVariant = "weighted-distance"
	}
	if e.CondValueVariant == "" {
		e.CondValueVariant = "bounded"
	}
	if e.OversoldMethod == "" {
		e.OversoldMethod = string(domain.OversoldPieces)
	}
	if e.FitSpreadRate == 0 {
		e.FitSpreadRate = 100
	}
	applyRateLimitDefaults(&e.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RepricingInterval == 0 {
		s.RepricingInterval = 15 * time.Minute
	}
	if s.StaggerOffset == 0 {
		s.StaggerOffset = 30 * time.Second
	}
}

func applyUploadDefaults(u *UploadConfig) {
	if u.MaxRows == 0 {
		u.MaxRows = 10000
	}
	if u.MaxBodyBytes == 0 {
		u.MaxBodyBytes = 16 << 20
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	switch cfg.Engine.Mode {
	case string(domain.EngineRegular), string(domain.EngineOhElon):
	default:
		errs = append(errs, fmt.Errorf(
			"engine.mode must be %q or %q (got %q)",
			domain.EngineRegular, domain.EngineOhElon, cfg.Engine.Mode,
		))
	}

	switch cfg.Engine.ScoringVariant {
	case "weighted-distance", "factor-similarity":
	default:
		errs = append(errs, fmt.Errorf(
			"engine.scoring_variant must be weighted-distance or factor-similarity (got %q)",
			cfg.Engine.ScoringVariant,
		))
	}

	switch cfg.Engine.CondValueVariant {
	case "bounded", "spread":
	default:
		errs = append(errs, fmt.Errorf(
			"engine.condvalue_variant must be bounded or spread (got %q)",
			cfg.Engine.CondValueVariant,
		))
	}

	switch cfg.Engine.OversoldMethod {
	case string(domain.OversoldPieces), string(domain.OversoldArea):
	default:
		errs = append(errs, fmt.Errorf(
			"engine.oversold_method must be pieces or area (got %q)",
			cfg.Engine.OversoldMethod,
		))
	}

	return errors.Join(errs...)
}
