package main

import "errors"

// KnownMetrics is the set of metric names exported by priceboard plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"priceboard_http_request_duration_seconds": true,
	"priceboard_http_requests_total":           true,

	// Health metrics.
	"priceboard_healthz_up": true,
	"priceboard_readyz_up":  true,

	// Upload metrics.
	"priceboard_upload_rows_total":   true,
	"priceboard_upload_errors_total": true,

	// Repricing metrics.
	"priceboard_repricing_runs_total":             true,
	"priceboard_repricing_errors_total":           true,
	"priceboard_repricing_duration_seconds":       true,
	"priceboard_repricing_daily_limit_hits_total": true,
	"priceboard_repricing_daily_usage":            true,

	// Scoring metrics.
	"priceboard_scoring_distribution":  true,
	"priceboard_prices_computed_total": true,

	// Notification metrics.
	"priceboard_notification_duration_seconds": true,
	"priceboard_notification_failures_total":   true,

	// Recording rules.
	"priceboard:http_requests:rate5m":    true,
	"priceboard:http_errors:rate5m":      true,
	"priceboard:upload_rows:rate5m":      true,
	"priceboard:upload_errors:rate5m":    true,
	"priceboard:repricing_runs:rate5m":   true,
	"priceboard:repricing_errors:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
