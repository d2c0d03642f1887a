// Command dashgen generates the Grafana dashboard and Prometheus rule files
// for priceboard. Artifacts are validated against the known metric set before
// anything is written.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ovbilous/priceboard/tools/dashgen/dashboards"
	"github.com/ovbilous/priceboard/tools/dashgen/rules"
	"github.com/ovbilous/priceboard/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen; DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("building overview dashboard: %w", err)
	}

	recording := rules.RecordingRules()
	alerts := rules.AlertRules()

	var failures []string
	for name, res := range map[string]validate.Result{
		"overview dashboard": validate.Dashboard(dash, KnownMetrics),
		"recording rules":    validate.Rules(recording, KnownMetrics),
		"alert rules":        validate.Rules(alerts, KnownMetrics),
	} {
		for _, e := range res.Errors {
			failures = append(failures, fmt.Sprintf("%s: %s", name, e))
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", name, w)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("validation failed:\n  %s", strings.Join(failures, "\n  "))
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling dashboard: %w", err)
		}
		path := filepath.Join(cfg.OutputDir, "grafana", "data", "priceboard-overview.json")
		if err := writeArtifact(path, data); err != nil {
			return err
		}
	}

	if cfg.RulesEnabled {
		for name, cr := range map[string]rules.PrometheusRule{
			"priceboard-recording-rules.yaml": recording,
			"priceboard-alerts.yaml":          alerts,
		} {
			data, err := yaml.Marshal(cr)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", name, err)
			}
			path := filepath.Join(cfg.OutputDir, "prometheus", name)
			if err := writeArtifact(path, append([]byte(generatedHeader), data...)); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
