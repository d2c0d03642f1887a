package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded notifications. It is
// used when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards notifications with a log
// message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendReport logs and discards a single repricing report.
func (n *NoOpNotifier) SendReport(_ context.Context, report *RepricingReport) error {
	n.log.Debug("notification discarded (no backend configured)",
		"reo_id", report.ReoID,
		"object", report.ObjectName,
		"units", report.Units,
	)
	return nil
}

// SendRunSummary logs and discards a run summary.
func (n *NoOpNotifier) SendRunSummary(_ context.Context, summary *RunSummary) error {
	n.log.Debug("run summary discarded (no backend configured)",
		"objects", summary.Objects,
		"failed", len(summary.Failed),
	)
	return nil
}
