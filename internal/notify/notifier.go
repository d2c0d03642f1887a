// Package notify defines the notification interface and implementations
// for repricing run delivery.
package notify

import (
	"context"
	"time"
)

// RepricingReport contains the data for one object's repricing notification.
type RepricingReport struct {
	ReoID           int64
	ObjectName      string
	Units           int
	SoldoutRatio    float64
	OnboardingPrice float64
	Persisted       bool
}

// FailedObject records one object that failed during a scheduled run.
type FailedObject struct {
	ReoID int64
	Name  string
	Cause string
}

// RunSummary aggregates one scheduled repricing run across all objects.
type RunSummary struct {
	Objects  int
	Repriced int
	Failed   []FailedObject
	Duration time.Duration
}

// Notifier defines the interface for delivering repricing notifications.
type Notifier interface {
	SendReport(ctx context.Context, report *RepricingReport) error
	SendRunSummary(ctx context.Context, summary *RunSummary) error
}
