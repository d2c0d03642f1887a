package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ovbilous/priceboard/internal/metrics"
	"github.com/ovbilous/priceboard/internal/notify"
)

// Scheduler reprices every object on a fixed interval, staggering objects
// to avoid bursts against the database.
type Scheduler struct {
	cron          *cron.Cron
	engine        *Engine
	log           *slog.Logger
	notifier      notify.Notifier
	staggerOffset time.Duration
	persist       bool
}

// NewScheduler creates a Scheduler that runs periodic repricing.
func NewScheduler(
	eng *Engine,
	repricingInterval time.Duration,
	staggerOffset time.Duration,
	persist bool,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:          c,
		engine:        eng,
		log:           log,
		notifier:      notify.NewNoOpNotifier(log),
		staggerOffset: staggerOffset,
		persist:       persist,
	}

	if _, err := c.AddFunc(
		"@every "+repricingInterval.String(),
		s.runRepricing,
	); err != nil {
		return nil, err
	}

	return s, nil
}

// SetNotifier replaces the run notifier. The default discards notifications.
func (s *Scheduler) SetNotifier(n notify.Notifier) {
	s.notifier = n
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RepriceAll runs the pipeline over every stored object. Objects without a
// pricing config are skipped, other failures are logged and the run
// continues. A run summary goes to the notifier when the run completes.
func (s *Scheduler) RepriceAll(ctx context.Context) error {
	objects, err := s.engine.store.ListObjects(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	summary := notify.RunSummary{Objects: len(objects)}

	for i := range objects {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		res, err := s.engine.Reprice(ctx, RepriceRequest{
			ReoID:   objects[i].ID,
			Persist: s.persist,
		})
		if err != nil {
			s.log.Error("scheduled repricing failed",
				"reo_id", objects[i].ID,
				"name", objects[i].Name,
				"error", err,
			)
			summary.Failed = append(summary.Failed, notify.FailedObject{
				ReoID: objects[i].ID,
				Name:  objects[i].Name,
				Cause: err.Error(),
			})
			continue
		}

		summary.Repriced++
		s.send(ctx, &notify.RepricingReport{
			ReoID:           objects[i].ID,
			ObjectName:      objects[i].Name,
			Units:           len(res.Rows),
			SoldoutRatio:    res.SoldoutRatio,
			OnboardingPrice: res.OnboardingPrice,
			Persisted:       res.Persisted,
		})

		// Stagger between objects to avoid bursts.
		if i < len(objects)-1 && s.staggerOffset > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.staggerOffset):
			}
		}
	}

	summary.Duration = time.Since(start)
	if err := s.notifier.SendRunSummary(ctx, &summary); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		s.log.Error("sending run summary failed", "error", err)
	}

	return nil
}

func (s *Scheduler) send(ctx context.Context, report *notify.RepricingReport) {
	if err := s.notifier.SendReport(ctx, report); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		s.log.Error("sending repricing report failed",
			"reo_id", report.ReoID,
			"error", err,
		)
	}
}

func (s *Scheduler) runRepricing() {
	ctx := context.Background()
	s.log.Info("scheduled repricing starting")
	if err := s.RepriceAll(ctx); err != nil {
		s.log.Error("scheduled repricing failed", "error", err)
	}
}
