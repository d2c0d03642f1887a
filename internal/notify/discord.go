package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ovbilous/priceboard/internal/metrics"
)

const (
	colorGreen  = 0x2ECC71 // clean run
	colorOrange = 0xE67E22 // partial failures
	colorRed    = 0xE74C3C // every object failed
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendReport sends one object's repricing result as a Discord embed.
func (d *DiscordNotifier) SendReport(ctx context.Context, report *RepricingReport) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildReportEmbed(report)},
	}
	return d.post(ctx, payload)
}

// SendRunSummary sends a scheduled run summary. Failed objects are listed as
// embed fields, capped at 10 per Discord's embed field guidance.
func (d *DiscordNotifier) SendRunSummary(ctx context.Context, summary *RunSummary) error {
	embed := discordEmbed{
		Title: "Scheduled repricing finished",
		Color: summaryColor(summary),
		Description: fmt.Sprintf("Repriced %d of %d objects in %s.",
			summary.Repriced, summary.Objects, summary.Duration.Round(time.Millisecond)),
	}

	limit := min(len(summary.Failed), 10)
	for i := range limit {
		f := &summary.Failed[i]
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:  fmt.Sprintf("Failed: %s (id %d)", f.Name, f.ReoID),
			Value: f.Cause,
		})
	}
	if len(summary.Failed) > 10 {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:  "More failures",
			Value: fmt.Sprintf("... and %d more objects failed.", len(summary.Failed)-10),
		})
	}

	payload := discordWebhookPayload{Embeds: []discordEmbed{embed}}
	return d.post(ctx, payload)
}

func buildReportEmbed(report *RepricingReport) discordEmbed {
	persisted := "no"
	if report.Persisted {
		persisted = "yes"
	}
	return discordEmbed{
		Title: fmt.Sprintf("Repriced: %s", report.ObjectName),
		Color: colorGreen,
		Fields: []discordEmbedField{
			{Name: "Units", Value: fmt.Sprintf("%d", report.Units), Inline: true},
			{Name: "Soldout", Value: fmt.Sprintf("%.1f%%", report.SoldoutRatio*100), Inline: true},
			{Name: "Onboarding", Value: fmt.Sprintf("%.2f", report.OnboardingPrice), Inline: true},
			{Name: "Persisted", Value: persisted, Inline: true},
		},
	}
}

func summaryColor(summary *RunSummary) int {
	switch {
	case len(summary.Failed) == 0:
		return colorGreen
	case summary.Repriced == 0:
		return colorRed
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
