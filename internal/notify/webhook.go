// Package notify posts directory events to a Discord-compatible webhook.
// Notification is best-effort: a delivery failure never affects the store
// mutation that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/upsearch/upsearch/internal/analytics"
)

const (
	submissionColor = 0x667eea
	reportColor     = 0xff6b6b
)

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// Webhook delivers embed messages to one webhook URL.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook notifier. An empty URL disables delivery.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a webhook URL is configured.
func (w *Webhook) Enabled() bool {
	return w.url != ""
}

// SiteSubmitted posts a submission notification.
func (w *Webhook) SiteSubmitted(ctx context.Context, event *analytics.SiteSubmittedEvent) error {
	return w.post(ctx, embed{
		Title: "New Website Submission",
		Color: submissionColor,
		Fields: []embedField{
			{Name: "Title", Value: event.Title, Inline: true},
			{Name: "URL", Value: event.URL, Inline: true},
			{Name: "Category", Value: event.Category, Inline: true},
			{Name: "Description", Value: event.Description},
		},
		Timestamp: event.SubmittedAt.Format(time.RFC3339),
	})
}

// ReportFiled posts a report notification.
func (w *Webhook) ReportFiled(ctx context.Context, event *analytics.ReportFiledEvent) error {
	details := event.Details
	if details == "" {
		details = "No additional details provided"
	}

	return w.post(ctx, embed{
		Title: "Website Report",
		Color: reportColor,
		Fields: []embedField{
			{Name: "URL", Value: event.URL},
			{Name: "Reason", Value: event.Reason, Inline: true},
			{Name: "Details", Value: details},
		},
		Timestamp: event.ReportedAt.Format(time.RFC3339),
	})
}

func (w *Webhook) post(ctx context.Context, e embed) error {
	if !w.Enabled() {
		return nil
	}

	body, err := json.Marshal(webhookPayload{Embeds: []embed{e}})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
