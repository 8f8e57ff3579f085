package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

// ErrInvalidTarget
var ErrInvalidTarget = errors.New("invalid notification target")

// DeliveryError is returned when the target rejects the notification
type DeliveryError struct {
	StatusCode int
}

// Error
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("notification rejected with status %d", e.StatusCode)
}

// Dispatcher delivers a decoded tracking record to its target
type Dispatcher interface {
	Notify(ctx context.Context, record models.TrackingRecord, requesterIP string, observedAt time.Time) error
}

const (
	embedFieldLimit = 1024
	responseLimit   = 64 << 10
)

type webhookMessage struct {
	AllowedMentions webhookAllowedMentions `json:"allowed_mentions"`
	Embeds          []webhookEmbed         `json:"embeds"`
}

type webhookAllowedMentions struct {
	Parse []string `json:"parse"`
}

type webhookEmbed struct {
	Title  string              `json:"title"`
	Fields []webhookEmbedField `json:"fields"`
}

type webhookEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// WebhookDispatcher executes Discord-compatible webhooks
type WebhookDispatcher struct {
	client *http.Client
}

// NewWebhookDispatcher
func NewWebhookDispatcher(client *http.Client) WebhookDispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	return WebhookDispatcher{client: client}
}

// Notify makes a single delivery attempt
func (d WebhookDispatcher) Notify(
	ctx context.Context,
	record models.TrackingRecord,
	requesterIP string,
	observedAt time.Time) error {

	endpoint, err := parseTarget(record.Target)
	if err != nil {
		return err
	}

	body, err := json.Marshal(newWebhookMessage(record, requesterIP, observedAt))
	if err != nil {
		return fmt.Errorf("failed to build notification: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := d.client.Do(request)
	if err != nil {
		// url.Error repeats the webhook URL, which embeds its token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, responseLimit))

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return &DeliveryError{StatusCode: response.StatusCode}
	}

	return nil
}

func parseTarget(target string) (*url.URL, error) {
	endpoint, err := url.Parse(target)
	if err != nil {
		return nil, ErrInvalidTarget
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" || endpoint.Host == "" {
		return nil, ErrInvalidTarget
	}

	query := endpoint.Query()
	query.Set("wait", "true")
	endpoint.RawQuery = query.Encode()

	return endpoint, nil
}

func newWebhookMessage(record models.TrackingRecord, requesterIP string, observedAt time.Time) webhookMessage {
	return webhookMessage{
		AllowedMentions: webhookAllowedMentions{Parse: []string{}},
		Embeds: []webhookEmbed{
			{
				Title: fmt.Sprintf("Tracking read @ %s (UTC)",
					observedAt.UTC().Format("2006-01-02 15:04:05.999999999")),
				Fields: []webhookEmbedField{
					{Name: "Name", Value: embedValue(record.Label)},
					{Name: "IP", Value: embedValue(requesterIP)},
				},
			},
		},
	}
}

// Discord rejects empty or oversized field values.
func embedValue(s string) string {
	if s == "" {
		return "-"
	}
	if utf8.RuneCountInString(s) <= embedFieldLimit {
		return s
	}

	runes := []rune(s)
	return string(runes[:embedFieldLimit-1]) + "…"
}
