package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/logger"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

// TokenDecoder
type TokenDecoder interface {
	Decode(token string) (models.TrackingRecord, error)
}

// HitRecorder
type HitRecorder interface {
	Enqueue(hit models.Hit)
}

// Tracker resolves a tracking token into a delivered notification
type Tracker struct {
	decoder    TokenDecoder
	dispatcher Dispatcher
	recorder   HitRecorder
	timeout    time.Duration
}

// NewTracker recorder may be nil, then hits are not journaled
func NewTracker(decoder TokenDecoder, dispatcher Dispatcher, recorder HitRecorder, timeout time.Duration) Tracker {
	return Tracker{
		decoder:    decoder,
		dispatcher: dispatcher,
		recorder:   recorder,
		timeout:    timeout,
	}
}

// Track decodes the token and notifies its target. A delivery failure
// is logged and reported through Hit.Delivered, only a decode failure
// is returned as error.
func (t Tracker) Track(ctx context.Context, token, requesterIP string, observedAt time.Time) (models.Hit, error) {
	record, err := t.decoder.Decode(token)
	if err != nil {
		return models.Hit{}, err
	}

	// The pixel fetcher may hang up before delivery finishes.
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
	defer cancel()

	delivered := true
	if err := t.dispatcher.Notify(notifyCtx, record, requesterIP, observedAt); err != nil {
		delivered = false
		logger.Log.Warn(
			"failed to deliver notification",
			zap.String("label", record.Label),
			zap.Error(err),
		)
	}

	hit := models.NewHit(record, requesterIP, observedAt, delivered)
	if t.recorder != nil {
		t.recorder.Enqueue(hit)
	}

	return hit, nil
}
