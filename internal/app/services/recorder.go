package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/logger"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/storage"
)

const (
	recorderQueueSize    = 1024
	recorderFlushTimeout = 5 * time.Second
)

// BatchSaver
type BatchSaver interface {
	BatchSave(ctx context.Context, hits []models.Hit) error
}

// DeferredRecorder collects hits and saves them in batches
type DeferredRecorder struct {
	batchSaver BatchSaver
	interval   time.Duration
	ch         chan models.Hit
}

// NewDeferredRecorder
func NewDeferredRecorder(batchSaver BatchSaver, interval time.Duration) *DeferredRecorder {
	return &DeferredRecorder{
		batchSaver: batchSaver,
		interval:   interval,
		ch:         make(chan models.Hit, recorderQueueSize),
	}
}

// Enqueue never blocks, a hit is dropped when the queue is full
func (d *DeferredRecorder) Enqueue(hit models.Hit) {
	select {
	case d.ch <- hit:
	default:
		logger.Log.Warn("hit queue is full, dropping hit", zap.String("label", hit.Label))
	}
}

// Run saves collected hits every interval until ctx is done,
// then saves what is left and returns
func (d *DeferredRecorder) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	var hits []models.Hit

	for {
		select {
		case hit := <-d.ch:
			hits = append(hits, hit)
		case <-ticker.C:
			hits = d.flush(ctx, hits)
		case <-ctx.Done():
			hits = append(hits, d.drain()...)
			flushCtx, cancel := context.WithTimeout(context.Background(), recorderFlushTimeout)
			defer cancel()
			if rest := d.flush(flushCtx, hits); len(rest) > 0 {
				logger.Log.Error("hits lost on shutdown", zap.Int("count", len(rest)))
			}
			return
		}
	}
}

func (d *DeferredRecorder) drain() []models.Hit {
	var hits []models.Hit
	for {
		select {
		case hit := <-d.ch:
			hits = append(hits, hit)
		default:
			return hits
		}
	}
}

// flush returns hits that still have to be saved
func (d *DeferredRecorder) flush(ctx context.Context, hits []models.Hit) []models.Hit {
	if len(hits) == 0 {
		return hits
	}

	err := d.batchSaver.BatchSave(ctx, hits)
	if errors.Is(err, storage.ErrRejected) {
		logger.Log.Error("batch rejected, dropping hits", zap.Int("count", len(hits)), zap.Error(err))
		return nil
	}
	if err != nil {
		logger.Log.Info("run batch save error", zap.Error(err))
		return hits
	}

	return nil
}
