package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/logger"
)

// Dumper
type Dumper interface {
	Dump() error
}

// StorageDumper
type StorageDumper struct {
	storage  Dumper
	interval time.Duration
}

// NewStorageDumper
func NewStorageDumper(storage Dumper, interval time.Duration) StorageDumper {
	return StorageDumper{
		storage:  storage,
		interval: interval,
	}
}

// Run dumps storage every interval and once more when ctx is done
func (d StorageDumper) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.dump()
		case <-ctx.Done():
			d.dump()
			return
		}
	}
}

func (d StorageDumper) dump() {
	if err := d.storage.Dump(); err != nil {
		logger.Log.Error("failed to dump storage", zap.Error(err))
	}
}
