package storage

import (
	"context"
	"errors"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

//go:generate mockgen -source=storage.go -destination=mocks/storage.go -package=mocks

// ErrNotFound
var ErrNotFound = errors.New("not found")

// ErrRejected means retrying the same batch will fail again
var ErrRejected = errors.New("rejected by storage")

// Hit journal
type Storage interface {
	BatchSave(ctx context.Context, hits []models.Hit) error
	FindByLabel(ctx context.Context, label string) ([]models.Hit, error)
	HitsCount(ctx context.Context) (int, error)
	LabelsCount(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}
