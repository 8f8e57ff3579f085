package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/services"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/storage"
)

func TestStorageDumperDumpsOnShutdown(t *testing.T) {
	dumper := new(dumperMock)
	dumper.On("Dump").Return(errors.New("disk full")).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	services.NewStorageDumper(dumper, time.Hour).Run(ctx)

	dumper.AssertNumberOfCalls(t, "Dump", 1)
}

func TestStorageDumperWritesFile(t *testing.T) {
	path := t.TempDir() + "/hits.json"
	ms := storage.NewMapStorage(storage.NewFileStorage(path))
	hit := models.NewHit(models.NewTrackingRecord("promo1", "x"), "::1", observedAt, true)
	require.NoError(t, ms.BatchSave(context.Background(), []models.Hit{hit}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	services.NewStorageDumper(ms, 10*time.Millisecond).Run(ctx)

	hits, err := storage.NewFileStorage(path).Snapshot()
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, hit.ID, hits[0].ID)
	assert.Equal(t, "promo1", hits[0].Label)
}
