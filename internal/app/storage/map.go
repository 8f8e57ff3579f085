package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

// Inmemory storage
type MapStorage struct {
	fs           *FileStorage
	indexOnID    map[uuid.UUID]int
	indexOnLabel map[string]map[int]struct{}
	hits         []models.Hit
	mu           sync.RWMutex
}

// New inmemory storage
func NewMapStorage(fs *FileStorage) *MapStorage {
	return &MapStorage{
		hits:         make([]models.Hit, 0),
		indexOnID:    make(map[uuid.UUID]int),
		indexOnLabel: make(map[string]map[int]struct{}),
		fs:           fs,
	}
}

// Batch save hits. Hits already present are skipped
func (ms *MapStorage) BatchSave(ctx context.Context, hits []models.Hit) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, h := range hits {
		ms.save(h)
	}

	return nil
}

func (ms *MapStorage) save(h models.Hit) {
	if _, ok := ms.indexOnID[h.ID]; ok {
		return
	}

	ms.hits = append(ms.hits, h)
	idx := len(ms.hits) - 1
	ms.indexOnID[h.ID] = idx
	if _, ok := ms.indexOnLabel[h.Label]; !ok {
		ms.indexOnLabel[h.Label] = make(map[int]struct{})
	}
	ms.indexOnLabel[h.Label][idx] = struct{}{}
}

// Find label hits, oldest first
func (ms *MapStorage) FindByLabel(ctx context.Context, label string) ([]models.Hit, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	labelHitsIdx, ok := ms.indexOnLabel[label]
	if !ok {
		return nil, ErrNotFound
	}

	result := make([]models.Hit, 0, len(labelHitsIdx))
	for idx := range labelHitsIdx {
		result = append(result, ms.hits[idx])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ObservedAt.Before(result[j].ObservedAt)
	})

	return result, nil
}

// Hits count
func (ms *MapStorage) HitsCount(ctx context.Context) (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return len(ms.hits), nil
}

// Distinct labels count
func (ms *MapStorage) LabelsCount(ctx context.Context) (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return len(ms.indexOnLabel), nil
}

// Ping
func (ms *MapStorage) Ping(ctx context.Context) error {
	return nil
}

// Dump inmemory storage to file
func (ms *MapStorage) Dump() error {
	if ms.fs == nil {
		return nil
	}

	ms.mu.RLock()
	snapshot := make([]models.Hit, len(ms.hits))
	copy(snapshot, ms.hits)
	ms.mu.RUnlock()

	return ms.fs.Dump(snapshot)
}

// Restore inmemory storage from file snapshot
func (ms *MapStorage) Restore(hits []models.Hit) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, h := range hits {
		ms.save(h)
	}
}
