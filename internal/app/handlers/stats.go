package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/logger"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/storage"
)

// GetStats
func (h Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	hitsCount, err := h.store.HitsCount(r.Context())
	if err != nil {
		logger.Log.Error("failed to count hits", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_ = encoder.Encode("failed to fetch stats")
		return
	}
	labelsCount, err := h.store.LabelsCount(r.Context())
	if err != nil {
		logger.Log.Error("failed to count labels", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_ = encoder.Encode("failed to fetch stats")
		return
	}

	_ = encoder.Encode(map[string]int{"hits": hitsCount, "labels": labelsCount})
}

// Get hits of one tracking label
func (h Handlers) GetHitsByLabel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	hits, err := h.store.FindByLabel(r.Context(), chi.URLParam(r, "label"))
	if errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		logger.Log.Error("failed to fetch hits", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_ = encoder.Encode("failed to fetch hits")
		return
	}

	_ = encoder.Encode(hits)
}
