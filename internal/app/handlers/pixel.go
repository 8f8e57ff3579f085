package handlers

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/codec"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/logger"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

//go:embed static/pixel.png
var pixel []byte

// HitTracker
type HitTracker interface {
	Track(ctx context.Context, token, requesterIP string, observedAt time.Time) (models.Hit, error)
}

// TrackPixel notifies the link target and responds with a transparent 1x1 PNG
func (h Handlers) TrackPixel(tracker HitTracker) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		hit, err := tracker.Track(r.Context(), token, requesterIP(r), h.now())
		if err != nil {
			logger.Log.Info(
				"failed to decode tracking token",
				zap.String("kind", decodeErrorKind(err)),
				zap.Int("token_length", len(token)),
			)
			http.Error(w, internalServerError, http.StatusInternalServerError)
			return
		}

		logger.Log.Info(
			"tracking link read",
			zap.String("label", hit.Label),
			zap.String("ip", hit.IP),
			zap.Bool("delivered", hit.Delivered),
		)

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(pixel)))
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pixel); err != nil {
			logger.Log.Debug("failed to write pixel", zap.Error(err))
		}
	}
}

func decodeErrorKind(err error) string {
	var decodeErr *codec.DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.Kind.Error()
	}

	return "unknown"
}
