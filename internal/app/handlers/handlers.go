package handlers

import (
	"net"
	"net/http"
	"time"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/configs"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/storage"
)

const internalServerError = "Internal server error"

type Handlers struct {
	config configs.Config
	store  storage.Storage
	now    func() time.Time
}

func NewHandlers(
	config configs.Config,
	store storage.Storage) Handlers {

	return Handlers{
		config: config,
		store:  store,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to stamp hits
func (h Handlers) WithClock(now func() time.Time) Handlers {
	h.now = now
	return h
}

// Ping checks the hit journal
func (h Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		http.Error(w, "storage is unavailable", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// requesterIP expects chi middleware.RealIP to have rewritten RemoteAddr
// from forwarding headers
func requesterIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
