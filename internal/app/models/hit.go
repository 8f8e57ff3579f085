package models

import (
	"time"

	"github.com/google/uuid"
)

// Journal entry for one decoded tracking link access.
// Target is never stored: webhook URLs carry credentials.
type Hit struct {
	ObservedAt time.Time `json:"observed_at"`
	Label      string    `json:"label"`
	IP         string    `json:"ip"`
	ID         uuid.UUID `json:"id"`
	Delivered  bool      `json:"delivered"`
}

// NewHit
func NewHit(record TrackingRecord, ip string, observedAt time.Time, delivered bool) Hit {
	return Hit{
		ID:         uuid.New(),
		Label:      record.Label,
		IP:         ip,
		ObservedAt: observedAt.UTC(),
		Delivered:  delivered,
	}
}
