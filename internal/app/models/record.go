package models

// Tracking link payload. Only ever travels inside a token.
type TrackingRecord struct {
	_      struct{} `cbor:",toarray"`
	Label  string   `json:"name"`
	Target string   `json:"webhook"`
}

// NewTrackingRecord
func NewTrackingRecord(label, target string) TrackingRecord {
	return TrackingRecord{Label: label, Target: target}
}
