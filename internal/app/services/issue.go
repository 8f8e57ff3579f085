package services

import (
	"fmt"
	"net/url"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

// TokenEncoder
type TokenEncoder interface {
	Encode(record models.TrackingRecord) (string, error)
}

// LinkIssuer turns a label and a notification target into a tracking link
type LinkIssuer struct {
	encoder TokenEncoder
	base    *url.URL
}

// NewLinkIssuer
func NewLinkIssuer(encoder TokenEncoder, base *url.URL) LinkIssuer {
	return LinkIssuer{encoder: encoder, base: base}
}

// Issue returns the token resolved against the base URL, so
// "https://host/pt/" gives "https://host/pt/<token>"
func (i LinkIssuer) Issue(label, target string) (string, error) {
	token, err := i.encoder.Encode(models.NewTrackingRecord(label, target))
	if err != nil {
		return "", fmt.Errorf("failed to encode tracking record: %w", err)
	}

	return i.base.ResolveReference(&url.URL{Path: token}).String(), nil
}
