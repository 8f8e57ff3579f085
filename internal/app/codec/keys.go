package codec

import (
	"errors"
	"fmt"
	"strings"

	"filippo.io/age"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

// ErrMissingKey is returned by ParseKeys for empty input.
var ErrMissingKey = errors.New("age identity is not configured")

// Keys is the deployment key pair. It is immutable after construction
// and safe to share between goroutines.
type Keys struct {
	Identity  *age.X25519Identity
	Recipient *age.X25519Recipient
}

// ParseKeys parses an AGE-SECRET-KEY-1... identity and derives its recipient.
func ParseKeys(secret string) (Keys, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return Keys{}, ErrMissingKey
	}

	identity, err := age.ParseX25519Identity(secret)
	if err != nil {
		return Keys{}, fmt.Errorf("invalid age identity: %w", err)
	}

	return Keys{Identity: identity, Recipient: identity.Recipient()}, nil
}

// GenerateKeys generates a fresh key pair.
func GenerateKeys() (Keys, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return Keys{}, fmt.Errorf("failed to generate age identity: %w", err)
	}

	return Keys{Identity: identity, Recipient: identity.Recipient()}, nil
}

// Encode
func (k Keys) Encode(record models.TrackingRecord) (string, error) {
	return Encode(record, k.Recipient)
}

// Decode
func (k Keys) Decode(token string) (models.TrackingRecord, error) {
	return Decode(token, k.Identity)
}
