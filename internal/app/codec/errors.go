package codec

import (
	"errors"
	"fmt"
)

// Decode failure kinds. Match with errors.Is.
var (
	ErrMalformedToken        = errors.New("malformed token")
	ErrUnsupportedEnvelope   = errors.New("unsupported envelope")
	ErrDecryptionFailed      = errors.New("decryption failed")
	ErrIncompleteCiphertext  = errors.New("incomplete ciphertext")
	ErrDeserializationFailed = errors.New("deserialization failed")
)

// DecodeError carries the failure kind and the underlying cause.
// The cause is for logs only and must never reach a client.
type DecodeError struct {
	Kind error
	Err  error
}

func newDecodeError(kind, err error) *DecodeError {
	return &DecodeError{Kind: kind, Err: err}
}

// Error
func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

// Unwrap
func (e *DecodeError) Unwrap() error {
	return e.Kind
}
