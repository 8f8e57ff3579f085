// Package codec turns tracking records into URL-safe tokens and back.
//
// A token is base64url (no padding) over an age envelope encrypted to a
// single X25519 recipient, whose payload is the CBOR-encoded record.
// Decoding is all-or-nothing.
package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"filippo.io/age"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

var tokenEncoding = base64.RawURLEncoding.Strict()

// Encode encrypts record to recipient and returns the token.
// Two calls with the same record yield different tokens.
func Encode(record models.TrackingRecord, recipient *age.X25519Recipient) (string, error) {
	if recipient == nil {
		return "", errors.New("recipient is not configured")
	}

	plaintext, err := marshalRecord(record)
	if err != nil {
		return "", err
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipient)
	if err != nil {
		return "", fmt.Errorf("failed to create age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return "", fmt.Errorf("failed to write payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize envelope: %w", err)
	}

	return tokenEncoding.EncodeToString(ciphertext.Bytes()), nil
}

// Decode recovers the record from token using identity as the only candidate key.
func Decode(token string, identity *age.X25519Identity) (models.TrackingRecord, error) {
	if identity == nil {
		return models.TrackingRecord{}, errors.New("identity is not configured")
	}

	raw, err := decodeToken(token)
	if err != nil {
		return models.TrackingRecord{}, newDecodeError(ErrMalformedToken, err)
	}

	reader, err := age.Decrypt(bytes.NewReader(raw), recipientsOnly{identity: identity})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedEnvelope):
			return models.TrackingRecord{}, newDecodeError(ErrUnsupportedEnvelope, err)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return models.TrackingRecord{}, newDecodeError(ErrIncompleteCiphertext, err)
		}
		return models.TrackingRecord{}, newDecodeError(ErrDecryptionFailed, err)
	}

	plaintext, err := io.ReadAll(reader)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return models.TrackingRecord{}, newDecodeError(ErrIncompleteCiphertext, err)
		}
		return models.TrackingRecord{}, newDecodeError(ErrDecryptionFailed, err)
	}

	record, err := unmarshalRecord(plaintext)
	if err != nil {
		return models.TrackingRecord{}, newDecodeError(ErrDeserializationFailed, err)
	}

	return record, nil
}

// IsTokenAlphabet reports whether s only holds base64url characters.
func IsTokenAlphabet(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isTokenByte(s[i]) {
			return false
		}
	}
	return true
}

func isTokenByte(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '_'
}

// encoding/base64 skips '\r' and '\n', so the alphabet is checked first.
func decodeToken(token string) ([]byte, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	for i := 0; i < len(token); i++ {
		if !isTokenByte(token[i]) {
			return nil, fmt.Errorf("illegal character %q at offset %d", token[i], i)
		}
	}

	raw, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}

	return raw, nil
}
