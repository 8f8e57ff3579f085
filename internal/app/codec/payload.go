package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

// Payload layout: CBOR array(2) of text strings [label, target],
// core deterministic encoding. Decoding must match it byte-for-byte
// across every deployment sharing one identity.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Go strings may hold arbitrary bytes; keep them round-trippable.
		UTF8:        cbor.UTF8DecodeInvalid,
		IndefLength: cbor.IndefLengthForbidden,
		TagsMd:      cbor.TagsForbidden,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

func marshalRecord(record models.TrackingRecord) ([]byte, error) {
	data, err := encMode.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}

	return data, nil
}

// Trailing bytes after the record are rejected.
func unmarshalRecord(data []byte) (models.TrackingRecord, error) {
	var record models.TrackingRecord
	if err := decMode.Unmarshal(data, &record); err != nil {
		return models.TrackingRecord{}, err
	}

	return record, nil
}
