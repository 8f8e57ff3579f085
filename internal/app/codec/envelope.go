package codec

import (
	"fmt"

	"filippo.io/age"
)

const scryptStanzaType = "scrypt"

// recipientsOnly sees the header stanzas before the wrapped identity and
// refuses passphrase envelopes instead of reporting them as a key mismatch.
type recipientsOnly struct {
	identity age.Identity
}

// Unwrap
func (r recipientsOnly) Unwrap(stanzas []*age.Stanza) ([]byte, error) {
	for _, stanza := range stanzas {
		if stanza.Type == scryptStanzaType {
			return nil, fmt.Errorf("%w: passphrase-encrypted", ErrUnsupportedEnvelope)
		}
	}

	return r.identity.Unwrap(stanzas)
}
