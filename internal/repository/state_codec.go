package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/apperrors"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
)

// StateCodec serializes persisted convergence state. Records are JSON; when an
// encryption key is configured the JSON is wrapped in a fernet token so the
// value is authenticated and unreadable at rest.
type StateCodec struct {
	key *fernet.Key
}

// NewStateCodec creates a codec. An empty encodedKey disables encryption.
// A non-empty key must be a base64-encoded 32-byte fernet key.
func NewStateCodec(encodedKey string) (*StateCodec, error) {
	if encodedKey == "" {
		return &StateCodec{}, nil
	}
	k, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid state encryption key: %w", err)
	}
	return &StateCodec{key: k}, nil
}

// Encrypted reports whether records are fernet-encrypted.
func (c *StateCodec) Encrypted() bool {
	return c.key != nil
}

// Encode marshals a record for storage.
func (c *StateCodec) Encode(state model.PersistedState) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	if c.key == nil {
		return raw, nil
	}

	tok, err := fernet.EncryptAndSign(raw, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt state: %w", err)
	}
	return tok, nil
}

// Decode restores a record written by Encode.
func (c *StateCodec) Decode(raw []byte) (*model.PersistedState, error) {
	if c.key != nil {
		// negative ttl: persisted state never expires
		msg := fernet.VerifyAndDecrypt(raw, -1, []*fernet.Key{c.key})
		if msg == nil {
			return nil, fmt.Errorf("%w: token verification failed", apperrors.ErrCorruptState)
		}
		raw = msg
	}

	var state model.PersistedState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCorruptState, err)
	}
	if state.Pi == "" || state.IterationCount < 0 {
		return nil, fmt.Errorf("%w: pi=%q iterationCount=%d", apperrors.ErrCorruptState, state.Pi, state.IterationCount)
	}

	return &state, nil
}
