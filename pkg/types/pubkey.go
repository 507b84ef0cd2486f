package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKeySize is the length of a public key in bytes.
const PublicKeySize = 32

// Base58 decode errors.
var (
	// ErrInvalidBase58 is returned when a string contains characters
	// outside the base58 alphabet.
	ErrInvalidBase58 = errors.New("invalid base58 string")
	// ErrInvalidKeyLength is returned when a base58 string decodes to a
	// byte length other than 32. Shorter or longer values are rejected,
	// never padded or truncated.
	ErrInvalidKeyLength = errors.New("decoded key must be 32 bytes")
)

// PublicKey is a 32-byte account identifier: a recipient address or an SPL
// token mint. It is a plain value, copied freely.
type PublicKey [PublicKeySize]byte

// PublicKeyFromBase58 decodes a base58 string into a public key.
func PublicKeyFromBase58(s string) (PublicKey, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidBase58, err)
	}
	if len(decoded) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("%w, got %d", ErrInvalidKeyLength, len(decoded))
	}
	var pk PublicKey
	copy(pk[:], decoded)
	return pk, nil
}

// Base58 returns the canonical base58 encoding of the key.
func (pk PublicKey) Base58() string {
	return base58.Encode(pk[:])
}

// String returns the base58 encoding.
func (pk PublicKey) String() string {
	return pk.Base58()
}

// Bytes returns a copy of the key as a byte slice.
func (pk PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	copy(b, pk[:])
	return b
}

// IsZero returns true if the key is all zeros.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// IsOnCurve reports whether the key decompresses to a valid Ed25519 point.
// Program-derived addresses are deliberately off the curve, so a false
// result is a normal outcome, not a decoding failure.
func (pk PublicKey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}

// MarshalJSON encodes the key as a base58 string.
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.Base58())
}

// UnmarshalJSON decodes a base58 string into the key.
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*pk = PublicKey{}
		return nil
	}
	parsed, err := PublicKeyFromBase58(s)
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}
