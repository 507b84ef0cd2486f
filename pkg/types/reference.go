package types

import (
	"crypto/subtle"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"
)

// ReferenceSize is the length of a reference in bytes.
const ReferenceSize = 32

// Reference is an opaque 32-byte tag attached to a payment request so the
// resulting transaction can be located later. It may or may not be a valid
// public key. Because a reference can double as an unguessable client ID,
// comparisons run in constant time and the display form is a hash of the
// value rather than the value itself.
type Reference [ReferenceSize]byte

// ReferenceFromBase58 decodes a base58 string into a reference. The decode
// must yield exactly 32 bytes.
func ReferenceFromBase58(s string) (Reference, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return Reference{}, fmt.Errorf("%w: %v", ErrInvalidBase58, err)
	}
	if len(decoded) != ReferenceSize {
		return Reference{}, fmt.Errorf("%w, got %d", ErrInvalidKeyLength, len(decoded))
	}
	var r Reference
	copy(r[:], decoded)
	return r, nil
}

// Base58 returns the wire encoding of the reference.
func (r Reference) Base58() string {
	return base58.Encode(r[:])
}

// Equal compares two references in time independent of where they differ.
func (r Reference) Equal(other Reference) bool {
	return subtle.ConstantTimeCompare(r[:], other[:]) == 1
}

// Digest returns the hex BLAKE3-256 hash of the reference bytes.
func (r Reference) Digest() string {
	sum := blake3.Sum256(r[:])
	return fmt.Sprintf("%x", sum)
}

// String renders the digest, not the reference value, so that format verbs
// and log fields never leak a capability token.
func (r Reference) String() string {
	return "Reference(" + r.Digest() + ")"
}
