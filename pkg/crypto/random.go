// Package crypto provides the entropy primitives for solpay.
package crypto

import (
	"crypto/rand"
	"fmt"

	"github.com/solpaykit/solpay/pkg/types"
)

// RandomBytes is a fixed 32-byte scratch buffer filled from the operating
// system CSPRNG. The buffer is wiped by Zeroize; callers that copy the value
// out own the copy's lifetime.
type RandomBytes struct {
	buf [32]byte
}

// NewRandomBytes fills a fresh buffer from crypto/rand.
func NewRandomBytes() (*RandomBytes, error) {
	r := &RandomBytes{}
	if _, err := rand.Read(r.buf[:]); err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}
	return r, nil
}

// Bytes exposes the buffer. The returned array is a copy.
func (r *RandomBytes) Bytes() [32]byte {
	return r.buf
}

// Zeroize wipes the buffer and verifies the wipe. A wipe that cannot be
// verified panics: silently keeping secret bytes alive is worse than
// crashing.
func (r *RandomBytes) Zeroize() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	if r.buf != ([32]byte{}) {
		panic("crypto: random buffer could not be zeroized")
	}
}

// String never reveals the buffer contents.
func (r *RandomBytes) String() string {
	return "RandomBytes(REDACTED)"
}

// NewReference generates a fresh, unguessable reference. The scratch buffer
// is wiped on every exit path, including entropy failure.
func NewReference() (types.Reference, error) {
	random, err := NewRandomBytes()
	if err != nil {
		return types.Reference{}, err
	}
	defer random.Zeroize()

	return types.Reference(random.Bytes()), nil
}
