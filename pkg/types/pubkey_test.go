package types

import (
	"encoding/json"
	"errors"
	"testing"
)

const (
	// On-curve: the SPL token program address.
	onCurveKey = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	// Off-curve: a program-derived address.
	offCurveKey = "HqAi1JjEEVS6QRvNe7gC4z8pYTuKbWkdZqCuuDpZxxQW"
)

func TestPublicKeyFromBase58(t *testing.T) {
	pk, err := PublicKeyFromBase58(onCurveKey)
	if err != nil {
		t.Fatalf("PublicKeyFromBase58() error: %v", err)
	}
	if pk.Base58() != onCurveKey {
		t.Errorf("Base58() = %q, want %q", pk.Base58(), onCurveKey)
	}
	if pk.String() != onCurveKey {
		t.Errorf("String() = %q, want %q", pk.String(), onCurveKey)
	}
}

func TestPublicKeyFromBase58_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"bad alphabet", "0OIl", ErrInvalidBase58},
		{"empty", "", ErrInvalidBase58},
		{"too short", "abc", ErrInvalidKeyLength},
		{"too long", "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DAA", ErrInvalidKeyLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PublicKeyFromBase58(tt.text)
			if !errors.Is(err, tt.want) {
				t.Errorf("PublicKeyFromBase58(%q) error = %v, want %v", tt.text, err, tt.want)
			}
		})
	}
}

func TestPublicKey_IsOnCurve(t *testing.T) {
	onCurve, err := PublicKeyFromBase58(onCurveKey)
	if err != nil {
		t.Fatalf("decode on-curve key: %v", err)
	}
	if !onCurve.IsOnCurve() {
		t.Errorf("IsOnCurve(%s) = false, want true", onCurveKey)
	}

	offCurve, err := PublicKeyFromBase58(offCurveKey)
	if err != nil {
		t.Fatalf("decode off-curve key: %v", err)
	}
	if offCurve.IsOnCurve() {
		t.Errorf("IsOnCurve(%s) = true, want false", offCurveKey)
	}
}

func TestPublicKey_IsZero(t *testing.T) {
	var zero PublicKey
	if !zero.IsZero() {
		t.Error("zero-value PublicKey should be zero")
	}
	nonZero := PublicKey{0x01}
	if nonZero.IsZero() {
		t.Error("non-zero PublicKey should not be zero")
	}
}

func TestPublicKey_JSON(t *testing.T) {
	pk, err := PublicKeyFromBase58(onCurveKey)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	data, err := json.Marshal(pk)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"`+onCurveKey+`"` {
		t.Errorf("Marshal() = %s, want %q", data, onCurveKey)
	}

	var decoded PublicKey
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if decoded != pk {
		t.Errorf("roundtrip mismatch: got %s, want %s", decoded, pk)
	}
}

func TestPublicKey_Bytes(t *testing.T) {
	pk := PublicKey{0xab}
	b := pk.Bytes()
	if len(b) != PublicKeySize {
		t.Fatalf("Bytes() length = %d, want %d", len(b), PublicKeySize)
	}
	b[0] = 0xff
	if pk[0] != 0xab {
		t.Error("Bytes() must return a copy")
	}
}
