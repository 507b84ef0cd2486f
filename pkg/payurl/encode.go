package payurl

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// decodeText percent-decodes a label/message/memo value and validates that
// the result is well-formed UTF-8.
func decodeText(s string) (string, error) {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURLEncoding, err)
	}
	if !utf8.ValidString(decoded) {
		return "", fmt.Errorf("%w: not valid utf-8", ErrInvalidURLEncoding)
	}
	return decoded, nil
}

// encodeText percent-encodes every byte that is not ASCII alphanumeric.
// The policy is deliberately maximal rather than minimal-RFC3986: it makes
// the serialized form deterministic, so a parsed URL rebuilds to the exact
// input string.
func encodeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAlphanumeric(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isAlphanumeric(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
