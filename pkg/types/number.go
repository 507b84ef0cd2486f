package types

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned when an amount string is not a valid
// non-negative decimal number.
var ErrInvalidNumber = errors.New("invalid number")

// Number is a non-negative base-10 amount with an optional fractional part,
// parsed without any float conversion. The original literal is kept so the
// amount can be re-serialized byte-for-byte, and the fractional digit counts
// are tracked exactly as written: "0.010" has one leading zero and two
// significant digits, trailing zeros included.
type Number struct {
	// Integral is the value before the decimal point.
	Integral uint64
	// Fractional is the digit run after the decimal point, read as an
	// integer ("0.001" -> 1). Interpreting it requires the digit counts.
	Fractional uint64
	// LeadingZeros counts the leading '0' characters of the fractional part.
	LeadingZeros int
	// SignificantDigits counts the remaining fractional characters.
	SignificantDigits int

	text string
}

// ParseNumber parses a decimal amount literal.
//
// The grammar is strict: an optional fractional part separated by a single
// '.', both sides non-empty runs of ASCII digits that fit in a uint64. No
// sign, no exponent, no separators, no surrounding whitespace.
func ParseNumber(s string) (Number, error) {
	n := Number{text: s}

	if !strings.Contains(s, ".") {
		integral, err := parseDigits(s)
		if err != nil {
			return Number{}, err
		}
		n.Integral = integral
		return n, nil
	}

	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return Number{}, ErrInvalidNumber
	}

	integral, err := parseDigits(parts[0])
	if err != nil {
		return Number{}, err
	}
	fractional, err := parseDigits(parts[1])
	if err != nil {
		return Number{}, err
	}

	zeros := 0
	for zeros < len(parts[1]) && parts[1][zeros] == '0' {
		zeros++
	}

	n.Integral = integral
	n.Fractional = fractional
	n.LeadingZeros = zeros
	n.SignificantDigits = len(parts[1]) - zeros
	return n, nil
}

// parseDigits parses a non-empty run of decimal digits into a uint64.
func parseDigits(s string) (uint64, error) {
	if s == "" {
		return 0, ErrInvalidNumber
	}
	// ParseUint accepts a leading '+', which the grammar forbids.
	if s[0] == '+' {
		return 0, ErrInvalidNumber
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// TotalFractionalDigits returns the full width of the fractional part:
// leading zeros plus significant digits. This is the count validated
// against a decimal-precision ceiling.
func (n Number) TotalFractionalDigits() int {
	return n.LeadingZeros + n.SignificantDigits
}

// String returns the original literal the number was parsed from.
func (n Number) String() string {
	return n.text
}
