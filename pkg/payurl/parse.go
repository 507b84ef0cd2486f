// Package payurl parses and builds Solana Pay payment-request URLs.
//
// The wire form is:
//
//	solana:<recipient>
//	    ?amount=<amount>
//	    &spl-token=<mint>
//	    &reference=<reference>
//	    &label=<label>
//	    &message=<message>
//	    &memo=<memo>
//
// The recipient path segment is required; every query field is optional.
// Parsing is strict: unknown keys, duplicate single-valued keys, malformed
// values, and out-of-precision amounts are all typed errors, never panics
// and never silently dropped data. A URL that parses successfully rebuilds
// to the identical string via PaymentRequest.URL.
package payurl

import (
	"context"
	"fmt"
	"strings"

	"github.com/solpaykit/solpay/pkg/types"
)

// DecimalsFunc resolves the configured decimal precision of a token mint.
// The parser calls it at most once per parse, when an spl-token field is
// present. It must be a deterministic mapping for the duration of that one
// call; timeouts, retries, and caching belong to the implementation.
type DecimalsFunc func(ctx context.Context, mint types.PublicKey) (uint8, error)

// Parse decodes a payment-request URL into a validated PaymentRequest.
//
// lookup supplies mint decimals when the URL carries an spl-token field. A
// URL with spl-token and a nil lookup fails with ErrMintLookupRequired: the
// amount precision cannot be validated, so the request must not be acted on.
func Parse(ctx context.Context, raw string, lookup DecimalsFunc) (*PaymentRequest, error) {
	if !strings.HasPrefix(raw, Scheme) {
		return nil, ErrInvalidScheme
	}
	rest := raw[len(Scheme):]

	// Split path from query. When no '?' is present the first '&' marks
	// the boundary instead, so "solana:<recipient>&label=x" (the shape the
	// builder emits for amount-less requests) still parses.
	var path, query string
	var hasQuery bool
	if strings.Contains(rest, "?") {
		parts := strings.Split(rest, "?")
		if len(parts) > 2 {
			return nil, ErrTooManyParts
		}
		path, query, hasQuery = parts[0], parts[1], true
	} else {
		parts := strings.Split(rest, "&")
		if len(parts) > 2 {
			return nil, ErrTooManyParts
		}
		path = parts[0]
		if len(parts) == 2 {
			query, hasQuery = parts[1], true
		}
	}

	if path == "" {
		return nil, ErrMissingRecipient
	}
	recipient, err := types.PublicKeyFromBase58(path)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}

	req := NewRequest(recipient)
	if hasQuery {
		for _, field := range strings.Split(query, "&") {
			if err := req.scanField(field); err != nil {
				return nil, err
			}
		}
	}

	// Precision validation runs after the scan so its outcome does not
	// depend on whether amount or spl-token appeared first.
	if req.splToken != nil {
		if lookup == nil {
			return nil, ErrMintLookupRequired
		}
		decimals, err := lookup(ctx, *req.splToken)
		if err != nil {
			return nil, fmt.Errorf("mint decimals lookup: %w", err)
		}
		if req.amount != nil && req.amount.TotalFractionalDigits() > int(decimals) {
			return nil, ErrDecimalsExceedMint
		}
	} else if req.amount != nil && req.amount.TotalFractionalDigits() > NativeDecimals {
		return nil, ErrDecimalsExceedNative
	}

	return req, nil
}

// scanField decodes one key=value query token into the request. Amount
// precision is not checked here; Parse does that once all fields are known.
func (r *PaymentRequest) scanField(field string) error {
	kv := strings.Split(field, "=")
	if len(kv) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidQueryParam, field)
	}
	key, value := kv[0], kv[1]

	switch key {
	case "amount":
		if r.amount != nil {
			return ErrAmountExists
		}
		n, err := types.ParseNumber(value)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		r.amount = &n

	case "spl-token":
		if r.splToken != nil {
			return ErrSplTokenExists
		}
		mint, err := types.PublicKeyFromBase58(value)
		if err != nil {
			return fmt.Errorf("spl-token: %w", err)
		}
		r.splToken = &mint

	case "reference":
		if len(r.references)+1 > MaxReferences {
			return ErrTooManyReferences
		}
		ref, err := types.ReferenceFromBase58(value)
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		r.references = append(r.references, ref)

	case "label":
		if r.label != nil {
			return ErrLabelExists
		}
		label, err := decodeText(value)
		if err != nil {
			return fmt.Errorf("label: %w", err)
		}
		r.label = &label

	case "message":
		if r.message != nil {
			return ErrMessageExists
		}
		message, err := decodeText(value)
		if err != nil {
			return fmt.Errorf("message: %w", err)
		}
		r.message = &message

	case "memo":
		if r.memo != nil {
			return ErrMemoExists
		}
		memo, err := decodeText(value)
		if err != nil {
			return fmt.Errorf("memo: %w", err)
		}
		r.memo = &memo

	default:
		return fmt.Errorf("%w: %q", ErrUnknownQueryParam, key)
	}
	return nil
}
