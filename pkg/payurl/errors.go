package payurl

import "errors"

// Scheme and shape errors.
var (
	// ErrInvalidScheme is returned when the URL does not start with "solana:".
	ErrInvalidScheme = errors.New("missing solana: scheme")
	// ErrMissingRecipient is returned when the path segment is empty.
	ErrMissingRecipient = errors.New("missing recipient")
	// ErrTooManyParts is returned when the URL splits into more than a
	// path segment and one query block.
	ErrTooManyParts = errors.New("too many url parts")
	// ErrInvalidQueryParam is returned for a query token that is not a
	// single key=value pair.
	ErrInvalidQueryParam = errors.New("invalid query parameter")
	// ErrUnknownQueryParam is returned for a key outside the recognized
	// set. Unknown fields are rejected, never silently ignored.
	ErrUnknownQueryParam = errors.New("unknown query parameter")
)

// Field semantic errors.
var (
	// ErrDecimalsExceedNative is returned when an amount with no spl-token
	// carries more fractional digits than native SOL supports (9).
	ErrDecimalsExceedNative = errors.New("amount decimals exceed native SOL precision")
	// ErrDecimalsExceedMint is returned when an amount carries more
	// fractional digits than the mint is configured with.
	ErrDecimalsExceedMint = errors.New("amount decimals exceed mint configuration")
	// ErrTooManyReferences is returned when references would exceed the
	// per-transaction account budget.
	ErrTooManyReferences = errors.New("too many references")
	// ErrMintLookupRequired is returned when a URL carries spl-token but
	// no decimals lookup was supplied to validate it.
	ErrMintLookupRequired = errors.New("spl-token present but no decimals lookup supplied")
)

// Duplicate-field errors. Each single-valued field keeps its own sentinel
// so callers can tell exactly which field was repeated.
var (
	ErrAmountExists   = errors.New("amount already exists")
	ErrSplTokenExists = errors.New("spl-token already exists")
	ErrLabelExists    = errors.New("label already exists")
	ErrMessageExists  = errors.New("message already exists")
	ErrMemoExists     = errors.New("memo already exists")
)

// Identifier and text errors.
var (
	// ErrRecipientOffCurve is returned by the curve-enforcing constructor
	// when the recipient does not lie on the Ed25519 curve. Use NewRequest
	// to allow program-derived recipients.
	ErrRecipientOffCurve = errors.New("recipient public key must lie on the ed25519 curve")
	// ErrInvalidURLEncoding is returned for malformed percent-encoding or
	// a decode that is not valid UTF-8.
	ErrInvalidURLEncoding = errors.New("invalid url-encoded string")
)
