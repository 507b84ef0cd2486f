package payurl

import (
	"encoding/json"
	"strings"

	"github.com/solpaykit/solpay/pkg/types"
)

// Scheme is the URL scheme prefix of a Solana Pay URL.
const Scheme = "solana:"

// NativeDecimals is the fractional precision of native SOL. Amounts with no
// spl-token field may not carry more fractional digits than this.
const NativeDecimals = 9

// MaxReferences is the maximum number of reference accounts a transaction
// can carry besides the payer and recipient.
const MaxReferences = 254

// PaymentRequest is the typed, validated form of one payment-request URL.
//
// A request is produced either by Parse or built incrementally starting from
// NewRequest / NewRequestOnCurve. Every single-valued field is one-shot:
// first write wins, a second write is an error. That is the same policy the
// parser applies to duplicate query keys, so parse and build never disagree
// about what a valid request looks like.
type PaymentRequest struct {
	recipient  types.PublicKey
	amount     *types.Number
	splToken   *types.PublicKey
	references []types.Reference
	label      *string
	message    *string
	memo       *string
}

// NewRequest starts a request for any 32-byte recipient, on or off the
// curve. Off-curve recipients are program-derived addresses.
func NewRequest(recipient types.PublicKey) *PaymentRequest {
	return &PaymentRequest{recipient: recipient}
}

// NewRequestOnCurve starts a request and requires the recipient to be a
// spendable (on-curve) address. It fails with ErrRecipientOffCurve
// otherwise, preventing funds from being directed at a program-derived
// address without the caller noticing.
func NewRequestOnCurve(recipient types.PublicKey) (*PaymentRequest, error) {
	if !recipient.IsOnCurve() {
		return nil, ErrRecipientOffCurve
	}
	return NewRequest(recipient), nil
}

// Recipient returns the recipient public key.
func (r *PaymentRequest) Recipient() types.PublicKey {
	return r.recipient
}

// Amount returns the parsed amount, if one is set.
func (r *PaymentRequest) Amount() (types.Number, bool) {
	if r.amount == nil {
		return types.Number{}, false
	}
	return *r.amount, true
}

// SplToken returns the token mint, if one is set.
func (r *PaymentRequest) SplToken() (types.PublicKey, bool) {
	if r.splToken == nil {
		return types.PublicKey{}, false
	}
	return *r.splToken, true
}

// References returns a copy of the reference sequence in stored order.
func (r *PaymentRequest) References() []types.Reference {
	if len(r.references) == 0 {
		return nil
	}
	out := make([]types.Reference, len(r.references))
	copy(out, r.references)
	return out
}

// Label returns the decoded label, if one is set.
func (r *PaymentRequest) Label() (string, bool) {
	if r.label == nil {
		return "", false
	}
	return *r.label, true
}

// Message returns the decoded message, if one is set.
func (r *PaymentRequest) Message() (string, bool) {
	if r.message == nil {
		return "", false
	}
	return *r.message, true
}

// Memo returns the decoded memo, if one is set.
func (r *PaymentRequest) Memo() (string, bool) {
	if r.memo == nil {
		return "", false
	}
	return *r.memo, true
}

// SetAmount sets a native SOL amount. The text is validated immediately
// against the native precision ceiling of 9 fractional digits.
func (r *PaymentRequest) SetAmount(text string) error {
	if r.amount != nil {
		return ErrAmountExists
	}
	n, err := types.ParseNumber(text)
	if err != nil {
		return err
	}
	if n.TotalFractionalDigits() > NativeDecimals {
		return ErrDecimalsExceedNative
	}
	r.amount = &n
	return nil
}

// SetTokenAmount sets an SPL token amount together with its mint. The text
// is validated against the mint's configured decimals, supplied by the
// caller or obtained through a lookup.
func (r *PaymentRequest) SetTokenAmount(text string, mint types.PublicKey, decimals uint8) error {
	if r.amount != nil {
		return ErrAmountExists
	}
	if r.splToken != nil {
		return ErrSplTokenExists
	}
	n, err := types.ParseNumber(text)
	if err != nil {
		return err
	}
	if n.TotalFractionalDigits() > int(decimals) {
		return ErrDecimalsExceedMint
	}
	r.amount = &n
	r.splToken = &mint
	return nil
}

// SetSplToken sets the token mint without an amount. The wallet will prompt
// the user for the amount and validate it against the mint at that point.
func (r *PaymentRequest) SetSplToken(mint types.PublicKey) error {
	if r.splToken != nil {
		return ErrSplTokenExists
	}
	r.splToken = &mint
	return nil
}

// AddReference appends one reference, subject to the transaction account
// budget. Duplicate values are permitted; deduplication is consumer policy.
func (r *PaymentRequest) AddReference(ref types.Reference) error {
	if len(r.references)+1 > MaxReferences {
		return ErrTooManyReferences
	}
	r.references = append(r.references, ref)
	return nil
}

// AddReferences appends several references at once. The whole batch is
// rejected if it would overflow the budget, so a failed call leaves the
// request unchanged.
func (r *PaymentRequest) AddReferences(refs ...types.Reference) error {
	if len(r.references)+len(refs) > MaxReferences {
		return ErrTooManyReferences
	}
	r.references = append(r.references, refs...)
	return nil
}

// SetLabel sets the human-readable source of the request.
func (r *PaymentRequest) SetLabel(label string) error {
	if r.label != nil {
		return ErrLabelExists
	}
	r.label = &label
	return nil
}

// SetMessage sets the human-readable nature of the request.
func (r *PaymentRequest) SetMessage(message string) error {
	if r.message != nil {
		return ErrMessageExists
	}
	r.message = &message
	return nil
}

// SetMemo sets the memo recorded on-chain with the payment.
func (r *PaymentRequest) SetMemo(memo string) error {
	if r.memo != nil {
		return ErrMemoExists
	}
	r.memo = &memo
	return nil
}

// URL serializes the request to its canonical string form.
//
// Field order is a wire contract: amount, spl-token, references in stored
// order, label, message, memo. The amount clause is introduced by '?' and
// every other clause by '&'; the amount literal is emitted exactly as it
// was written, so a successfully parsed URL rebuilds byte-for-byte.
func (r *PaymentRequest) URL() string {
	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteString(r.recipient.Base58())

	if r.amount != nil {
		b.WriteString("?amount=")
		b.WriteString(r.amount.String())
	}
	if r.splToken != nil {
		b.WriteString("&spl-token=")
		b.WriteString(r.splToken.Base58())
	}
	for _, ref := range r.references {
		b.WriteString("&reference=")
		b.WriteString(ref.Base58())
	}
	if r.label != nil {
		b.WriteString("&label=")
		b.WriteString(encodeText(*r.label))
	}
	if r.message != nil {
		b.WriteString("&message=")
		b.WriteString(encodeText(*r.message))
	}
	if r.memo != nil {
		b.WriteString("&memo=")
		b.WriteString(encodeText(*r.memo))
	}
	return b.String()
}

// String returns the canonical URL.
func (r *PaymentRequest) String() string {
	return r.URL()
}

// MarshalJSON renders the request with decoded fields plus the canonical URL.
func (r *PaymentRequest) MarshalJSON() ([]byte, error) {
	var refs []string
	for _, ref := range r.references {
		refs = append(refs, ref.Base58())
	}
	var amount *string
	if r.amount != nil {
		s := r.amount.String()
		amount = &s
	}
	return json.Marshal(struct {
		Recipient  types.PublicKey  `json:"recipient"`
		Amount     *string          `json:"amount,omitempty"`
		SplToken   *types.PublicKey `json:"spl-token,omitempty"`
		References []string         `json:"references,omitempty"`
		Label      *string          `json:"label,omitempty"`
		Message    *string          `json:"message,omitempty"`
		Memo       *string          `json:"memo,omitempty"`
		URL        string           `json:"url"`
	}{
		Recipient:  r.recipient,
		Amount:     amount,
		SplToken:   r.splToken,
		References: refs,
		Label:      r.label,
		Message:    r.message,
		Memo:       r.memo,
		URL:        r.URL(),
	})
}

// Equal reports structural equality of two requests. Reference comparison
// is constant-time per element.
func (r *PaymentRequest) Equal(other *PaymentRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.recipient != other.recipient {
		return false
	}
	if !equalNumber(r.amount, other.amount) {
		return false
	}
	if (r.splToken == nil) != (other.splToken == nil) {
		return false
	}
	if r.splToken != nil && *r.splToken != *other.splToken {
		return false
	}
	if len(r.references) != len(other.references) {
		return false
	}
	for i := range r.references {
		if !r.references[i].Equal(other.references[i]) {
			return false
		}
	}
	return equalString(r.label, other.label) &&
		equalString(r.message, other.message) &&
		equalString(r.memo, other.memo)
}

func equalNumber(a, b *types.Number) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func equalString(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}
