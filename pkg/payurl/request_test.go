package payurl

import (
	"context"
	"errors"
	"testing"

	"github.com/solpaykit/solpay/pkg/types"
)

func mustKey(t *testing.T, s string) types.PublicKey {
	t.Helper()
	pk, err := types.PublicKeyFromBase58(s)
	if err != nil {
		t.Fatalf("decode key %q: %v", s, err)
	}
	return pk
}

func TestNewRequestOnCurve(t *testing.T) {
	onCurve := mustKey(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	if _, err := NewRequestOnCurve(onCurve); err != nil {
		t.Errorf("NewRequestOnCurve(on-curve) error: %v", err)
	}

	offCurve := mustKey(t, "HqAi1JjEEVS6QRvNe7gC4z8pYTuKbWkdZqCuuDpZxxQW")
	if _, err := NewRequestOnCurve(offCurve); !errors.Is(err, ErrRecipientOffCurve) {
		t.Errorf("NewRequestOnCurve(off-curve) error = %v, want ErrRecipientOffCurve", err)
	}

	// The permissive constructor accepts program-derived recipients.
	if req := NewRequest(offCurve); req.Recipient() != offCurve {
		t.Error("NewRequest should accept an off-curve recipient")
	}
}

func TestBuild_MatchesParsedForm(t *testing.T) {
	req := NewRequest(mustKey(t, recipientKey))
	if err := req.SetAmount("1"); err != nil {
		t.Fatalf("SetAmount() error: %v", err)
	}
	if err := req.SetLabel("Michael"); err != nil {
		t.Fatalf("SetLabel() error: %v", err)
	}
	if err := req.SetMessage("Thanks for all the fish"); err != nil {
		t.Fatalf("SetMessage() error: %v", err)
	}
	if err := req.SetMemo("OrderId12345"); err != nil {
		t.Fatalf("SetMemo() error: %v", err)
	}

	want := "solana:" + recipientKey +
		"?amount=1&label=Michael&message=Thanks%20for%20all%20the%20fish&memo=OrderId12345"
	if got := req.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}

	parsed, err := Parse(context.Background(), want, nil)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !req.Equal(parsed) {
		t.Error("built and parsed requests differ")
	}
}

func TestBuild_OneShotSetters(t *testing.T) {
	req := NewRequest(mustKey(t, recipientKey))

	steps := []struct {
		name  string
		first func() error
		again func() error
		want  error
	}{
		{"amount", func() error { return req.SetAmount("1") }, func() error { return req.SetAmount("2") }, ErrAmountExists},
		{"spl-token", func() error { return req.SetSplToken(mustKey(t, usdcMint)) }, func() error { return req.SetSplToken(mustKey(t, usdcMint)) }, ErrSplTokenExists},
		{"label", func() error { return req.SetLabel("a") }, func() error { return req.SetLabel("b") }, ErrLabelExists},
		{"message", func() error { return req.SetMessage("a") }, func() error { return req.SetMessage("b") }, ErrMessageExists},
		{"memo", func() error { return req.SetMemo("a") }, func() error { return req.SetMemo("b") }, ErrMemoExists},
	}
	for _, s := range steps {
		if err := s.first(); err != nil {
			t.Fatalf("%s: first write error: %v", s.name, err)
		}
		if err := s.again(); !errors.Is(err, s.want) {
			t.Errorf("%s: second write error = %v, want %v", s.name, err, s.want)
		}
	}
}

func TestSetAmount_NativeCeiling(t *testing.T) {
	req := NewRequest(mustKey(t, recipientKey))
	if err := req.SetAmount("0.1234567891"); !errors.Is(err, ErrDecimalsExceedNative) {
		t.Errorf("SetAmount() error = %v, want ErrDecimalsExceedNative", err)
	}
	// The failed write must not consume the one-shot slot.
	if err := req.SetAmount("0.123456789"); err != nil {
		t.Errorf("SetAmount() after failed attempt: %v", err)
	}
}

func TestSetAmount_InvalidNumber(t *testing.T) {
	req := NewRequest(mustKey(t, recipientKey))
	if err := req.SetAmount("1.2.3"); !errors.Is(err, types.ErrInvalidNumber) {
		t.Errorf("SetAmount() error = %v, want ErrInvalidNumber", err)
	}
}

func TestSetTokenAmount(t *testing.T) {
	mint := mustKey(t, usdcMint)

	req := NewRequest(mustKey(t, recipientKey))
	if err := req.SetTokenAmount("0.01", mint, 6); err != nil {
		t.Fatalf("SetTokenAmount() error: %v", err)
	}
	want := "solana:" + recipientKey + "?amount=0.01&spl-token=" + usdcMint
	if got := req.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}

	req = NewRequest(mustKey(t, recipientKey))
	if err := req.SetTokenAmount("0.0000001", mint, 6); !errors.Is(err, ErrDecimalsExceedMint) {
		t.Errorf("SetTokenAmount() error = %v, want ErrDecimalsExceedMint", err)
	}
}

func TestAddReference_Capacity(t *testing.T) {
	req := NewRequest(mustKey(t, recipientKey))
	for i := 0; i < MaxReferences; i++ {
		if err := req.AddReference(makeRef(i)); err != nil {
			t.Fatalf("AddReference(%d) error: %v", i, err)
		}
	}
	if err := req.AddReference(makeRef(MaxReferences)); !errors.Is(err, ErrTooManyReferences) {
		t.Errorf("AddReference() error = %v, want ErrTooManyReferences", err)
	}
	if len(req.References()) != MaxReferences {
		t.Errorf("references = %d, want %d", len(req.References()), MaxReferences)
	}
}

func TestAddReferences_BatchRejected(t *testing.T) {
	req := NewRequest(mustKey(t, recipientKey))
	refs := make([]types.Reference, MaxReferences+1)
	for i := range refs {
		refs[i] = makeRef(i)
	}
	if err := req.AddReferences(refs...); !errors.Is(err, ErrTooManyReferences) {
		t.Fatalf("AddReferences() error = %v, want ErrTooManyReferences", err)
	}
	// A rejected batch leaves the request unchanged.
	if len(req.References()) != 0 {
		t.Errorf("references = %d after rejected batch, want 0", len(req.References()))
	}
	if err := req.AddReferences(refs[:MaxReferences]...); err != nil {
		t.Errorf("AddReferences(full budget) error: %v", err)
	}
}

func TestURL_EmissionOrder(t *testing.T) {
	req := NewRequest(mustKey(t, recipientKey))
	// Set fields in scrambled order; emission order is fixed.
	if err := req.SetMemo("m"); err != nil {
		t.Fatal(err)
	}
	if err := req.AddReference(makeRef(7)); err != nil {
		t.Fatal(err)
	}
	if err := req.SetLabel("l"); err != nil {
		t.Fatal(err)
	}
	if err := req.SetTokenAmount("2.5", mustKey(t, usdcMint), 6); err != nil {
		t.Fatal(err)
	}

	want := "solana:" + recipientKey +
		"?amount=2.5&spl-token=" + usdcMint +
		"&reference=" + makeRef(7).Base58() +
		"&label=l&memo=m"
	if got := req.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestReferences_ReturnsCopy(t *testing.T) {
	req := NewRequest(mustKey(t, recipientKey))
	if err := req.AddReference(makeRef(1)); err != nil {
		t.Fatal(err)
	}
	refs := req.References()
	refs[0] = makeRef(2)
	if !req.References()[0].Equal(makeRef(1)) {
		t.Error("References() must return a copy")
	}
}
