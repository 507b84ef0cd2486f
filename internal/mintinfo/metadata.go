// Package mintinfo resolves the decimal precision configured for SPL token
// mints. It layers a built-in table of well-known mints, a persistent
// metadata cache, and an optional caller-supplied lookup, and adapts the
// result to the parser's DecimalsFunc contract.
package mintinfo

import (
	"errors"

	"github.com/solpaykit/solpay/pkg/types"
)

// ErrUnknownMint is returned when no layer of the registry knows the mint.
var ErrUnknownMint = errors.New("unknown mint")

// Metadata holds descriptive information about a token mint.
type Metadata struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// wellKnown maps base58 mint addresses of widely used mainnet tokens to
// their metadata. These values are fixed at mint creation and safe to ship.
var wellKnown = map[string]Metadata{
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": {Name: "USD Coin", Symbol: "USDC", Decimals: 6},
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": {Name: "Tether USD", Symbol: "USDT", Decimals: 6},
	"So11111111111111111111111111111111111111112": {Name: "Wrapped SOL", Symbol: "wSOL", Decimals: 9},
	"mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So": {Name: "Marinade staked SOL", Symbol: "mSOL", Decimals: 9},
	"DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263": {Name: "Bonk", Symbol: "BONK", Decimals: 5},
}

// WellKnown returns the built-in metadata for a mint, if any.
func WellKnown(mint types.PublicKey) (Metadata, bool) {
	meta, ok := wellKnown[mint.Base58()]
	return meta, ok
}
