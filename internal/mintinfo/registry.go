package mintinfo

import (
	"context"
	"errors"
	"fmt"

	"github.com/solpaykit/solpay/internal/log"
	"github.com/solpaykit/solpay/internal/storage"
	"github.com/solpaykit/solpay/pkg/payurl"
	"github.com/solpaykit/solpay/pkg/types"
)

// Registry resolves mint decimals through three layers: the built-in
// well-known table, the persistent store, and an optional fallback lookup
// whose results are cached back into the store. Both the store and the
// fallback may be nil.
type Registry struct {
	store    *Store
	fallback payurl.DecimalsFunc
}

// NewRegistry creates a registry over an optional store and fallback.
func NewRegistry(store *Store, fallback payurl.DecimalsFunc) *Registry {
	return &Registry{store: store, fallback: fallback}
}

// Metadata resolves full metadata for a mint. Fallback hits are recorded
// with an empty name and symbol since the lookup contract only yields
// decimals.
func (r *Registry) Metadata(ctx context.Context, mint types.PublicKey) (*Metadata, error) {
	if meta, ok := WellKnown(mint); ok {
		return &meta, nil
	}

	if r.store != nil {
		meta, err := r.store.Get(mint)
		if err == nil {
			return meta, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}

	if r.fallback != nil {
		decimals, err := r.fallback(ctx, mint)
		if err != nil {
			return nil, fmt.Errorf("mint fallback lookup: %w", err)
		}
		meta := &Metadata{Decimals: decimals}
		if r.store != nil {
			// Cache failures are not fatal; the resolved value is valid.
			if err := r.store.Put(mint, meta); err != nil {
				log.Mint.Warn().
					Stringer("mint", mint).
					Err(err).
					Msg("failed to cache mint metadata")
			}
		}
		return meta, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownMint, mint)
}

// Decimals resolves the decimal precision configured for a mint.
func (r *Registry) Decimals(ctx context.Context, mint types.PublicKey) (uint8, error) {
	meta, err := r.Metadata(ctx, mint)
	if err != nil {
		return 0, err
	}
	return meta.Decimals, nil
}

// DecimalsFunc adapts the registry to the parser's lookup contract.
func (r *Registry) DecimalsFunc() payurl.DecimalsFunc {
	return r.Decimals
}
