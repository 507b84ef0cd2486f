package mintinfo

import (
	"encoding/json"
	"fmt"

	"github.com/solpaykit/solpay/internal/storage"
	"github.com/solpaykit/solpay/pkg/types"
)

var prefixMint = []byte("m/") // m/<mint(32)> -> Metadata JSON

// Store persists mint metadata over a key-value database.
type Store struct {
	db storage.DB
}

// NewStore creates a mint metadata store.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// Put stores metadata for a mint.
func (s *Store) Put(mint types.PublicKey, meta *Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("mint marshal: %w", err)
	}
	return s.db.Put(mintKey(mint), data)
}

// Get retrieves metadata for a mint. Returns storage.ErrNotFound (wrapped)
// if the mint has never been stored.
func (s *Store) Get(mint types.PublicKey) (*Metadata, error) {
	data, err := s.db.Get(mintKey(mint))
	if err != nil {
		return nil, fmt.Errorf("mint get: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("mint unmarshal: %w", err)
	}
	return &meta, nil
}

// Has checks if metadata exists for a mint.
func (s *Store) Has(mint types.PublicKey) (bool, error) {
	return s.db.Has(mintKey(mint))
}

// MetadataEntry pairs a mint address with its metadata.
type MetadataEntry struct {
	Mint types.PublicKey
	Metadata
}

// ForEach iterates over all stored mint metadata entries.
// Return a non-nil error from fn to stop iteration early.
func (s *Store) ForEach(fn func(types.PublicKey, *Metadata) error) error {
	return s.db.ForEach(prefixMint, func(key, value []byte) error {
		// Key layout: "m/" + mint(32).
		if len(key) < len(prefixMint)+types.PublicKeySize {
			return nil // Malformed key, skip.
		}
		var mint types.PublicKey
		copy(mint[:], key[len(prefixMint):])

		var meta Metadata
		if err := json.Unmarshal(value, &meta); err != nil {
			return nil // Skip corrupt entries.
		}
		return fn(mint, &meta)
	})
}

// List returns all stored mint metadata entries.
func (s *Store) List() ([]MetadataEntry, error) {
	var entries []MetadataEntry
	err := s.ForEach(func(mint types.PublicKey, meta *Metadata) error {
		entries = append(entries, MetadataEntry{Mint: mint, Metadata: *meta})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func mintKey(mint types.PublicKey) []byte {
	key := make([]byte, len(prefixMint)+types.PublicKeySize)
	copy(key, prefixMint)
	copy(key[len(prefixMint):], mint[:])
	return key
}
