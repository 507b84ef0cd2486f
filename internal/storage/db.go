// Package storage provides the key-value database abstraction backing the
// mint metadata cache.
package storage

import "errors"

// ErrNotFound is returned by Get when a key does not exist.
var ErrNotFound = errors.New("key not found")

// DB is the interface for key-value storage.
type DB interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
	// ForEach iterates over all keys with the given prefix.
	// The callback receives a copy of the key.
	// Return a non-nil error from fn to stop iteration early.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}
