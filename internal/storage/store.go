// Package storage provides the persistence gateway the core reads at session
// start and writes after every durable mutation, plus in-memory and JSON file
// key-value stores behind it.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested key is missing.
var ErrNotFound = errors.New("record not found")

// Store is a string-keyed store of JSON documents.
type Store interface {
	// Get returns the raw value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error
	// Clear removes every key.
	Clear(ctx context.Context) error
	// Close releases any underlying resources.
	Close() error
}
