// Package storage provides the named-slot store behind the persisted
// cart and session: a tiny key/value surface where each key holds one
// serialized document and a missing key simply means "absent".
package storage

import "context"

type Store interface {
	// Get returns the raw value for key. ok is false when the slot is
	// absent; absence is not an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
