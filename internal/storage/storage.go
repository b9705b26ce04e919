package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is a key-value document store. Values are JSON documents; callers
// own the encoding. Get returns ErrNotFound for absent keys so callers can
// tell "no data yet" from a store outage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
