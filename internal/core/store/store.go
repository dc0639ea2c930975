package store

import (
	"context"
	"errors"
)

// Well-known collection keys
const (
	KeyInvoices = "invoices"
	KeyClients  = "clients"
	KeyProfile  = "user"
)

// ErrNotFound is returned by Get when nothing has been stored under a key yet
var ErrNotFound = errors.New("store: key not found")

// Store is a key/value store of whole serialized collections.
// There is no partial update: every Put replaces the value for the key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Name() string
}
