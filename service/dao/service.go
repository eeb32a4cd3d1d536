// Package dao defines the generic persistence contract used for snapshot
// storage, with interchangeable in-memory and filesystem implementations.
package dao

import (
	"context"
)

// Service is a generic store of T keyed by K.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context) ([]*T, error)
}
