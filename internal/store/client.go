package store

import (
	"context"
	"errors"
)

// Client defines the minimal contract required by the repositories to interact
// with the underlying document store.
type Client interface {
	FindAll(ctx context.Context, collection string) ([]Record, error)
	InsertMany(ctx context.Context, collection string, docs []Record) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Record groups key-value pairs decoded from a stored document.
type Record map[string]any

// Options configures a store client implementation.
type Options struct {
	URI         string
	Database    string
	MaxPoolSize int
}

// ErrMissingURI indicates the store connection URI is not provided.
var ErrMissingURI = errors.New("store URI is required")
