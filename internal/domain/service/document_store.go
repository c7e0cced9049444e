// Package service defines the ports to external collaborators.
package service

import (
	"context"
	"errors"
)

// ErrPathNotFound is returned by Get when the path holds no value.
var ErrPathNotFound = errors.New("path not found")

// Snapshot is one full-value delivery from a watched path. Each change
// delivers the entire current value at the path, not a diff.
type Snapshot struct {
	Path  string
	Value any
}

// TxnNode exposes the current value inside a store transaction.
type TxnNode interface {
	// Unmarshal decodes the current value at the transaction path into v.
	// A missing value leaves v at its zero value.
	Unmarshal(v any) error
}

// DocumentStore is the logical persistence collaborator: a hierarchical
// document tree addressed by slash-separated paths. All calls are
// network-bound and honor context cancellation.
type DocumentStore interface {
	// Get reads the value at path into the pointer v, or ErrPathNotFound.
	Get(ctx context.Context, path string, v any) error

	// Set writes the value at path, replacing any existing value.
	Set(ctx context.Context, path string, v any) error

	// Update merges partial fields at path, never clobbering untouched fields.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Push writes the value under a server-generated unique child key of path
	// and returns the key.
	Push(ctx context.Context, path string, v any) (string, error)

	// Remove deletes the value at path.
	Remove(ctx context.Context, path string) error

	// Watch streams a Snapshot each time the value at path changes, starting
	// with the current value, until the context is cancelled.
	Watch(ctx context.Context, path string) (<-chan Snapshot, error)

	// Transaction applies fn to the current value at path and writes its
	// result atomically. Returning an error from fn aborts the write.
	Transaction(ctx context.Context, path string, fn func(TxnNode) (any, error)) error

	// ServerTimestamp returns the write-time placeholder that the backend
	// resolves to its own clock, avoiding client clock skew.
	ServerTimestamp() any
}
