package store

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"lapak/config"
	"lapak/internal/domain/service"

	"firebase.google.com/go/v4/db"
	"github.com/pkg/errors"
)

// firebaseStore adapts the realtime database client to the DocumentStore port.
type firebaseStore struct {
	client       *db.Client
	logger       *slog.Logger
	pollInterval time.Duration
}

// NewFirebaseStore wraps an initialized realtime database client.
func NewFirebaseStore(client *db.Client, logger *slog.Logger, cfg config.StoreConfig) service.DocumentStore {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	return &firebaseStore{
		client:       client,
		logger:       logger,
		pollInterval: interval,
	}
}

// Get reads the value at path into v. A null node maps to ErrPathNotFound.
func (s *firebaseStore) Get(ctx context.Context, path string, v any) error {
	var raw json.RawMessage
	if err := s.client.NewRef(path).Get(ctx, &raw); err != nil {
		return errors.Wrapf(err, "get %s", path)
	}

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return errors.Wrapf(service.ErrPathNotFound, "get %s", path)
	}

	return errors.Wrapf(json.Unmarshal(raw, v), "unmarshal value at %s", path)
}

// Set writes the value at path, replacing any existing value.
func (s *firebaseStore) Set(ctx context.Context, path string, v any) error {
	return errors.Wrapf(s.client.NewRef(path).Set(ctx, v), "set %s", path)
}

// Update merges partial fields at path.
func (s *firebaseStore) Update(ctx context.Context, path string, fields map[string]any) error {
	return errors.Wrapf(s.client.NewRef(path).Update(ctx, fields), "update %s", path)
}

// Push writes the value under a generated child key and returns the key.
func (s *firebaseStore) Push(ctx context.Context, path string, v any) (string, error) {
	ref, err := s.client.NewRef(path).Push(ctx, v)
	if err != nil {
		return "", errors.Wrapf(err, "push %s", path)
	}

	return ref.Key, nil
}

// Remove deletes the value at path.
func (s *firebaseStore) Remove(ctx context.Context, path string) error {
	return errors.Wrapf(s.client.NewRef(path).Delete(ctx), "remove %s", path)
}

// Watch polls path and emits a full-value snapshot whenever it changes,
// starting with the current value. The admin SDK exposes no streaming
// listener, so polling is the portable option here.
func (s *firebaseStore) Watch(ctx context.Context, path string) (<-chan service.Snapshot, error) {
	ch := make(chan service.Snapshot, watchBuffer)

	var initial json.RawMessage
	if err := s.client.NewRef(path).Get(ctx, &initial); err != nil {
		return nil, errors.Wrapf(err, "watch %s", path)
	}
	ch <- rawSnapshot(path, initial)

	go func() {
		defer close(ch)

		last := initial
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			var current json.RawMessage
			if err := s.client.NewRef(path).Get(ctx, &current); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.WarnContext(ctx, "watch poll failed", slog.String("path", path), slog.Any("error", err))

				continue
			}

			if bytes.Equal(current, last) {
				continue
			}
			last = current

			select {
			case <-ctx.Done():
				return
			case ch <- rawSnapshot(path, current):
			}
		}
	}()

	return ch, nil
}

func rawSnapshot(path string, raw json.RawMessage) service.Snapshot {
	var value any
	if len(raw) > 0 {
		// A decode failure leaves the value nil, same as an empty node.
		_ = json.Unmarshal(raw, &value)
	}

	return service.Snapshot{Path: path, Value: value}
}

// Transaction runs fn against the current value at path with the backend's
// compare-and-set retry loop.
func (s *firebaseStore) Transaction(ctx context.Context, path string, fn func(service.TxnNode) (any, error)) error {
	err := s.client.NewRef(path).Transaction(ctx, func(node db.TransactionNode) (any, error) {
		return fn(node)
	})

	return errors.Wrapf(err, "transaction %s", path)
}

// ServerTimestamp returns the realtime database write-time placeholder.
func (s *firebaseStore) ServerTimestamp() any {
	return map[string]string{".sv": "timestamp"}
}
