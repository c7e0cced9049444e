// Package store provides the DocumentStore implementations.
package store

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"sync"
	"time"

	"lapak/internal/domain/service"

	"github.com/pkg/errors"
)

// pushAlphabet is the key alphabet of the backing database; keys built from it
// sort chronologically as plain strings.
const pushAlphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

const watchBuffer = 16

// memoryStore is an in-process DocumentStore used for development and tests.
// Values are normalized through JSON so reads and writes behave like the
// remote document tree, including server-timestamp placeholder resolution.
type memoryStore struct {
	mu       sync.Mutex
	root     map[string]any
	watchers []*memoryWatcher
	lastTS   int64
	lastPush string
	rnd      *rand.Rand
}

type memoryWatcher struct {
	path string
	ch   chan service.Snapshot
	done <-chan struct{}
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() service.DocumentStore {
	return &memoryStore{
		root: make(map[string]any),
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

// Get reads the value at path into v, or ErrPathNotFound.
func (s *memoryStore) Get(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	node := s.lookup(splitPath(path))
	raw, err := json.Marshal(node)
	s.mu.Unlock()

	if err != nil {
		return errors.Wrap(err, "marshal stored value")
	}
	if node == nil {
		return errors.Wrapf(service.ErrPathNotFound, "get %s", path)
	}

	return errors.Wrapf(json.Unmarshal(raw, v), "unmarshal value at %s", path)
}

// Set writes the value at path, replacing any existing value.
func (s *memoryStore) Set(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	decoded, err := decodeValue(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.insert(splitPath(path), s.resolveTimestampsLocked(decoded))
	s.notifyLocked(path)
	s.mu.Unlock()

	return nil
}

// Update merges partial fields at path without clobbering untouched fields.
// Field keys may address nested children with slashes, as the remote API does.
func (s *memoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range fields {
		decoded, err := decodeValue(value)
		if err != nil {
			return err
		}
		s.insert(append(splitPath(path), splitPath(key)...), s.resolveTimestampsLocked(decoded))
	}
	s.notifyLocked(path)

	return nil
}

// Push writes the value under a generated chronologically-ordered child key.
func (s *memoryStore) Push(ctx context.Context, path string, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	decoded, err := decodeValue(v)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	key := s.nextPushKeyLocked()
	s.insert(append(splitPath(path), key), s.resolveTimestampsLocked(decoded))
	s.notifyLocked(path)
	s.mu.Unlock()

	return key, nil
}

// Remove deletes the value at path.
func (s *memoryStore) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	s.delete(splitPath(path))
	s.notifyLocked(path)
	s.mu.Unlock()

	return nil
}

// Watch streams full-value snapshots for path, starting with the current value.
func (s *memoryStore) Watch(ctx context.Context, path string) (<-chan service.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	watcher := &memoryWatcher{
		path: strings.Trim(path, "/"),
		ch:   make(chan service.Snapshot, watchBuffer),
		done: ctx.Done(),
	}

	s.mu.Lock()
	s.watchers = append(s.watchers, watcher)
	watcher.ch <- service.Snapshot{Path: watcher.path, Value: s.copyValue(splitPath(path))}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		for i, w := range s.watchers {
			if w == watcher {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)

				break
			}
		}
		s.mu.Unlock()
		close(watcher.ch)
	}()

	return watcher.ch, nil
}

// Transaction applies fn to the current value at path and writes its result
// atomically under the store lock.
func (s *memoryStore) Transaction(ctx context.Context, path string, fn func(service.TxnNode) (any, error)) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	node := memoryTxnNode{value: s.lookup(splitPath(path))}
	result, err := fn(node)
	if err != nil {
		return err
	}

	decoded, err := decodeValue(result)
	if err != nil {
		return err
	}
	s.insert(splitPath(path), s.resolveTimestampsLocked(decoded))
	s.notifyLocked(path)

	return nil
}

// ServerTimestamp returns the backend's write-time placeholder.
func (s *memoryStore) ServerTimestamp() any {
	return map[string]string{".sv": "timestamp"}
}

type memoryTxnNode struct {
	value any
}

func (n memoryTxnNode) Unmarshal(v any) error {
	if n.value == nil {
		return nil
	}

	raw, err := json.Marshal(n.value)
	if err != nil {
		return errors.Wrap(err, "marshal transaction value")
	}

	return errors.Wrap(json.Unmarshal(raw, v), "unmarshal transaction value")
}

// decodeValue roundtrips v through JSON so the stored tree only holds plain
// maps, slices and scalars, as the remote document tree does.
func decodeValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshal value")
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrap(err, "decode value")
	}

	return decoded, nil
}

// resolveTimestampsLocked replaces timestamp placeholders with the current
// milliseconds; resolved values are monotonically increasing across the store.
func (s *memoryStore) resolveTimestampsLocked(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}

	if sv, ok := m[".sv"]; ok && len(m) == 1 && sv == "timestamp" {
		now := time.Now().UnixMilli()
		if now <= s.lastTS {
			now = s.lastTS + 1
		}
		s.lastTS = now

		return float64(now)
	}

	for key, child := range m {
		m[key] = s.resolveTimestampsLocked(child)
	}

	return m
}

func (s *memoryStore) lookup(segments []string) any {
	var current any = s.root
	for _, segment := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[segment]
		if !ok {
			return nil
		}
	}

	return current
}

func (s *memoryStore) copyValue(segments []string) any {
	node := s.lookup(segments)
	if node == nil {
		return nil
	}

	raw, err := json.Marshal(node)
	if err != nil {
		return nil
	}

	var copied any
	if err := json.Unmarshal(raw, &copied); err != nil {
		return nil
	}

	return copied
}

func (s *memoryStore) insert(segments []string, value any) {
	if len(segments) == 0 {
		if m, ok := value.(map[string]any); ok {
			s.root = m
		} else {
			s.root = make(map[string]any)
		}

		return
	}

	current := s.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := current[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			current[segment] = child
		}
		current = child
	}

	last := segments[len(segments)-1]
	if value == nil {
		delete(current, last)
	} else {
		current[last] = value
	}
}

func (s *memoryStore) delete(segments []string) {
	s.insert(segments, nil)
}

// notifyLocked delivers a fresh snapshot to every watcher whose subtree
// intersects the written path.
func (s *memoryStore) notifyLocked(written string) {
	written = strings.Trim(written, "/")
	for _, watcher := range s.watchers {
		if !pathsIntersect(watcher.path, written) {
			continue
		}

		snapshot := service.Snapshot{Path: watcher.path, Value: s.copyValue(splitPath(watcher.path))}
		select {
		case <-watcher.done:
		case watcher.ch <- snapshot:
		default:
			// Watcher is lagging; it will observe the latest value on the
			// next delivery since every snapshot carries the full value.
		}
	}
}

func pathsIntersect(a, b string) bool {
	if a == "" || b == "" {
		return true
	}

	return a == b || strings.HasPrefix(a, b+"/") || strings.HasPrefix(b, a+"/")
}

// nextPushKeyLocked generates a chronologically sortable unique child key.
func (s *memoryStore) nextPushKeyLocked() string {
	now := time.Now().UnixMilli()

	buf := make([]byte, 8, 16)
	ts := now
	for i := 7; i >= 0; i-- {
		buf[i] = pushAlphabet[ts%64]
		ts /= 64
	}
	for i := 0; i < 8; i++ {
		buf = append(buf, pushAlphabet[s.rnd.Intn(64)])
	}

	key := string(buf)
	if key <= s.lastPush {
		// Same-millisecond collision guard: bump the random tail.
		key = s.lastPush + "0"
	}
	s.lastPush = key

	return key
}
