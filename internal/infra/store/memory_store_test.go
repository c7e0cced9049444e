package store

import (
	"context"
	"testing"

	"lapak/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, s.Set(ctx, "items/a", doc{Name: "first", Count: 3}))

	var got doc
	require.NoError(t, s.Get(ctx, "items/a", &got))
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestMemoryStore_GetMissingPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	var got map[string]any
	err := s.Get(ctx, "items/missing", &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrPathNotFound))
}

func TestMemoryStore_UpdateMergesFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "users/u1", map[string]any{
		"username": "ani",
		"role":     "customer",
	}))
	require.NoError(t, s.Update(ctx, "users/u1", map[string]any{"role": "supervisor"}))

	var got map[string]any
	require.NoError(t, s.Get(ctx, "users/u1", &got))
	assert.Equal(t, "ani", got["username"])
	assert.Equal(t, "supervisor", got["role"])
}

func TestMemoryStore_PushKeysSortChronologically(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	var keys []string
	for i := 0; i < 20; i++ {
		key, err := s.Push(ctx, "chats/messages/r1", map[string]any{"seq": i})
		require.NoError(t, err)
		keys = append(keys, key)
	}

	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
}

func TestMemoryStore_ServerTimestampResolvesMonotonically(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	type stamped struct {
		Timestamp int64 `json:"timestamp"`
	}

	var previous int64
	for i := 0; i < 5; i++ {
		key, err := s.Push(ctx, "chats/messages/r1", map[string]any{
			"timestamp": s.ServerTimestamp(),
		})
		require.NoError(t, err)

		var got stamped
		require.NoError(t, s.Get(ctx, "chats/messages/r1/"+key, &got))
		assert.Greater(t, got.Timestamp, previous)
		previous = got.Timestamp
	}
}

func TestMemoryStore_RemoveDeletesSubtree(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "carts/u1/p1", map[string]any{"quantity": 2}))
	require.NoError(t, s.Remove(ctx, "carts/u1"))

	var got map[string]any
	err := s.Get(ctx, "carts/u1", &got)
	assert.True(t, errors.Is(err, service.ErrPathNotFound))
}

func TestMemoryStore_WatchDeliversInitialAndUpdates(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "chats/messages/r1/m1", map[string]any{"text": "halo"}))

	ch, err := s.Watch(ctx, "chats/messages/r1")
	require.NoError(t, err)

	initial := <-ch
	value, ok := initial.Value.(map[string]any)
	require.True(t, ok)
	assert.Len(t, value, 1)

	require.NoError(t, s.Set(ctx, "chats/messages/r1/m2", map[string]any{"text": "siap"}))

	next := <-ch
	value, ok = next.Value.(map[string]any)
	require.True(t, ok)
	assert.Len(t, value, 2)
}

func TestMemoryStore_WatchChannelClosesOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	s := NewMemoryStore()

	ch, err := s.Watch(ctx, "orders")
	require.NoError(t, err)
	<-ch

	cancel()

	for range ch {
		// Drain buffered snapshots until closed.
	}
}

func TestMemoryStore_TransactionReadsCurrentValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "orders/o1", map[string]any{"status": "PENDING"}))

	err := s.Transaction(ctx, "orders/o1", func(node service.TxnNode) (any, error) {
		var current map[string]any
		require.NoError(t, node.Unmarshal(&current))
		require.Equal(t, "PENDING", current["status"])

		current["status"] = "DIKEMAS"

		return current, nil
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, s.Get(ctx, "orders/o1", &got))
	assert.Equal(t, "DIKEMAS", got["status"])
}

func TestMemoryStore_TransactionErrorLeavesValueUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "orders/o1", map[string]any{"status": "PENDING"}))

	err := s.Transaction(ctx, "orders/o1", func(service.TxnNode) (any, error) {
		return nil, errors.New("abort")
	})
	require.Error(t, err)

	var got map[string]any
	require.NoError(t, s.Get(ctx, "orders/o1", &got))
	assert.Equal(t, "PENDING", got["status"])
}
