package notifications

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(10, nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline(10))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(10))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(1, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(1, nil)
	assert.Error(t, err)

	// Another user is unaffected by user 1's limit.
	_, err = hub.Register(2, nil)
	assert.NoError(t, err)
}

func TestHub_BroadcastReachesAllUserConnections(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(5, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(5, nil)
	require.NoError(t, err)
	other, err := hub.Register(6, nil)
	require.NoError(t, err)

	hub.Broadcast(5, "hello")

	assert.Equal(t, "hello", string(<-clientA.Send))
	assert.Equal(t, "hello", string(<-clientB.Send))
	select {
	case <-other.Send:
		t.Fatal("message delivered to wrong user")
	default:
	}
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(1, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(2, nil)
	require.NoError(t, err)

	hub.BroadcastAll("everyone")

	assert.Equal(t, "everyone", string(<-clientA.Send))
	assert.Equal(t, "everyone", string(<-clientB.Send))
}

func TestHub_StartWiringRoutesRedisMessages(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	client, err := hub.Register(9, nil)
	require.NoError(t, err)

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, n))

	require.NoError(t, n.PublishUser(context.Background(), 9, `{"type":"test"}`))

	var got atomic.Value
	assert.Eventually(t, func() bool {
		select {
		case msg := <-client.Send:
			got.Store(string(msg))
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, `{"type":"test"}`, got.Load())
}

func TestClient_TrySendDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(3, nil)
	require.NoError(t, err)

	// Fill the buffered channel without a reader.
	for i := 0; i < cap(client.Send); i++ {
		client.Send <- []byte("fill")
	}

	// Must not block or panic; the message is dropped.
	done := make(chan struct{})
	go func() {
		client.TrySend([]byte("overflow"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("TrySend blocked on full buffer")
	}
}
