package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient captures sent messages
type mockClient struct {
	id       string
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string) *mockClient {
	return &mockClient{id: id}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	client1 := newMockClient("client-1")
	client2 := newMockClient("client-2")

	hub.Register(client1)
	hub.Register(client2)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(client1)
	assert.Equal(t, 1, hub.ClientCount())

	// unknown and repeated unregisters are ignored
	hub.Unregister(client1)
	hub.Unregister(newMockClient("other"))
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub()
	client1 := newMockClient("client-1")
	client2 := newMockClient("client-2")
	hub.Register(client1)
	hub.Register(client2)

	hub.Broadcast(event.AlertRaised(map[string]any{"category": "Food"}))

	require.Eventually(t, func() bool {
		return len(client1.GetMessages()) == 1 && len(client2.GetMessages()) == 1
	}, time.Second, 5*time.Millisecond)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(client1.GetMessages()[0], &decoded))
	assert.Equal(t, "alert.raised", decoded["type"])
	assert.Equal(t, "Food", decoded["payload"].(map[string]any)["category"])
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.Broadcast(event.BudgetUpdated(nil))
	})
}

func TestHub_BroadcastSkipsClosedClient(t *testing.T) {
	hub := NewHub()
	closed := newMockClient("closed")
	open := newMockClient("open")
	require.NoError(t, closed.Close())
	hub.Register(closed)
	hub.Register(open)

	hub.Broadcast(event.GoalCreated(nil))

	require.Eventually(t, func() bool { return len(open.GetMessages()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, closed.GetMessages())
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c := newMockClient(fmt.Sprintf("client-%d", i))
			hub.Register(c)
			hub.Unregister(c)
		}(i)
		go func() {
			defer wg.Done()
			hub.Broadcast(event.TransactionCreated(nil))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_CloseAll(t *testing.T) {
	hub := NewHub()
	client1 := newMockClient("client-1")
	client2 := newMockClient("client-2")
	hub.Register(client1)
	hub.Register(client2)

	hub.CloseAll()

	assert.Equal(t, 0, hub.ClientCount())
	assert.True(t, client1.IsClosed())
	assert.True(t, client2.IsClosed())
}

func TestHub_EntitySubscription(t *testing.T) {
	hub := NewHub()
	alerts := newMockClient("alerts")
	everything := newMockClient("everything")
	hub.Register(alerts, event.EntityAlert)
	hub.Register(everything)

	hub.Broadcast(event.BudgetUpdated(map[string]string{"category": "Food"}))
	hub.Broadcast(event.AlertRaised(map[string]string{"category": "Food"}))

	require.Eventually(t, func() bool {
		return len(everything.GetMessages()) == 2 && len(alerts.GetMessages()) == 1
	}, time.Second, 5*time.Millisecond)

	var decoded event.Event
	require.NoError(t, json.Unmarshal(alerts.GetMessages()[0], &decoded))
	assert.Equal(t, event.EntityAlert, decoded.Entity)
}
