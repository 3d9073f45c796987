package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/models"
)

func dialTestServer(t *testing.T, handler *WebSocketHandler) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	// First message is the connection greeting
	var hello WSMessage
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "connected", hello.Type)

	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func TestWebSocketHandler_PublishStatus(t *testing.T) {
	handler := NewWebSocketHandler(arbor.NewLogger())
	conn, cleanup := dialTestServer(t, handler)
	defer cleanup()

	require.Eventually(t, func() bool { return handler.ClientCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	handler.PublishStatus(models.StatusEvent{
		Type:      models.StatusGenerationCompleted,
		RequestID: "req_1",
		ResultID:  "qa_1",
		Topic:     "Go",
	})

	var msg WSMessage
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "generation_completed", msg.Type)

	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "req_1", payload["requestId"])
	assert.Equal(t, "qa_1", payload["resultId"])
}

func TestWebSocketHandler_ConcurrentPublish(t *testing.T) {
	handler := NewWebSocketHandler(arbor.NewLogger())

	const subscribers = 3
	const events = 20
	conns := make([]*websocket.Conn, subscribers)
	for i := range conns {
		conn, cleanup := dialTestServer(t, handler)
		defer cleanup()
		conns[i] = conn
	}
	require.Eventually(t, func() bool { return handler.ClientCount() == subscribers }, 5*time.Second, 10*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler.PublishStatus(models.StatusEvent{Type: models.StatusGenerationStarted, RequestID: "req"})
		}()
	}
	wg.Wait()

	for _, conn := range conns {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		for i := 0; i < events; i++ {
			var msg WSMessage
			require.NoError(t, conn.ReadJSON(&msg))
			assert.Equal(t, "generation_started", msg.Type)
		}
	}
}

func TestWebSocketHandler_Disconnect(t *testing.T) {
	handler := NewWebSocketHandler(arbor.NewLogger())
	_, cleanup := dialTestServer(t, handler)

	require.Eventually(t, func() bool { return handler.ClientCount() == 1 }, 5*time.Second, 10*time.Millisecond)
	cleanup()
	assert.Eventually(t, func() bool { return handler.ClientCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestWebSocketHandler_StalledClientDoesNotBlockPublish(t *testing.T) {
	handler := NewWebSocketHandler(arbor.NewLogger())

	// Registered but nothing drains its queue
	stalled := newWSClient(nil)
	handler.register(stalled)

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBufferSize*2; i++ {
			handler.PublishStatus(models.StatusEvent{Type: models.StatusGenerationStarted, RequestID: "req"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PublishStatus blocked on a client that is not reading")
	}
	assert.Len(t, stalled.send, sendBufferSize)

	assert.Equal(t, 0, handler.unregister(stalled))
	_, open := <-stalled.send
	assert.True(t, open, "queued messages stay readable after stop")
}
