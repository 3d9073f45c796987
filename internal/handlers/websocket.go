package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/common"
	"github.com/ternarybob/qanda/internal/interfaces"
	"github.com/ternarybob/qanda/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

const (
	writeWait = 10 * time.Second
	// Messages queued per client before further events are dropped for it
	sendBufferSize = 64
)

// WSMessage is the envelope for every message sent to WebSocket clients
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// wsClient queues outbound messages for one connection; only its write pump writes to conn
type wsClient struct {
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// stop ends the write pump. Callers must have removed the client from the
// handler first so no broadcast can send on the closed channel.
func (c *wsClient) stop() {
	c.closeOnce.Do(func() { close(c.send) })
}

// WebSocketHandler streams generation status events to connected clients
type WebSocketHandler struct {
	logger           arbor.ILogger
	clients          map[*wsClient]bool
	mu               sync.RWMutex
	serverInstanceID string // Clients use this to detect a server restart
}

var _ interfaces.StatusPublisher = (*WebSocketHandler)(nil)

func NewWebSocketHandler(logger arbor.ILogger) *WebSocketHandler {
	h := &WebSocketHandler{
		logger:           logger,
		clients:          make(map[*wsClient]bool),
		serverInstanceID: uuid.New().String(),
	}

	logger.Debug().Str("server_instance_id", h.serverInstanceID).Msg("WebSocket handler initialized")
	return h
}

// HandleWebSocket handles WebSocket connections
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := newWSClient(conn)
	clientCount := h.register(client)
	common.SafeGo(h.logger, "websocket-write", func() { h.writePump(client) })

	h.logger.Debug().Msgf("WebSocket client connected (total: %d)", clientCount)

	h.enqueue(client, WSMessage{
		Type: "connected",
		Payload: map[string]string{
			"serverInstanceId": h.serverInstanceID,
		},
	})

	defer func() {
		clientCount := h.unregister(client)
		conn.Close()
		h.logger.Debug().Msgf("WebSocket client disconnected (remaining: %d)", clientCount)
	}()

	// Read until the client goes away; inbound messages are ignored
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket error")
			}
			break
		}
	}
}

// PublishStatus broadcasts a generation status event to all clients.
// It never waits on a client; a client whose queue is full misses the event.
func (h *WebSocketHandler) PublishStatus(event models.StatusEvent) {
	h.broadcast(WSMessage{
		Type:    string(event.Type),
		Payload: event,
	})
}

func (h *WebSocketHandler) register(client *wsClient) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	return len(h.clients)
}

func (h *WebSocketHandler) unregister(client *wsClient) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client] {
		delete(h.clients, client)
		client.stop()
	}
	return len(h.clients)
}

// ClientCount returns the number of connected clients
func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all clients
func (h *WebSocketHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		client.stop()
		client.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		client.conn.Close()
	}
}

func (h *WebSocketHandler) broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("type", msg.Type).Msg("Failed to marshal WebSocket message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Str("type", msg.Type).Msg("WebSocket client send queue full, dropping message")
		}
	}
}

// enqueue queues msg for a single client that is still registered
func (h *WebSocketHandler) enqueue(client *wsClient, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("type", msg.Type).Msg("Failed to marshal WebSocket message")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- data:
	default:
		h.logger.Warn().Str("type", msg.Type).Msg("WebSocket client send queue full, dropping message")
	}
}

// writePump drains the client's queue until stop. A failed write closes the
// connection, which ends the read loop and unregisters the client.
func (h *WebSocketHandler) writePump(client *wsClient) {
	for data := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to send message to client")
			client.conn.Close()
			return
		}
	}
}
