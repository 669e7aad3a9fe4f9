// Package handlers provides HTTP request handlers for the portsim API.
// This file implements the WebSocket endpoint that streams live scan
// snapshots to dashboard clients.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/anstrom/portsim/internal/metrics"
	"github.com/anstrom/portsim/internal/scanning"
)

const (
	// WebSocket configuration constants.
	writeWait       = 10 * time.Second                                   // Time allowed to write a message to the peer
	pongWait        = 60 * time.Second                                   // Time to read next pong message from peer
	pingPeriodRatio = 0.9                                                // Ratio of pongWait for pingPeriod
	pingPeriod      = time.Duration(float64(pongWait) * pingPeriodRatio) // Send pings to peer (must be < pongWait)
	maxMessageSize  = 512                                                // Maximum message size allowed from peer
	bufferSize      = 256                                                // Size of the update and per-client buffers

	messageTypeScanUpdate = "scan_update"
)

// SnapshotSource provides the current scan state for newly connected clients.
type SnapshotSource interface {
	Snapshot() scanning.Snapshot
}

// WebSocketMessage represents a WebSocket message structure.
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
}

// client is one connected WebSocket peer. Only its writePump writes to conn.
type client struct {
	conn      *websocket.Conn
	send      chan []byte
	requestID string
}

// WebSocketHandler fans engine snapshots out to WebSocket clients. It
// implements scanning.Observer.
type WebSocketHandler struct {
	source   SnapshotSource
	logger   *slog.Logger
	metrics  metrics.StreamRecorder
	upgrader websocket.Upgrader

	clients    map[*client]bool
	updates    chan scanning.Snapshot
	register   chan *client
	unregister chan *client
	shutdown   chan struct{}
	done       chan struct{}
	closeOnce  sync.Once
	mutex      sync.RWMutex
}

// NewWebSocketHandler creates a new WebSocket handler and starts its hub.
// A nil recorder disables stream metrics.
func NewWebSocketHandler(source SnapshotSource, logger *slog.Logger, recorder metrics.StreamRecorder) *WebSocketHandler {
	handler := newWebSocketHandler(source, logger, recorder)
	go handler.run()
	return handler
}

func newWebSocketHandler(source SnapshotSource, logger *slog.Logger, recorder metrics.StreamRecorder) *WebSocketHandler {
	if recorder == nil {
		recorder = nopStreamRecorder{}
	}
	return &WebSocketHandler{
		source:  source,
		logger:  logger.With("handler", "websocket"),
		metrics: recorder,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The dashboard may be served from any origin
				return true
			},
		},
		clients:    make(map[*client]bool),
		updates:    make(chan scanning.Snapshot, bufferSize),
		register:   make(chan *client),
		unregister: make(chan *client),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// OnSnapshot queues a snapshot for broadcast. It never blocks; when the
// queue is full the snapshot is dropped.
func (h *WebSocketHandler) OnSnapshot(s scanning.Snapshot) {
	select {
	case h.updates <- s:
	default:
		h.metrics.IncrementStreamDropped()
		h.logger.Warn("Scan update channel full, dropping snapshot", "scan_id", s.ID, "cursor", s.Cursor)
	}
}

// ScanWebSocket handles WebSocket connections for scan updates. The first
// message carries the current snapshot.
func (h *WebSocketHandler) ScanWebSocket(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestIDFromContext(r.Context())
	h.logger.Info("New scan WebSocket connection", "request_id", requestID, "remote_addr", r.RemoteAddr)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade WebSocket connection", "request_id", requestID, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, bufferSize), requestID: requestID}

	// Bring the client up to date before live updates start flowing.
	if data, err := h.encode(h.source.Snapshot(), requestID); err == nil {
		c.send <- data
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// run owns the client set and serializes broadcasts.
func (h *WebSocketHandler) run() {
	defer close(h.done)

	for {
		select {
		case <-h.shutdown:
			h.mutex.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mutex.Unlock()
			h.metrics.SetStreamClients(0)
			h.logger.Debug("WebSocket handler shutting down")
			return

		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.metrics.SetStreamClients(total)
			h.logger.Debug("Client registered", "request_id", c.requestID, "total_clients", total)

		case c := <-h.unregister:
			h.remove(c)

		case snap := <-h.updates:
			h.broadcast(snap)
		}
	}
}

func (h *WebSocketHandler) remove(c *client) {
	h.mutex.Lock()
	if !h.clients[c] {
		h.mutex.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	total := len(h.clients)
	h.mutex.Unlock()

	h.metrics.SetStreamClients(total)
	h.logger.Debug("Client unregistered", "request_id", c.requestID, "total_clients", total)
}

// broadcast hands one snapshot to every client. Clients whose buffer is
// full are disconnected.
func (h *WebSocketHandler) broadcast(snap scanning.Snapshot) {
	data, err := h.encode(snap, "")
	if err != nil {
		h.logger.Error("Failed to marshal scan update", "scan_id", snap.ID, "error", err)
		return
	}

	h.mutex.RLock()
	slow := make([]*client, 0)
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mutex.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Client too slow, closing connection", "request_id", c.requestID)
		h.remove(c)
	}
	h.metrics.IncrementStreamMessages(messageTypeScanUpdate)
}

func (h *WebSocketHandler) encode(snap scanning.Snapshot, requestID string) ([]byte, error) {
	return json.Marshal(WebSocketMessage{
		Type:      messageTypeScanUpdate,
		Timestamp: time.Now().UTC(),
		Data:      snap,
		RequestID: requestID,
	})
}

// readPump drains the connection so pongs and close frames are processed.
func (h *WebSocketHandler) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		if err := c.conn.Close(); err != nil {
			h.logger.Debug("Error closing connection in readPump", "request_id", c.requestID, "error", err)
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.logger.Error("Failed to set read deadline", "request_id", c.requestID, "error", err)
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("WebSocket unexpected close", "request_id", c.requestID, "error", err)
			}
			return
		}
		// Incoming client messages are ignored.
	}
}

// writePump is the only writer for c.conn.
func (h *WebSocketHandler) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			h.logger.Debug("Error closing connection in writePump", "request_id", c.requestID, "error", err)
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				h.logger.Error("Failed to set write deadline", "request_id", c.requestID, "error", err)
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.logger.Debug("Write failed, closing connection", "request_id", c.requestID, "error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				h.logger.Error("Failed to set write deadline", "request_id", c.requestID, "error", err)
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.logger.Debug("Ping failed, closing connection", "request_id", c.requestID, "error", err)
				return
			}
		}
	}
}

// GetConnectedClients returns the number of connected clients.
func (h *WebSocketHandler) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Shutdown stops the hub. Connected clients receive a close frame.
func (h *WebSocketHandler) Shutdown() {
	h.closeOnce.Do(func() { close(h.shutdown) })
}

// Close shuts the hub down and waits for it to finish.
func (h *WebSocketHandler) Close() error {
	h.Shutdown()
	<-h.done
	h.logger.Info("WebSocket handler closed")
	return nil
}

type nopStreamRecorder struct{}

func (nopStreamRecorder) SetStreamClients(int)           {}
func (nopStreamRecorder) IncrementStreamMessages(string) {}
func (nopStreamRecorder) IncrementStreamDropped()        {}
