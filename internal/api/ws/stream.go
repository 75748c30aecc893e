// Package ws streams committed board mutations to connected clients.
//
// Each authenticated connection subscribes to its own account's event
// stream; a browser tab learns about edits made in another tab without
// polling.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Connection established
//   - mutation: A board mutation committed
//   - pong: Ping reply
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/GridBoard/internal/domain/board"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/GridBoard/internal/providers/auth"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// client serializes writes to a single connection. gorilla/websocket
// allows one concurrent writer per conn, and broadcasts arrive on the
// mutating request's goroutine while the read loop answers pings.
type client struct {
	writeMu sync.Mutex
	conn    *websocket.Conn
}

func (c *client) write(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub fans board mutations out to an account's live connections
type Hub struct {
	mu      sync.RWMutex
	conns   map[string]map[*client]struct{} // Keyed by account id
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHub creates an empty hub
func NewHub(logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Hub{
		conns:  make(map[string]map[*client]struct{}),
		logger: logger,
	}
}

// WithMetrics attaches connection metrics
func (h *Hub) WithMetrics(metrics *monitoring.Metrics) *Hub {
	h.metrics = metrics
	return h
}

// Broadcast pushes a mutation event to every connection for the account.
// Connections that fail to take the write are dropped.
func (h *Hub) Broadcast(accountID string, event board.Event) {
	payload, err := sonic.Marshal(map[string]interface{}{
		"type":       "mutation",
		"kind":       event.Kind,
		"project_id": event.ProjectID,
		"window_id":  event.WindowID,
		"timestamp":  time.Now().Unix(),
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.conns[accountID]))
	for cl := range h.conns[accountID] {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	for _, cl := range targets {
		if err := cl.write(payload); err != nil {
			h.logger.Debug("dropping stalled stream connection", zap.Error(err))
			h.remove(accountID, cl)
			cl.conn.Close()
		}
	}
}

// ConnectionCount returns how many connections an account holds
func (h *Hub) ConnectionCount(accountID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[accountID])
}

func (h *Hub) add(accountID string, cl *client) {
	h.mu.Lock()
	if h.conns[accountID] == nil {
		h.conns[accountID] = make(map[*client]struct{})
	}
	h.conns[accountID][cl] = struct{}{}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
	}
}

func (h *Hub) remove(accountID string, cl *client) {
	h.mu.Lock()
	set, ok := h.conns[accountID]
	if ok {
		if _, present := set[cl]; present {
			delete(set, cl)
			if len(set) == 0 {
				delete(h.conns, accountID)
			}
			if h.metrics != nil {
				h.metrics.WSConnections.Dec()
			}
		}
	}
	h.mu.Unlock()
}

// Handler upgrades stream connections
type Handler struct {
	hub    *Hub
	auth   *auth.Service
	logger *logging.Logger
}

// NewHandler creates a WebSocket handler
func NewHandler(hub *Hub, authSvc *auth.Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{hub: hub, auth: authSvc, logger: logger}
}

// HandleConnection authenticates, upgrades, and pumps the connection.
// The token rides the query string because browsers cannot set headers
// on WebSocket upgrades.
func (h *Handler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = c.GetHeader("x-auth-token")
	}
	accountID, err := h.auth.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.pump(accountID, conn)
}

// pump registers the connection and runs its read loop until the peer
// goes away.
func (h *Handler) pump(accountID string, conn *websocket.Conn) {
	defer conn.Close()

	cl := &client{conn: conn}
	h.hub.add(accountID, cl)
	defer h.hub.remove(accountID, cl)

	h.send(cl, map[string]interface{}{
		"type":    "system",
		"message": "Connected to GridBoard stream",
	})

	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		switch msg.Type {
		case "ping":
			h.send(cl, map[string]interface{}{"type": "pong"})
		default:
			h.send(cl, map[string]interface{}{
				"type":  "error",
				"error": "unknown message type",
			})
		}
	}
}

func (h *Handler) send(cl *client, payload map[string]interface{}) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		return
	}
	if err := cl.write(data); err != nil {
		h.logger.Debug("stream write failed", zap.Error(err))
	}
}
