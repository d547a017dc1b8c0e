package notifications

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gastropro/gastropro/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 32
)

// Event represents a JSON payload delivered to live notification subscribers.
type Event struct {
	Event          string `json:"event"`
	Notification   any    `json:"notification,omitempty"`
	NotificationID string `json:"notification_id,omitempty"`
}

type client struct {
	recipientID string
	conn        *websocket.Conn
	send        chan Event
	closeOnce   sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// Hub fans notification events out to connected WebSocket subscribers.
// Clients connect with an optional recipient scope: unscoped clients receive
// every broadcast, scoped clients additionally receive events targeted at them.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
}

// NewHub constructs a notification hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				originHost := hostWithoutPort(origin)
				requestHost := hostWithoutPort(r.Host)
				return originHost == requestHost || isLoopback(originHost)
			},
		},
	}
}

// Serve upgrades the HTTP connection to a WebSocket and registers the subscriber.
// recipientID may be empty for an unscoped staff-wide feed.
func (h *Hub) Serve(recipientID string, w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("notifications: websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		recipientID: recipientID,
		conn:        conn,
		send:        make(chan Event, sendBufferSize),
	}

	h.addClient(cl)
	defer h.removeClient(cl)

	go h.writeLoop(cl)
	h.readLoop(cl)
}

// Broadcast delivers an event to every connected subscriber.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for cl := range h.clients {
		h.enqueue(cl, event)
	}
}

// BroadcastTo delivers an event to subscribers scoped to the given recipient.
func (h *Hub) BroadcastTo(recipientID string, event Event) {
	if recipientID == "" {
		h.Broadcast(event)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for cl := range h.clients {
		if cl.recipientID == recipientID {
			h.enqueue(cl, event)
		}
	}
}

func (h *Hub) enqueue(cl *client, event Event) {
	select {
	case cl.send <- event:
	default:
		// Drop for slow consumers rather than blocking the feed.
	}
}

func (h *Hub) addClient(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl] = struct{}{}
}

func (h *Hub) removeClient(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl)
	h.mu.Unlock()

	cl.close()
	_ = cl.conn.Close()
}

func (h *Hub) writeLoop(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := cl.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) readLoop(cl *client) {
	defer cl.conn.Close()

	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func hostWithoutPort(value string) string {
	value = strings.TrimPrefix(value, "http://")
	value = strings.TrimPrefix(value, "https://")
	value = strings.TrimPrefix(value, "ws://")
	value = strings.TrimPrefix(value, "wss://")
	if idx := strings.Index(value, "/"); idx >= 0 {
		value = value[:idx]
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		return host
	}
	return value
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
