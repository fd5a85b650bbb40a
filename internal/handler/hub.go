package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/KOFI-GYIMAH/github-activity/internal/models"
	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
	"github.com/gorilla/websocket"
)

type MessageType string

const (
	MessageTypeState MessageType = "state"
	MessageTypeViews MessageType = "views"
)

type UpdateMessage struct {
	Type MessageType `json:"type"`
	Data interface{} `json:"data"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return r.Header.Get("Origin") == "" || sameHost(r)
	},
}

func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(msgs ...UpdateMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, msg := range msgs {
		if err := c.conn.WriteJSON(msg); err != nil {
			return err
		}
	}
	return nil
}

// * Hub pushes every state snapshot, with its derived views, to connected browsers
type Hub struct {
	state     func() models.ViewState
	clientsMu sync.RWMutex
	clients   map[*wsClient]bool
	broadcast chan models.ViewState
}

func NewHub(state func() models.ViewState) *Hub {
	return &Hub{
		state:     state,
		clients:   make(map[*wsClient]bool),
		broadcast: make(chan models.ViewState, 256),
	}
}

// * Publish queues a snapshot; it never blocks the controller. When the
// * queue is full the oldest snapshot makes room, so the newest always goes out.
func (h *Hub) Publish(state models.ViewState) {
	for {
		select {
		case h.broadcast <- state:
			return
		default:
		}

		select {
		case old := <-h.broadcast:
			logger.Warn("Broadcast channel full, dropping state update %d", old.Generation)
		default:
		}
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case state := <-h.broadcast:
			msgs := messagesFor(state)
			for _, c := range h.snapshotClients() {
				if err := c.send(msgs...); err != nil {
					logger.Warn("Error broadcasting to client: %v", err)
					h.remove(c)
				}
			}
		case <-ctx.Done():
			h.clientsMu.Lock()
			for c := range h.clients {
				c.conn.Close()
			}
			h.clients = make(map[*wsClient]bool)
			h.clientsMu.Unlock()
			return
		}
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade error: %v", err)
		return
	}

	c := &wsClient{conn: conn}
	h.clientsMu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.clientsMu.Unlock()
	logger.Debug("WebSocket client connected. Total clients: %d", total)

	if err := c.send(messagesFor(h.state())...); err != nil {
		logger.Warn("Error sending initial state: %v", err)
		h.remove(c)
		return
	}

	// * browsers never send; reading only detects the disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) snapshotClients() []*wsClient {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	out := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

func (h *Hub) remove(c *wsClient) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.conn.Close()
		logger.Debug("WebSocket client disconnected. Total clients: %d", len(h.clients))
	}
}

func messagesFor(state models.ViewState) []UpdateMessage {
	return []UpdateMessage{
		{Type: MessageTypeState, Data: state},
		{Type: MessageTypeViews, Data: buildViews(state)},
	}
}
