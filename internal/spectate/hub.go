// Package spectate streams game notifications to websocket clients and
// accepts commands from them.
package spectate

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/event"
	"github.com/samdwyer/skirmish/internal/game"
)

const (
	sendBuffer     = 256
	commandBuffer  = 64
	writeWait      = 5 * time.Second
	maxMessageSize = 4096
)

// Message is the JSON frame sent for every notification.
type Message struct {
	Topic   event.Topic `json:"topic"`
	Payload any         `json:"payload"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans notifications out to connected clients. Commands read from
// clients are queued on Commands for the loop goroutine.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	commands chan game.Command
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHub creates a hub with no clients.
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:  make(map[*client]struct{}),
		commands: make(chan game.Command, commandBuffer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     sameOrigin,
		},
		log: log,
	}
}

// Attach forwards notifications on bus to the clients. With no topics given
// every topic in event.AllTopics is forwarded.
func (h *Hub) Attach(bus *event.Bus, topics ...event.Topic) (detach func()) {
	if len(topics) == 0 {
		topics = event.AllTopics
	}
	unsubs := make([]func(), 0, len(topics))
	for _, topic := range topics {
		unsubs = append(unsubs, bus.Subscribe(topic, h.Broadcast))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// sameOrigin admits clients without an Origin header and browsers on a page
// served from the hub's own host. Clients can reset or move units, so other
// sites must not reach the hub.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// Commands returns the queue of client commands.
func (h *Hub) Commands() <-chan game.Command {
	return h.commands
}

// Broadcast sends ev to every client without blocking. A client whose send
// buffer is full is dropped.
func (h *Hub) Broadcast(ev event.Event) {
	data, err := json.Marshal(Message{Topic: ev.Topic, Payload: ev.Payload})
	if err != nil {
		h.log.Warn("encode notification", zap.String("topic", string(ev.Topic)), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn("dropping slow spectator", zap.String("remote", c.conn.RemoteAddr().String()))
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and serves it until the
// client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.Info("spectator connected", zap.String("remote", conn.RemoteAddr().String()))

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		h.log.Info("spectator disconnected", zap.String("remote", c.conn.RemoteAddr().String()))
	}()
	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd game.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			h.log.Debug("bad command", zap.Error(err))
			continue
		}
		select {
		case h.commands <- cmd:
		default:
			h.log.Warn("command queue full", zap.String("command", string(cmd.Type)))
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
