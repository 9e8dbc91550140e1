// Package spectator streams a running duel to websocket clients.
package spectator

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/magefree/creature-duel-go/internal/match"
	"go.uber.org/zap"
)

// Message types sent to spectators.
const (
	MessageBoard         = "board"
	MessageShowAttack    = "show_attack"
	MessageSignalAbility = "signal_ability"
	MessageSignalDamage  = "signal_damage"
	MessageSignalHeal    = "signal_heal"
	MessageUpdate        = "update"
	MessageResult        = "result"
)

const (
	sendBufferSize = 256
	writeWait      = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is a single frame on the spectator stream.
type Message struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id,omitempty"`
	CardID  string `json:"card_id,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Broadcaster fans messages out to spectators.
type Broadcaster interface {
	Broadcast(msg Message)
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected spectators and relays messages to all of them.
// Clients joining mid-match first receive the latest board.
type Hub struct {
	logger     *zap.Logger
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}

	mu        sync.RWMutex
	lastBoard []byte
	count     int
}

// NewHub creates a hub. Call Run to start relaying.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:     logger,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, sendBufferSize),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run relays messages until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.setCount(0)
			return

		case c := <-h.register:
			h.clients[c] = true
			h.setCount(len(h.clients))
			if board := h.latestBoard(); board != nil {
				c.send <- board
			}
			h.logger.Debug("spectator connected", zap.Int("clients", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.setCount(len(h.clients))
				h.logger.Debug("spectator disconnected", zap.Int("clients", len(h.clients)))
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(h.clients, c)
					h.setCount(len(h.clients))
				}
			}
		}
	}
}

// Broadcast queues msg for every spectator. Messages are dropped when the
// queue is full.
func (h *Hub) Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn("failed to encode spectator message", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	if msg.Type == MessageBoard {
		h.mu.Lock()
		h.lastBoard = payload
		h.mu.Unlock()
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("spectator queue full, dropping message", zap.String("type", msg.Type))
	}
}

// BoardView returns a board callback for match.WithBoardView.
func (h *Hub) BoardView() func(match.Snapshot) {
	return func(s match.Snapshot) {
		h.Broadcast(Message{Type: MessageBoard, MatchID: s.MatchID, Data: s})
	}
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

func (h *Hub) latestBoard() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastBoard
}

// ServeHTTP upgrades the request to a websocket spectator connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump(h)
}

// readPump discards client input and detects disconnects.
func (c *client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
