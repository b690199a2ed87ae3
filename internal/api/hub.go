package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	hubQueueSize = 64
	writeWait    = 5 * time.Second
)

// Hub fans ledger updates out to websocket subscribers. Clients are
// listen-only: inbound frames are read and discarded to keep the
// connection's close handshake working.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]bool

	queue chan any
	done  chan struct{}
}

// NewHub builds a hub and starts its broadcast loop.
func NewHub(logger *log.Logger) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.With("component", "hub"),
		conns:  make(map[*websocket.Conn]bool),
		queue:  make(chan any, hubQueueSize),
		done:   make(chan struct{}),
	}
	go h.run()
	return h
}

// Broadcast queues a payload for every connected subscriber. Drops the
// payload rather than block when the queue is full; subscribers always
// converge on the next update.
func (h *Hub) Broadcast(v any) {
	select {
	case h.queue <- v:
	default:
		h.logger.Warn("broadcast queue full, dropping update")
	}
}

// ServeWS upgrades the request and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	total := len(h.conns)
	h.mu.Unlock()
	h.logger.Info("subscriber connected", "total", total)

	go h.reader(conn)
}

// reader drains inbound frames until the peer goes away.
func (h *Hub) reader(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		_ = conn.Close()
	}
	total := len(h.conns)
	h.mu.Unlock()
	h.logger.Info("subscriber disconnected", "total", total)
}

func (h *Hub) run() {
	for {
		select {
		case v := <-h.queue:
			h.mu.Lock()
			var dead []*websocket.Conn
			for conn := range h.conns {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(v); err != nil {
					dead = append(dead, conn)
				}
			}
			for _, conn := range dead {
				delete(h.conns, conn)
				_ = conn.Close()
			}
			h.mu.Unlock()

		case <-h.done:
			return
		}
	}
}

// Close stops the broadcast loop and drops every connection.
func (h *Hub) Close() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
	}
	h.conns = make(map[*websocket.Conn]bool)
}
