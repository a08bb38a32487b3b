package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one live-feed subscriber.
type Client struct {
	SessionID string
	Conn      *websocket.Conn
}

// Hub fans prediction updates out to websocket subscribers, grouped by
// session.
type Hub struct {
	clients    map[string]map[*websocket.Conn]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan LiveMessage
}

// NewHub creates an idle hub; call Run on its own goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan LiveMessage, 100),
	}
}

// Run owns the client set; all mutation happens on this goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			conns, ok := h.clients[client.SessionID]
			if !ok {
				conns = make(map[*websocket.Conn]bool)
				h.clients[client.SessionID] = conns
			}
			conns[client.Conn] = true

		case client := <-h.unregister:
			if conns, ok := h.clients[client.SessionID]; ok {
				if conns[client.Conn] {
					delete(conns, client.Conn)
					client.Conn.Close()
				}
				if len(conns) == 0 {
					delete(h.clients, client.SessionID)
				}
			}

		case msg := <-h.broadcast:
			for conn := range h.clients[msg.SessionID] {
				if err := conn.WriteJSON(msg); err != nil {
					log.Printf("live_write_failed session=%s error=%v", msg.SessionID, err)
					conn.Close()
					delete(h.clients[msg.SessionID], conn)
				}
			}
		}
	}
}

// Broadcast queues a message for a session's subscribers. Drops the message
// rather than blocking the recorder when the queue is full.
func (h *Hub) Broadcast(sessionID string, msg LiveMessage) {
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("live_broadcast_dropped session=%s", sessionID)
	}
}

// handleLive upgrades the connection and subscribes it to a session's feed.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.sessions.Get(id); err != nil {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, err.Error(), map[string]any{"id": id})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live_upgrade_failed session=%s error=%v", id, err)
		return
	}

	client := &Client{SessionID: id, Conn: conn}
	s.hub.register <- client

	log.Printf("live_subscribed session=%s remote=%s", id, conn.RemoteAddr())

	// Reader loop exists only to detect disconnects; the feed is one-way.
	go func() {
		defer func() { s.hub.unregister <- client }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
