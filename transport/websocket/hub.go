package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rpoletti/sweepbot/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Message is the JSON frame sent to connected clients. State updates carry
// the full game state; custom events carry an event name and payload.
type Message struct {
	SessionID string            `json:"session_id"`
	GameState *engine.GameState `json:"game_state,omitempty"`
	Event     string            `json:"event,omitempty"`
	Data      interface{}       `json:"data,omitempty"`
}

// Client is one connected WebSocket peer, bound to a single session.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub fans game state updates out to the WebSocket clients watching each
// session. Registration and direct state broadcasts lock the registry;
// custom events go through the pump channel so Run serializes them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Client]struct{}

	events chan *Message
}

// NewHub creates an empty hub. Call Run in its own goroutine before serving
// connections.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*Client]struct{}),
		events:   make(chan *Message),
	}
}

// Run pumps queued event frames to their sessions until the process exits.
func (h *Hub) Run() {
	for message := range h.events {
		data, err := json.Marshal(message)
		if err != nil {
			log.Printf("Failed to marshal broadcast message: %v", err)
			continue
		}
		h.deliver(message.SessionID, data)
	}
}

// ServeWS upgrades an HTTP request and attaches the connection to sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, engine.WebSocketBufferSize),
		sessionID: sessionID,
	}

	h.add(client)

	go client.writePump()
	go client.readPump()
}

// BroadcastToSession sends a game state update to all clients in a session.
func (h *Hub) BroadcastToSession(sessionID string, state *engine.GameState) {
	message := &Message{
		SessionID: sessionID,
		GameState: state,
		Event:     "state_update",
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal WebSocket message: %v", err)
		return
	}

	h.deliver(sessionID, data)
}

// BroadcastEvent queues a custom event for all clients in a session.
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.events <- &Message{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	}
}

// ClientCount returns the number of clients currently watching a session.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// add registers a client and greets it so the client can confirm its session
// binding before the first state update arrives.
func (h *Hub) add(client *Client) {
	h.mu.Lock()
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]struct{})
	}
	h.sessions[client.sessionID][client] = struct{}{}
	count := len(h.sessions[client.sessionID])
	h.mu.Unlock()

	log.Printf("Client registered for session %s (total clients: %d)",
		client.sessionID, count)

	hello, err := json.Marshal(&Message{SessionID: client.sessionID, Event: "connected"})
	if err == nil {
		select {
		case client.send <- hello:
		default:
		}
	}
}

// remove unregisters a client, closing its send channel and dropping the
// session entry once the last watcher leaves.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sessions[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}

	log.Printf("Client unregistered from session %s (remaining clients: %d)",
		client.sessionID, len(clients))
}

// deliver writes a marshaled frame to every client of a session. Clients
// whose send buffer is full are dropped rather than allowed to stall the
// caller.
func (h *Hub) deliver(sessionID string, data []byte) {
	h.mu.RLock()
	var stalled []*Client
	for client := range h.sessions[sessionID] {
		select {
		case client.send <- data:
		default:
			stalled = append(stalled, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stalled {
		h.remove(client)
	}
}

// readPump drains the connection until it closes. Client messages are not
// processed; reads exist to service pong handlers and detect disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

// writePump forwards queued frames to the connection and keeps it alive with
// periodic pings. Queued frames are coalesced into one WebSocket message.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			for i := len(c.send); i > 0; i-- {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
