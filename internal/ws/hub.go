// Package ws pushes view-refresh events to connected clients. The server is
// the only producer: after a mutation the handler broadcasts the refreshed
// projections to every session of the same user, so a second window stays in
// sync without polling.
package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096
)

// Event is the message format pushed to clients.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Client is one connected session of a user.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	user string
}

// NewClient wraps an upgraded connection for the named user.
func NewClient(h *Hub, conn *websocket.Conn, user string) *Client {
	return &Client{hub: h, conn: conn, send: make(chan []byte, 16), user: user}
}

// ReadPump drains the connection until it closes. Clients do not send domain
// messages; all mutations go through the HTTP API.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
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
				log.Printf("websocket error: %v", err)
			}
			return
		}
	}
}

// WritePump pumps events from the hub to the connection.
func (c *Client) WritePump() {
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
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

type targetedEvent struct {
	user    string
	payload []byte
}

// Hub maintains the set of active clients and fans events out to them. Run
// must be looping before Register, Unregister or Notify are called.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan targetedEvent
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan targetedEvent),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Notify sends the event to every connected session of the named user. After
// Stop the event is dropped instead of blocking the caller.
func (h *Hub) Notify(user string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("encode websocket event: %v", err)
		return
	}
	select {
	case h.broadcast <- targetedEvent{user: user, payload: payload}:
	case <-h.done:
	}
}

// Stop terminates the Run loop and releases blocked senders.
func (h *Hub) Stop() {
	close(h.done)
}

// Run is the hub's main loop; start it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
		case ev := <-h.broadcast:
			for c := range h.clients {
				if c.user != ev.user {
					continue
				}
				select {
				case c.send <- ev.payload:
				default:
					// send buffer full, assume disconnected
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}
