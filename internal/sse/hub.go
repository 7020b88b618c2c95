package sse

import (
	"encoding/json"
	"sync"
)

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client is one open notification stream. Connections are keyed by the
// authenticated user's email since notifications are addressed by email.
type Client struct {
	ID    string
	Email string
	Send  chan []byte
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *recipientMessage
	mu         sync.RWMutex
}

type recipientMessage struct {
	// Email selects the recipient; empty means every connected client.
	Email string
	Event Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *recipientMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Event)
			for _, client := range h.clients {
				if msg.Email != "" && client.Email != msg.Email {
					continue
				}
				select {
				case client.Send <- data:
				default:
					// Client buffer full, skip
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyRecipient pushes an event to every stream the recipient has open.
func (h *Hub) NotifyRecipient(email string, event Event) {
	h.broadcast <- &recipientMessage{Email: email, Event: event}
}

// BroadcastAll pushes an event to every connected stream.
func (h *Hub) BroadcastAll(event Event) {
	h.broadcast <- &recipientMessage{Event: event}
}
