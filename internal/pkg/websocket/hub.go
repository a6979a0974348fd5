package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected portal clients and broadcasts
// dataset-change notifications to them. Clients do not send application
// messages; the socket is a one-way update feed that replaces aggressive
// client-side polling.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	logger zerolog.Logger
}

// Event is the message pushed to connected clients.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// EventDatasetUpdated signals that the local dataset changed and clients
// should refetch.
const EventDatasetUpdated = "dataset_updated"

// NewHub creates a new Hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes register/unregister/broadcast events until the context is
// cancelled. Start it in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug().Msg("websocket hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug().Int("clients", count).Msg("websocket client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug().Int("clients", count).Msg("websocket client disconnected")

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop it rather than blocking the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyDatasetUpdated queues a dataset_updated event for every connected
// client. Safe to call from any goroutine; drops the event if the
// broadcast buffer is full.
func (h *Hub) NotifyDatasetUpdated() {
	payload, err := json.Marshal(Event{
		Type:      EventDatasetUpdated,
		Timestamp: time.Now(),
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to encode dataset event")
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn().Msg("websocket broadcast buffer full, dropping event")
	}
}
