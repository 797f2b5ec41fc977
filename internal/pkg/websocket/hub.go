package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients and broadcasts events to the
// clients watching a group.
type Hub struct {
	// Registered clients organized by group ID
	clients map[uuid.UUID]map[*Client]bool

	// Events waiting to be fanned out
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Event is a server-push notification for one group.
type Event struct {
	// Type of event, e.g. "post.created"
	Type string `json:"type"`

	// Group this event belongs to
	GroupID uuid.UUID `json:"groupId"`

	// Event payload
	Data interface{} `json:"data"`

	// Timestamp when the event was published
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles client registrations and broadcasts until ctx is cancelled.
// On return every client connection is closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			h.logger.Info().Msg("WebSocket hub stopped")
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Publish queues an event for every client watching groupID. It never
// blocks once the hub has stopped.
func (h *Hub) Publish(groupID uuid.UUID, eventType string, payload interface{}) {
	event := &Event{
		Type:      eventType,
		GroupID:   groupID,
		Data:      payload,
		Timestamp: time.Now().UTC(),
	}
	select {
	case h.broadcast <- event:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients for a group
func (h *Hub) ClientCount(groupID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[groupID])
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.groupID]; !ok {
		h.clients[client.groupID] = make(map[*Client]bool)
	}
	h.clients[client.groupID][client] = true

	h.logger.Info().
		Str("groupID", client.groupID.String()).
		Str("userID", client.userID.String()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.groupID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.groupID)
	}

	h.logger.Info().
		Str("groupID", client.groupID.String()).
		Str("userID", client.userID.String()).
		Msg("Client unregistered")
}

// broadcastEvent sends an event to all clients of its group. Clients whose
// send buffer is full are dropped.
func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("groupID", event.GroupID.String()).
			Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[event.GroupID]
	if !ok {
		h.logger.Debug().
			Str("groupID", event.GroupID.String()).
			Msg("No clients in group for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Str("userID", client.userID.String()).Msg("Dropping slow client")
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Str("groupID", event.GroupID.String()).
		Str("type", event.Type).
		Int("clientCount", len(clients)).
		Msg("Event broadcasted to group")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}
