package hub

import (
	"encoding/json"
	"log"
	"sync"
)

// Event names pushed over the live channel.
const (
	EventReceiveNotification = "ReceiveNotification"
	EventReceiveMessage      = "ReceiveMessage"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single client connection (one open connection of a
// user). It's essentially a channel the connection's write loop listens to.
type Client chan []byte

// Hub manages all active client connections, keyed by user ID. Delivery is
// at-most-once and non-blocking: the persisted row is the durable source of
// truth, clients reconcile by polling.
type Hub struct {
	users map[uint]map[Client]bool
	mu    sync.RWMutex

	bridge *RedisBridge
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		users: make(map[uint]map[Client]bool),
	}
}

// SetBridge attaches a Redis bridge for cross-node delivery. A nil bridge is
// fine; the hub then only delivers to local connections.
func (h *Hub) SetBridge(b *RedisBridge) {
	h.bridge = b
}

// Subscribe adds a new client connection for a user.
func (h *Hub) Subscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[Client]bool)
	}
	h.users[userID][client] = true
}

// Unsubscribe removes a client connection for a user.
func (h *Hub) Unsubscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.users[userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the write loop to stop.
			if len(clients) == 0 {
				delete(h.users, userID)
			}
		}
	}
}

// Publish sends an event to all of a user's connections, on this node and,
// when a bridge is attached, on other nodes. Fire-and-forget: failures are
// logged and never returned to the caller.
func (h *Hub) Publish(userID uint, event Event) {
	h.deliverLocal(userID, event)

	if h.bridge != nil {
		if err := h.bridge.Publish(userID, event); err != nil {
			log.Printf("hub: redis publish for user %d failed: %v", userID, err)
		}
	}
}

func (h *Hub) deliverLocal(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.users[userID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("hub: marshal event for user %d failed: %v", userID, err)
		return
	}

	for client := range clients {
		// Use a non-blocking send to prevent a slow client from blocking the hub.
		select {
		case client <- messageBytes:
		default:
			// Client channel is full, maybe they are disconnected or slow.
			// The unsubscribe logic will handle cleaning this up eventually.
		}
	}
}
