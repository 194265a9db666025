package realtime

import (
	"encoding/json"
	"sync"
)

// Event types pushed to connected users.
const (
	EventTaskCreated      = "task_created"
	EventTaskUpdated      = "task_updated"
	EventTaskAssigned     = "task_assigned"
	EventSubtaskPicked    = "subtask_picked"
	EventReminderDue      = "reminder_due"
	EventApplicationMoved = "application_status_changed"
)

// Event is the wire payload broadcast over the hub. Zero-valued ids are
// omitted.
type Event struct {
	Type          string `json:"type"`
	ApplicationID uint   `json:"application_id,omitempty"`
	TaskID        uint   `json:"task_id,omitempty"`
	SubtaskID     uint   `json:"subtask_id,omitempty"`
	ReminderID    uint   `json:"reminder_id,omitempty"`
	UserID        uint   `json:"user_id,omitempty"`
	Status        string `json:"status,omitempty"`
}

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and broadcasts workflow events to
// them.
type Hub struct {
	mu              sync.RWMutex
	userIDToClients map[uint]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			userIDToClients: make(map[uint]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIDToClients[userID]; !ok {
		h.userIDToClients[userID] = make(map[Client]struct{})
	}
	h.userIDToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIDToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIDToClients, userID)
		}
	}
}

// Broadcast sends a message to all clients of a user.
func (h *Hub) Broadcast(userID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.userIDToClients[userID]
	for c := range clients {
		if ok := c.Send(message); !ok {
			// client write failed; let the handler clean it up on its side
		}
	}
}

// BroadcastEvent marshals the event and sends it to all clients of a user.
// Marshal failure is silently dropped; events are best-effort.
func (h *Hub) BroadcastEvent(userID uint, evt Event) {
	bytes, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(userID, bytes)
}
