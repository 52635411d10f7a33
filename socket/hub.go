package socket

import (
	"context"
	"encoding/json"
	"sync"

	"corneradvisor/pkg/logger"
)

const (
	ReviewCreatedType = "REVIEW_CREATED"
	ReviewUpdatedType = "REVIEW_UPDATED"
	ReviewDeletedType = "REVIEW_DELETED"

	// AllServices is the room for clients that subscribed without a serviceId.
	// They receive every event.
	AllServices = ""

	eventQueueSize = 64
)

// Event describes a change to a review.
type Event struct {
	Type      string          `json:"type"`
	ServiceID string          `json:"serviceId,omitempty"`
	ReviewID  string          `json:"reviewId"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type Hub struct {
	Rooms      map[string]map[*Client]bool // serviceId -> clients
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan Event
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan Event, eventQueueSize),
		done:       make(chan struct{}),
	}
}

// Run owns room membership until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.ServiceID] == nil {
				h.Rooms[client.ServiceID] = make(map[*Client]bool)
			}
			h.Rooms[client.ServiceID][client] = true
			h.mu.Unlock()
			logger.Sugar.Debugf("Client joined review feed for service %q", client.ServiceID)

		case client := <-h.Unregister:
			h.remove(client)

		case ev := <-h.broadcast:
			h.deliver(ev)
		}
	}
}

// Publish queues ev for delivery. It never blocks the caller; when the
// queue is full the event is dropped.
func (h *Hub) Publish(ev Event) {
	select {
	case h.broadcast <- ev:
	default:
		logger.Sugar.Warnf("Review event queue full, dropping %s for review %s", ev.Type, ev.ReviewID)
	}
}

// ClientCount reports how many clients are in the room for serviceID.
func (h *Hub) ClientCount(serviceID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Rooms[serviceID])
}

func (h *Hub) deliver(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling review event: %v", err)
		return
	}

	// Collect recipients under the lock, send outside it.
	h.mu.Lock()
	clientsToSend := make([]*Client, 0, len(h.Rooms[AllServices])+len(h.Rooms[ev.ServiceID]))
	for client := range h.Rooms[AllServices] {
		clientsToSend = append(clientsToSend, client)
	}
	if ev.ServiceID != AllServices {
		for client := range h.Rooms[ev.ServiceID] {
			clientsToSend = append(clientsToSend, client)
		}
	}
	h.mu.Unlock()

	for _, client := range clientsToSend {
		select {
		case client.Send <- payload:
		default:
			logger.Sugar.Warnf("Client send buffer for service %q is full. Dropping client.", client.ServiceID)
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.Rooms[client.ServiceID]
	if !ok || !room[client] {
		return
	}
	delete(room, client)
	close(client.Send)
	if len(room) == 0 {
		delete(h.Rooms, client.ServiceID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for serviceID, room := range h.Rooms {
		for client := range room {
			close(client.Send)
		}
		delete(h.Rooms, serviceID)
	}
}
