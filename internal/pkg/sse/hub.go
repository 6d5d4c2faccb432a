package sse

import (
	"sync"
)

// Event is one server-sent event for a subscriber.
type Event struct {
	OrganizationID string
	Name           string
	Data           interface{}
}

// Hub fans events out to the organization's open notification streams.
// Subscribers are keyed by organization: every admin watching the stream
// sees the organization's dispatched alerts.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe opens a stream for an organization. The returned cleanup must
// be called when the client disconnects.
func (h *Hub) Subscribe(organizationID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[organizationID] == nil {
		h.subscribers[organizationID] = make(map[chan Event]struct{})
	}
	h.subscribers[organizationID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[organizationID], ch)
		close(ch)
		if len(h.subscribers[organizationID]) == 0 {
			delete(h.subscribers, organizationID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every open stream of the organization. A slow
// subscriber's full channel is skipped rather than blocking the publisher.
func (h *Hub) Publish(organizationID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[organizationID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of open streams for an organization.
func (h *Hub) SubscriberCount(organizationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[organizationID]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the number of open streams across all
// organizations.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
