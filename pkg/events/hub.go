package events

import (
	"encoding/json"
	"sync"
)

type observer struct {
	id int
	fn func(Event)
}

// Hub fans configuration changes out to registered observers.
//
// Dispatch is synchronous: Publish invokes every observer that was registered
// when the call started, in registration order, before returning. Each store
// mutation therefore yields exactly one notification per observer, delivered
// in mutation order, with no coalescing and no drops. Subscribing or
// unsubscribing from inside a callback takes effect for the next Publish,
// never the one in flight.
type Hub struct {
	mu     sync.Mutex
	lastID int
	obs    []observer
}

func NewHub() *Hub { return &Hub{} }

// Subscribe registers fn and returns an id to pass to Unsubscribe.
func (h *Hub) Subscribe(fn func(Event)) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastID++
	h.obs = append(h.obs, observer{id: h.lastID, fn: fn})
	return h.lastID
}

func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, o := range h.obs {
		if o.id == id {
			h.obs = append(h.obs[:i:i], h.obs[i+1:]...)
			return
		}
	}
}

// Publish marshals payload and dispatches the event to all current
// observers. The observer list is snapshotted under the lock, so callbacks
// may freely subscribe, unsubscribe or mutate the store again.
func (h *Hub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := Event{Name: name, Data: b}
	h.mu.Lock()
	snapshot := make([]observer, len(h.obs))
	copy(snapshot, h.obs)
	h.mu.Unlock()
	for _, o := range snapshot {
		o.fn(msg)
	}
}

// SubscribeChan adapts an observer to a buffered channel, for transports
// like SSE. The send is non-blocking; a slow consumer loses events at this
// edge only, the callback path above keeps the ordering guarantee.
func (h *Hub) SubscribeChan(buf int) (chan Event, int) {
	ch := make(chan Event, buf)
	id := h.Subscribe(func(e Event) {
		select {
		case ch <- e:
		default:
		}
	})
	return ch, id
}
