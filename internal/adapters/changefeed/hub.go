// Package changefeed fans "jobs changed" wake-ups out to subscribers.
package changefeed

import "sync"

// Hub implements ports.ChangeFeed for a store that knows when it mutates.
// Each subscriber gets its own goroutine and a one-slot mailbox, so a burst
// of Notify calls while a callback runs collapses into a single extra call.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan struct{})}
}

func (h *Hub) Subscribe(onChange func()) (func(), error) {
	ch := make(chan struct{}, 1)
	done := make(chan struct{})

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ch:
				onChange()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(done)
		})
	}, nil
}

// Notify never blocks.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len reports the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
