// Package hub fans events out from the terminal core to its consumers. The
// supervisor and registry publish here; the desktop webview bridge and the
// activity tracker subscribe.
package hub

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aterm-app/aterm/internal/domain/events"
	"github.com/aterm-app/aterm/internal/domain/ports"
)

// Hub dispatches published events to every subscriber. All publishes funnel
// through one buffered channel into a single dispatch goroutine, so events
// published from one goroutine are delivered in publish order; the supervisor
// relies on this for per-session output ordering, and the webview bridge for
// replaying a coherent stream to the frontend.
type Hub struct {
	subscribers map[string]ports.Subscriber

	broadcast  chan events.Event
	register   chan ports.Subscriber
	unregister chan string

	// mu protects subscribers and running
	mu      sync.RWMutex
	done    chan struct{}
	running bool
}

// New creates a hub. The broadcast buffer absorbs output bursts from
// processes that write faster than the frontend consumes.
func New() *Hub {
	return &Hub{
		subscribers: make(map[string]ports.Subscriber),
		broadcast:   make(chan events.Event, 256),
		register:    make(chan ports.Subscriber),
		unregister:  make(chan string),
		done:        make(chan struct{}),
	}
}

// Start launches the dispatch loop. Safe to call more than once.
func (h *Hub) Start() error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return nil
	}
	h.running = true
	h.mu.Unlock()

	log.Debug().Msg("event hub started")

	go h.run()
	return nil
}

// Stop shuts the dispatch loop down, discards anything still queued and
// closes every subscriber. Events published after Stop are dropped.
func (h *Hub) Stop() error {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return nil
	}
	h.running = false
	h.mu.Unlock()

	close(h.done)

	// The dispatch loop is gone; whatever it never picked up is stale.
drain:
	for {
		select {
		case <-h.broadcast:
		default:
			break drain
		}
	}

	h.mu.Lock()
	for _, sub := range h.subscribers {
		_ = sub.Close()
	}
	h.subscribers = make(map[string]ports.Subscriber)
	h.mu.Unlock()

	log.Debug().Msg("event hub stopped")
	return nil
}

// run is the dispatch loop.
func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			return

		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub.ID()] = sub
			h.mu.Unlock()
			log.Debug().Str("subscriber_id", sub.ID()).Msg("subscriber registered")

		case id := <-h.unregister:
			h.mu.Lock()
			if sub, ok := h.subscribers[id]; ok {
				_ = sub.Close()
				delete(h.subscribers, id)
			}
			h.mu.Unlock()
			log.Debug().Str("subscriber_id", id).Msg("subscriber unregistered")

		case event := <-h.broadcast:
			h.mu.RLock()
			for id, sub := range h.subscribers {
				if err := sub.Send(event); err != nil {
					log.Warn().
						Str("subscriber_id", id).
						Err(err).
						Msg("failed to send event to subscriber")
					// A subscriber that cannot accept events is dead weight;
					// queue its removal without blocking dispatch.
					go func(subID string) {
						select {
						case h.unregister <- subID:
						default:
						}
					}(id)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish queues an event for dispatch. Never blocks: when the buffer is
// full the event is dropped and logged, which starves previews, not the
// terminal byte stream itself (the supervisor owns that).
func (h *Hub) Publish(event events.Event) {
	select {
	case h.broadcast <- event:
		log.Trace().
			Str("event_type", string(event.Type())).
			Msg("event published")
	default:
		log.Warn().
			Str("event_type", string(event.Type())).
			Msg("event dropped: broadcast channel full")
	}
}

// Subscribe adds a subscriber.
func (h *Hub) Subscribe(sub ports.Subscriber) {
	select {
	case h.register <- sub:
	case <-h.done:
	}
}

// Unsubscribe removes a subscriber by ID.
func (h *Hub) Unsubscribe(id string) {
	select {
	case h.unregister <- id:
	case <-h.done:
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// IsRunning returns true if the hub is running.
func (h *Hub) IsRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.running
}
