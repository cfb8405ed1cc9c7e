package events

import (
	"context"
	"sync"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/logging"
)

// Publisher receives every session event.
type Publisher interface {
	Publish(ctx context.Context, event models.SessionEvent) error
}

// Subscriber streams session events until ctx is done. Both Hub and
// RedisPublisher implement it, so a websocket can follow the local process or
// every process sharing the Redis channel.
type Subscriber interface {
	SubscribeSessionEvents(ctx context.Context) (<-chan models.SessionEvent, error)
}

// Hub fans session events out to in-process subscribers such as websocket
// connections. Publishing never blocks: a subscriber whose buffer is full misses
// the event and catches up on the next one, since every event carries a full snapshot.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan models.SessionEvent]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[chan models.SessionEvent]struct{}),
		buffer: buffer,
	}
}

func (h *Hub) Publish(_ context.Context, event models.SessionEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
			logging.Logger.Warn("Hub subscriber lagging, event dropped", "event_id", event.ID)
		}
	}
	return nil
}

// Subscribe returns a channel that is closed when ctx is done.
func (h *Hub) Subscribe(ctx context.Context) <-chan models.SessionEvent {
	ch := make(chan models.SessionEvent, h.buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		h.mu.Unlock()
	}()
	return ch
}

func (h *Hub) SubscribeSessionEvents(ctx context.Context) (<-chan models.SessionEvent, error) {
	return h.Subscribe(ctx), nil
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
