package channel

import (
	"sync"

	"github.com/spec-kit/hashtagpe-console/internal/events"
)

// Counters hold the session-scoped unread counts. They live in memory
// only: a process restart or an identity switch resets them to zero.
// This is intentionally not a durable inbox.
type Counters struct {
	mu     sync.Mutex
	counts map[events.EventType]int64
}

// NewCounters initializes empty counters.
func NewCounters() *Counters {
	return &Counters{counts: make(map[events.EventType]int64)}
}

// Increment bumps the counter for one inbound event.
func (c *Counters) Increment(eventType events.EventType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[eventType]++
}

// PendingPublications is the admin-side unread count.
func (c *Counters) PendingPublications() int64 {
	return c.get(events.EventPublicationPending)
}

// ClientNotifications is the client-side unread count.
func (c *Counters) ClientNotifications() int64 {
	return c.get(events.EventClientNotification)
}

// Snapshot returns a copy of all counters keyed by event name.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[string(k)] = v
	}
	return out
}

// Reset zeroes every counter.
func (c *Counters) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = make(map[events.EventType]int64)
}

func (c *Counters) get(eventType events.EventType) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[eventType]
}
