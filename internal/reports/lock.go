package reports

import (
	"sync"

	"github.com/google/uuid"
)

// cycleLocks serializes work per review cycle. Entries are reference counted
// and removed once no caller holds or waits on them.
type cycleLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*cycleLock
}

type cycleLock struct {
	mu   sync.Mutex
	refs int
}

func newCycleLocks() *cycleLocks {
	return &cycleLocks{locks: make(map[uuid.UUID]*cycleLock)}
}

// Lock blocks until the cycle is free and returns the matching unlock func.
func (c *cycleLocks) Lock(cycleID uuid.UUID) func() {
	c.mu.Lock()
	l, ok := c.locks[cycleID]
	if !ok {
		l = &cycleLock{}
		c.locks[cycleID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, cycleID)
		}
		c.mu.Unlock()
	}
}

func (c *cycleLocks) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.locks)
}
