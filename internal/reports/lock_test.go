package reports

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCycleLocks_SerializesSameCycle(t *testing.T) {
	locks := newCycleLocks()
	cycleID := uuid.New()

	var active, overlaps int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(cycleID)
			if atomic.AddInt32(&active, 1) > 1 {
				atomic.AddInt32(&overlaps, 1)
			}
			atomic.AddInt32(&active, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Zero(t, overlaps)
	assert.Equal(t, 0, locks.len(), "released entries are removed")
}

func TestCycleLocks_IndependentCycles(t *testing.T) {
	locks := newCycleLocks()

	unlockA := locks.Lock(uuid.New())
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock(uuid.New())
		unlockB()
		close(done)
	}()
	<-done

	assert.Equal(t, 1, locks.len())
	unlockA()
	assert.Equal(t, 0, locks.len())
}
