package neopixel

import (
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Guard marks the strip as owned for the duration of a single push. A second caller is refused, never
// queued.
type Guard struct {
	runLock sync.Mutex
	refused atomic.Int64
}

type Unlocker func()

// Acquire takes the strip if nobody else holds it.
func (g *Guard) Acquire() (Unlocker, bool) {
	if !g.runLock.TryLock() {
		n := g.refused.Add(1)
		log.Warn("Refused reentrant strip push: ", n)
		return nil, false
	}

	return func() {
		g.runLock.Unlock()
	}, true
}

// Refused is the number of pushes turned away since start.
func (g *Guard) Refused() int64 {
	return g.refused.Load()
}
