// Package idgen issues time-based schedule entry identifiers. Ids are the
// creation timestamp in base-36 milliseconds, with a counter suffix when
// several ids are handed out within the same millisecond. Ids are never
// reused within a process.
package idgen

import (
	"strconv"
	"sync"
	"time"
)

// Generator issues unique, roughly sortable entry ids.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	lastMs  int64
	counter int
}

// NewGenerator creates a Generator backed by the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock creates a Generator with an injectable clock.
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns the next identifier.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms == g.lastMs {
		g.counter++
	} else {
		g.lastMs = ms
		g.counter = 0
	}

	id := strconv.FormatInt(ms, 36)
	if g.counter > 0 {
		id += "-" + strconv.Itoa(g.counter)
	}
	return id
}
