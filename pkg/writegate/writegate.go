// Package writegate contains a first-in-first-out mutual exclusion gate.
package writegate

import (
	"sync"
)

// Gate serializes units of work: each operation runs to completion before
// the next queued one starts, in strict arrival order. The zero value is
// ready to use.
type Gate struct {
	mutex   sync.Mutex
	busy    bool
	waiters []chan struct{}
}

// Do runs op while holding exclusive access to the gate.
// Operations queued while the gate is busy run in arrival order.
func (g *Gate) Do(op func() error) error {
	g.enter()
	defer g.leave()
	return op()
}

func (g *Gate) enter() {
	g.mutex.Lock()

	if !g.busy {
		g.busy = true
		g.mutex.Unlock()
		return
	}

	ch := make(chan struct{})
	g.waiters = append(g.waiters, ch)
	g.mutex.Unlock()

	<-ch
}

func (g *Gate) leave() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if len(g.waiters) != 0 {
		ch := g.waiters[0]
		g.waiters = g.waiters[1:]
		close(ch)
		return
	}

	g.busy = false
}

func (g *Gate) queueLen() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return len(g.waiters)
}
