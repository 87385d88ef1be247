// internal/session/locks.go
package session

import "sync"

// codeLocks hands out one mutex per session code so mutations of the same
// session serialize instead of racing their load/save pairs. Locks are never
// discarded; the map grows by one small entry per distinct code seen.
type codeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCodeLocks() *codeLocks {
	return &codeLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for code and returns it, enabling the
// `defer locks.lock(code).Unlock()` pattern.
func (c *codeLocks) lock(code string) *sync.Mutex {
	c.mu.Lock()
	m, ok := c.locks[code]
	if !ok {
		m = &sync.Mutex{}
		c.locks[code] = m
	}
	c.mu.Unlock()
	m.Lock()
	return m
}
