// internal/presence/registry.go
package presence

import (
	"strconv"
	"sync"
)

// Registry tracks the presence-channel clients connected to this process.
// It is ephemeral by design: entries live only as long as their connection,
// and identifiers are never reused within a process lifetime. Connect and
// Disconnect are the only mutation points and serialize on the mutex.
type Registry struct {
	mu      sync.Mutex
	next    int
	clients map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]struct{})}
}

// Connect registers a new connection and returns its identifier.
func (r *Registry) Connect() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	id := strconv.Itoa(r.next)
	r.clients[id] = struct{}{}
	return id
}

// Disconnect removes the entry for id. Unknown ids are a no-op, so cleanup
// paths can run unconditionally.
func (r *Registry) Disconnect(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Count reports how many clients are currently connected.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Connected reports whether id is currently registered.
func (r *Registry) Connected(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.clients[id]
	return ok
}
