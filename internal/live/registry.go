package live

import (
	"sync"
)

// Registry owns at most one subscription per key. Re-registering a key
// first releases the previous handle, so a client that re-subscribes to
// the same article can never leak a duplicate subscription. One
// registry per websocket connection; the connection goroutine is the
// single writer.
type Registry struct {
	mu     sync.Mutex
	hub    *Hub
	active map[string]*Subscription
}

func NewRegistry(hub *Hub) *Registry {
	return &Registry{hub: hub, active: make(map[string]*Subscription)}
}

// Register subscribes under key, replacing (and closing) any prior
// subscription held for that key.
func (r *Registry) Register(key, table, articleID, userID string) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.active[key]; ok {
		prev.Close()
	}
	sub := r.hub.Subscribe(table, articleID, userID)
	r.active[key] = sub
	return sub
}

// Release closes and forgets the subscription held for key, if any.
func (r *Registry) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub, ok := r.active[key]; ok {
		sub.Close()
		delete(r.active, key)
	}
}

// ReleaseAll closes every held subscription. Called on disconnect.
func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, sub := range r.active {
		sub.Close()
		delete(r.active, key)
	}
}
