package service

import "sync"

// LoginGate admits at most one login per browser context at a time. A
// ProviderRegistry shares one gate across every provider it builds, so a
// provider rebuilt after eviction still sees a login started by its
// predecessor.
type LoginGate struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLoginGate() *LoginGate {
	return &LoginGate{held: make(map[string]struct{})}
}

// TryAcquire claims the context and reports whether it was free.
func (g *LoginGate) TryAcquire(contextID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[contextID]; busy {
		return false
	}
	g.held[contextID] = struct{}{}
	return true
}

func (g *LoginGate) Release(contextID string) {
	g.mu.Lock()
	delete(g.held, contextID)
	g.mu.Unlock()
}

// Held reports whether a login is in flight for the context.
func (g *LoginGate) Held(contextID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.held[contextID]
	return busy
}
