package chat

import "sync"

// Presence tracks currently connected sockets by connection ID.
// Safe for concurrent use.
type Presence struct {
	mu    sync.Mutex
	conns map[string]struct{}
}

// NewPresence constructs an empty presence tracker.
func NewPresence() *Presence {
	return &Presence{conns: make(map[string]struct{})}
}

// Add records a connection. Adding the same ID twice is a no-op.
func (p *Presence) Add(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[id] = struct{}{}
}

// Remove forgets a connection.
func (p *Presence) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.conns, id)
}

// Count returns the number of connected sockets.
func (p *Presence) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.conns)
}
