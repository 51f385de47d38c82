package iso8583

import "sync"

// MessagePool is an explicitly constructed pool of reusable Message shells
// for high-throughput parsing. A pooled Message has exactly one live
// borrower; Release clears all field data before the instance goes back on
// the free list, and callers must not retain references afterwards.
//
// A single mutex guards acquire and release. No per-field locking exists
// because a Message is never shared across concurrent borrowers.
type MessagePool struct {
	mu   sync.Mutex
	free []*Message
	max  int
}

// NewMessagePool creates a pool retaining at most size released messages.
func NewMessagePool(size int) *MessagePool {
	return &MessagePool{
		free: make([]*Message, 0, size),
		max:  size,
	}
}

// Acquire returns an empty message shell, recycled when one is available.
func (p *MessagePool) Acquire() *Message {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		m := p.free[n-1]
		p.free = p.free[:n-1]
		p.mu.Unlock()

		return m
	}
	p.mu.Unlock()

	return &Message{fields: make(map[int]string, 16)}
}

// Release clears the message and returns it to the free list. The pool
// drops the instance when it is already at capacity.
func (p *MessagePool) Release(m *Message) {
	if m == nil {
		return
	}
	m.reset()

	p.mu.Lock()
	if len(p.free) < p.max {
		p.free = append(p.free, m)
	}
	p.mu.Unlock()
}

// Len returns the number of idle messages currently pooled.
func (p *MessagePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.free)
}

// Cap returns the pool's retention limit.
func (p *MessagePool) Cap() int {
	return p.max
}

// Clear drops every idle message from the pool.
func (p *MessagePool) Clear() {
	p.mu.Lock()
	p.free = p.free[:0]
	p.mu.Unlock()
}
