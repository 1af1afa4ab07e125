// Package dispatch implements the request-routing core from spec.md §4.6
// and §4.7: the static handler table, the Message-model-driven dispatch
// pipeline, and the outbound-request correlation discipline of §4.2.
package dispatch

// Arena is a per-message scratch allocator (design note §9,
// "Single-threaded allocator arena per message"): Go has no custom
// allocator hook, so this stands in as a bump allocator over a reused
// byte slice, handed to each handler invocation and reset on return. It
// lets a handler build scratch byte buffers (e.g. joining diagnostic
// messages) without a per-call heap allocation.
type Arena struct {
	buf []byte
}

// NewArena returns an Arena with a modest initial capacity.
func NewArena() *Arena {
	return &Arena{buf: make([]byte, 0, 4096)}
}

// Alloc returns a zeroed slice of length n backed by the arena's buffer.
// The slice is invalidated by the next Reset.
func (a *Arena) Alloc(n int) []byte {
	if cap(a.buf)-len(a.buf) < n {
		a.buf = make([]byte, 0, max(2*cap(a.buf), len(a.buf)+n))
	}
	start := len(a.buf)
	a.buf = a.buf[:start+n]
	s := a.buf[start : start+n : start+n]
	clear(s)
	return s
}

// Reset releases every allocation made since the last Reset, for reuse by
// the next message.
func (a *Arena) Reset() {
	a.buf = a.buf[:0]
}
