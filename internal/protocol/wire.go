package protocol

import "sync"

// OutboundQueue is the ordered queue of serialized frames awaiting the
// transport (spec.md §3, "OutboundQueue"): an append-only sequence of owned
// byte buffers, drained externally by the transport (out of scope for this
// core per spec.md §1).
type OutboundQueue struct {
	mu     sync.Mutex
	frames [][]byte
}

// NewOutboundQueue returns an empty queue.
func NewOutboundQueue() *OutboundQueue { return &OutboundQueue{} }

// Enqueue renders msg to its wire form via EncodeMessage and appends the
// frame. Encode failure is the transport-internal OutOfMemory/allocation
// case from spec.md §4.2 ("allocation failure is swallowed locally"): the
// caller logs and drops rather than propagating, so Enqueue just reports
// the error for the caller to log.
func (q *OutboundQueue) Enqueue(msg *Message) ([]byte, error) {
	frame, err := EncodeMessage(msg)
	if err != nil {
		return nil, err
	}
	q.mu.Lock()
	q.frames = append(q.frames, frame)
	q.mu.Unlock()
	return frame, nil
}

// Drain removes and returns every queued frame in FIFO order.
func (q *OutboundQueue) Drain() [][]byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.frames
	q.frames = nil
	return out
}

// Len reports how many frames are currently queued.
func (q *OutboundQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.frames)
}
