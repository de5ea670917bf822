package session

import "sync"

const DefaultHistorySize = 10

// History keeps the most recent rounds; once full the oldest is evicted first.
type History struct {
	mu    sync.RWMutex
	size  int
	ring  []Round
	next  int // slot for the next push
	count int
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{size: size, ring: make([]Round, size)}
}

func (h *History) Push(r Round) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ring[h.next] = r
	h.next = (h.next + 1) % h.size
	if h.count < h.size {
		h.count++
	}
}

// Recent returns the stored rounds, newest first.
func (h *History) Recent() []Round {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Round, 0, h.count)
	for i := 1; i <= h.count; i++ {
		out = append(out, h.ring[(h.next-i+h.size)%h.size])
	}
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ring = make([]Round, h.size)
	h.next, h.count = 0, 0
}
