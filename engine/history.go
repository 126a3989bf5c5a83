package engine

import (
	"sync"

	"github.com/liops/vigil/model"
)

// History is a fixed-capacity ring buffer of samples for trend
// inspection. Capacity 0 disables retention entirely.
type History struct {
	buf  []model.Sample
	head int
	size int
	cap  int
	mu   sync.RWMutex
}

// NewHistory creates a ring buffer with the given capacity.
func NewHistory(capacity int) *History {
	return &History{
		buf: make([]model.Sample, capacity),
		cap: capacity,
	}
}

// Push appends a sample, evicting the oldest once full. No-op at
// capacity 0.
func (h *History) Push(s model.Sample) {
	if h.cap == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.head] = s
	h.head = (h.head + 1) % h.cap
	if h.size < h.cap {
		h.size++
	}
}

// Len returns the number of samples stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Latest returns a copy of the most recent sample, or nil when empty.
func (h *History) Latest() *model.Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.size == 0 {
		return nil
	}
	idx := (h.head - 1 + h.cap) % h.cap
	s := h.buf[idx] // copy
	return &s
}

// Snapshot returns a copy of the retained samples ordered oldest first.
func (h *History) Snapshot() []model.Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.Sample, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.head-h.size+i+h.cap)%h.cap]
	}
	return out
}
