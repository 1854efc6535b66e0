package classifier

import (
	"sync"
	"sync/atomic"
)

// Handle is the process-wide current-model reference. Readers load the
// pointer without locking and may observe a model from just before a
// refresh; writers serialize on the mutex so swaps never interleave.
type Handle struct {
	mu  sync.Mutex
	cur atomic.Pointer[Model]
}

func NewHandle(m *Model) *Handle {
	h := &Handle{}
	h.cur.Store(m)
	return h
}

func (h *Handle) Current() *Model {
	return h.cur.Load()
}

func (h *Handle) Swap(m *Model) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cur.Store(m)
}
