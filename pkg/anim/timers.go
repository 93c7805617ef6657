package anim

import (
	"container/heap"
	"sync/atomic"
	"time"
)

// Timer is a pending one-shot callback.
type Timer struct {
	at       time.Duration // scheduler elapsed time when due
	seq      uint64
	fn       func()
	index    int
	canceled atomic.Bool
	s        *Scheduler
}

// Cancel prevents the timer from firing. Canceling a fired or already
// canceled timer is a no-op.
func (t *Timer) Cancel() {
	if t == nil || t.canceled.Swap(true) {
		return
	}
	t.s.mu.Lock()
	if t.index >= 0 {
		heap.Remove(&t.s.timers, t.index)
	}
	t.s.mu.Unlock()
}

// timerHeap orders timers by due time, then registration order.
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
