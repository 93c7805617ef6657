package anim

import (
	"container/heap"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Subscription is a registered frame or paint callback.
type Subscription struct {
	id       uint64
	paint    bool
	frame    func(dt time.Duration)
	draw     func()
	canceled atomic.Bool
	s        *Scheduler
}

// Cancel unregisters the callback. It takes effect immediately, even for a
// step already in progress.
func (sub *Subscription) Cancel() {
	if sub == nil || sub.canceled.Swap(true) {
		return
	}
	s := sub.s
	s.mu.Lock()
	defer s.mu.Unlock()
	match := func(o *Subscription) bool { return o == sub }
	if sub.paint {
		s.paints = slices.DeleteFunc(s.paints, match)
	} else {
		s.frames = slices.DeleteFunc(s.frames, match)
	}
}

// Scheduler is a cooperative animation loop. See the package documentation.
type Scheduler struct {
	run sync.Mutex // serializes steps and Do

	mu      sync.Mutex // guards the registries below
	frames  []*Subscription
	paints  []*Subscription
	timers  timerHeap
	nextID  uint64
	elapsed time.Duration
	steps   uint64

	clock    Clock
	interval time.Duration
	logger   *log.Logger

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the time source used in live mode.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithInterval sets the live-mode tick interval.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// NewScheduler creates an idle scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:    SystemClock{},
		interval: FrameInterval,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// OnFrame registers fn to run every step with the step's elapsed time.
func (s *Scheduler) OnFrame(fn func(dt time.Duration)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sub := &Subscription{id: s.nextID, frame: fn, s: s}
	s.frames = append(s.frames, sub)
	return sub
}

// OnPaint registers fn to run every step after all frame subscribers.
func (s *Scheduler) OnPaint(fn func()) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sub := &Subscription{id: s.nextID, paint: true, draw: fn, s: s}
	s.paints = append(s.paints, sub)
	return sub
}

// After schedules fn to run once, d of loop time from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := &Timer{at: s.elapsed + d, seq: s.nextID, fn: fn, s: s}
	heap.Push(&s.timers, t)
	return t
}

// Do runs fn on the loop, between steps. It must not be called from inside a
// scheduler callback.
func (s *Scheduler) Do(fn func()) {
	s.run.Lock()
	defer s.run.Unlock()
	fn()
}

// Step advances the loop by dt: due timers, then frames, then paints.
func (s *Scheduler) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.run.Lock()
	defer s.run.Unlock()

	s.mu.Lock()
	s.elapsed += dt
	s.steps++
	s.mu.Unlock()

	for {
		t := s.popDue()
		if t == nil {
			break
		}
		if !t.canceled.Swap(true) {
			t.fn()
		}
	}

	s.mu.Lock()
	frames := slices.Clone(s.frames)
	s.mu.Unlock()
	for _, sub := range frames {
		if !sub.canceled.Load() {
			sub.frame(dt)
		}
	}

	s.mu.Lock()
	paints := slices.Clone(s.paints)
	s.mu.Unlock()
	for _, sub := range paints {
		if !sub.canceled.Load() {
			sub.draw()
		}
	}
}

func (s *Scheduler) popDue() *Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 || s.timers[0].at > s.elapsed {
		return nil
	}
	return heap.Pop(&s.timers).(*Timer)
}

// Reset cancels every timer and subscription. When it returns no previously
// registered callback will run again.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.frames {
		sub.canceled.Store(true)
	}
	for _, sub := range s.paints {
		sub.canceled.Store(true)
	}
	for _, t := range s.timers {
		t.canceled.Store(true)
		t.index = -1
	}
	s.frames, s.paints, s.timers = nil, nil, nil
}

// Pending reports the number of registered subscriptions and timers.
func (s *Scheduler) Pending() (subscriptions, timers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames) + len(s.paints), len(s.timers)
}

// Elapsed returns the total loop time stepped so far.
func (s *Scheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Steps returns the number of steps run.
func (s *Scheduler) Steps() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Start drives steps from a ticker until Stop. Calling Start on a running
// scheduler does nothing.
func (s *Scheduler) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.loop(s.stopCh)
	s.logger.Debug("animation loop started", "interval", s.interval)
}

// Stop halts live mode and waits for the loop goroutine to exit. It is
// idempotent and must not be called from a scheduler callback.
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Debug("animation loop stopped", "steps", s.Steps())
}

// Running reports whether live mode is active.
func (s *Scheduler) Running() bool { return s.running.Load() }

func (s *Scheduler) loop(stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := s.clock.Now()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := s.clock.Now()
			dt := now.Sub(last)
			last = now
			// Cap catch-up after a stall so particles don't teleport.
			if limit := 4 * s.interval; dt > limit {
				dt = limit
			}
			s.Step(dt)
		}
	}
}
