package diagram

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bensonglobal/meridian/pkg/anim"
	"github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/observability"
)

// State is a component lifecycle stage.
type State int

const (
	Uninitialized State = iota
	LayingOut
	Animating
	Resizing
	TornDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case LayingOut:
		return "laying-out"
	case Animating:
		return "animating"
	case Resizing:
		return "resizing"
	case TornDown:
		return "torn-down"
	}
	return "unknown"
}

// Options configures a component.
type Options struct {
	// Debounce coalesces resizes arriving within the window. Zero applies
	// every resize immediately.
	Debounce time.Duration
	// Seed fixes particle randomness. Zero picks a random seed.
	Seed   uint64
	Logger *log.Logger
}

// engine is implemented by each diagram: build state for a size and advance it.
type engine interface {
	name() string
	layout(width, height int)
	advance(dt time.Duration)
}

// lifecycle runs the shared state machine. Callers hold mu.
type lifecycle struct {
	mu sync.Mutex

	sched  *anim.Scheduler
	opts   Options
	logger *log.Logger
	eng    engine

	state         State
	width, height int
	elapsed       time.Duration

	frameSub  *anim.Subscription   // owned by the current layout
	pending   *anim.Timer          // debounced resize
	listeners []*anim.Subscription // external paint subscribers, kept across resizes
}

func (l *lifecycle) init(sched *anim.Scheduler, opts Options, eng engine) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	l.sched, l.opts, l.logger, l.eng = sched, opts, opts.Logger, eng
}

func (l *lifecycle) mount(width, height int) error {
	if l.state != Uninitialized {
		return errors.New(errors.ErrCodeInvalidState, "mount: component is %s", l.state)
	}
	if err := errors.ValidateDimensions(width, height); err != nil {
		return err
	}
	l.relayout(width, height)
	return nil
}

func (l *lifecycle) resize(width, height int) error {
	switch l.state {
	case Uninitialized, TornDown:
		return errors.New(errors.ErrCodeInvalidState, "resize: component is %s", l.state)
	}
	if err := errors.ValidateDimensions(width, height); err != nil {
		return err
	}
	if l.opts.Debounce <= 0 {
		l.relayout(width, height)
		return nil
	}
	l.pending.Cancel()
	l.state = Resizing
	l.pending = l.sched.After(l.opts.Debounce, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.state != Resizing {
			return
		}
		l.pending = nil
		l.relayout(width, height)
	})
	return nil
}

// relayout cancels the previous layout's callbacks before building the new one
// so no stale frame ever runs against the new geometry.
func (l *lifecycle) relayout(width, height int) {
	l.cancelLayout()
	l.state = LayingOut
	l.width, l.height = width, height

	start := time.Now()
	l.eng.layout(width, height)
	observability.Render().OnLayout(context.Background(), l.eng.name(), width, height, time.Since(start))
	l.logger.Debug("laid out", "diagram", l.eng.name(), "width", width, "height", height)

	l.frameSub = l.sched.OnFrame(func(dt time.Duration) {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.state == TornDown {
			return
		}
		l.elapsed += dt
		l.eng.advance(dt)
	})
	l.state = Animating
}

func (l *lifecycle) cancelLayout() {
	l.pending.Cancel()
	l.pending = nil
	l.frameSub.Cancel()
	l.frameSub = nil
}

func (l *lifecycle) unmount() {
	if l.state == TornDown {
		return
	}
	l.cancelLayout()
	for _, sub := range l.listeners {
		sub.Cancel()
	}
	l.listeners = nil
	l.state = TornDown
	l.logger.Debug("unmounted", "diagram", l.eng.name())
}

func (l *lifecycle) ready(op string) error {
	switch l.state {
	case Uninitialized, TornDown:
		return errors.New(errors.ErrCodeInvalidState, "%s: component is %s", op, l.state)
	}
	return nil
}

// subscribe registers fn to run after every frame. The subscription survives
// resizes and ends at unmount.
func (l *lifecycle) subscribe(fn func()) (func(), error) {
	if l.state == TornDown {
		return nil, errors.New(errors.ErrCodeInvalidState, "subscribe: component is torn-down")
	}
	sub := l.sched.OnPaint(fn)
	l.listeners = append(l.listeners, sub)
	return sub.Cancel, nil
}
