package flow

import (
	"math/rand/v2"
	"time"

	"github.com/bensonglobal/meridian/pkg/geo"
)

// Phase is the lifecycle stage of a particle.
type Phase int

const (
	// Waiting means the lane's first particle has not spawned yet.
	Waiting Phase = iota
	FadeIn
	Traveling
	FadeOut
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case FadeIn:
		return "fade-in"
	case Traveling:
		return "traveling"
	case FadeOut:
		return "fade-out"
	}
	return "unknown"
}

// Timing configures particle phase durations.
type Timing struct {
	Fade         time.Duration // fade-in and fade-out each
	MinTravel    time.Duration
	TravelJitter time.Duration // travel lasts MinTravel + rand*TravelJitter
	MaxStagger   time.Duration // initial spawn delay is rand*MaxStagger
	MaxOpacity   float64
}

// DefaultTiming matches the network diagram's particle motion.
func DefaultTiming() Timing {
	return Timing{
		Fade:         300 * time.Millisecond,
		MinTravel:    2500 * time.Millisecond,
		TravelJitter: 1500 * time.Millisecond,
		MaxStagger:   2 * time.Second,
		MaxOpacity:   0.8,
	}
}

// Particle is the visible state of one lane's particle.
type Particle struct {
	Lane     int       `json:"lane"`
	Phase    Phase     `json:"phase"`
	Progress float64   `json:"progress"`
	Opacity  float64   `json:"opacity"`
	Position geo.Point `json:"position"`
	Serial   int       `json:"serial"` // increments each time the lane respawns
}

type laneState struct {
	phase   Phase
	elapsed time.Duration // time spent in the current phase
	wait    time.Duration // stagger before first spawn
	travel  time.Duration
	serial  int
}

// Animator advances particles over a set of lanes.
// It is not safe for concurrent use.
type Animator struct {
	lanes  []Lane
	state  []laneState
	timing Timing
	rng    *rand.Rand
}

// Option configures an Animator.
type Option func(*Animator)

// WithSeed makes particle timing reproducible.
func WithSeed(seed uint64) Option {
	return func(a *Animator) {
		a.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
}

// WithTiming overrides the phase durations.
func WithTiming(t Timing) Option {
	return func(a *Animator) { a.timing = t }
}

// NewAnimator creates an animator with one lane per entry, each waiting for
// its staggered first spawn.
func NewAnimator(lanes []Lane, opts ...Option) *Animator {
	a := &Animator{
		lanes:  lanes,
		state:  make([]laneState, len(lanes)),
		timing: DefaultTiming(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	for i := range a.state {
		a.state[i] = laneState{phase: Waiting, wait: a.jitter(a.timing.MaxStagger)}
	}
	return a
}

// Lanes returns the animated lanes.
func (a *Animator) Lanes() []Lane { return a.lanes }

// Advance moves every lane forward by dt. Time left over at a phase boundary
// carries into the next phase, and a finished particle spawns its successor
// in the same call.
func (a *Animator) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	for i := range a.state {
		a.advanceLane(&a.state[i], dt)
	}
}

func (a *Animator) advanceLane(s *laneState, dt time.Duration) {
	for dt > 0 {
		var limit time.Duration
		switch s.phase {
		case Waiting:
			limit = s.wait
		case FadeIn, FadeOut:
			limit = a.timing.Fade
		case Traveling:
			limit = s.travel
		}
		left := limit - s.elapsed
		if dt < left {
			s.elapsed += dt
			return
		}
		dt -= left
		s.elapsed = 0
		a.nextPhase(s)
	}
}

func (a *Animator) nextPhase(s *laneState) {
	switch s.phase {
	case Waiting:
		a.spawn(s)
	case FadeIn:
		s.phase = Traveling
	case Traveling:
		s.phase = FadeOut
	case FadeOut:
		a.spawn(s)
	}
}

func (a *Animator) spawn(s *laneState) {
	s.phase = FadeIn
	s.travel = a.timing.MinTravel + a.jitter(a.timing.TravelJitter)
	s.serial++
	// A zero-length cycle would never consume time.
	if a.timing.Fade <= 0 && s.travel <= 0 {
		s.travel = time.Millisecond
	}
}

func (a *Animator) jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(a.rng.Float64() * float64(max))
}

// Particles returns the visible particles, at most one per lane.
// Lanes still waiting for their first spawn are omitted.
func (a *Animator) Particles() []Particle {
	out := make([]Particle, 0, len(a.state))
	for i, s := range a.state {
		if s.phase == Waiting {
			continue
		}
		p := Particle{Lane: i, Phase: s.phase, Serial: s.serial}
		curve := a.lanes[i].Curve
		switch s.phase {
		case FadeIn:
			p.Progress = 0
			p.Opacity = a.timing.MaxOpacity * ratio(s.elapsed, a.timing.Fade)
		case Traveling:
			p.Progress = ratio(s.elapsed, s.travel)
			p.Opacity = a.timing.MaxOpacity
		case FadeOut:
			p.Progress = 1
			p.Opacity = a.timing.MaxOpacity * (1 - ratio(s.elapsed, a.timing.Fade))
		}
		p.Position = curve.PointAt(p.Progress)
		out = append(out, p)
	}
	return out
}

func ratio(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	r := float64(elapsed) / float64(total)
	if r > 1 {
		return 1
	}
	return r
}
