package diagram

import (
	"time"

	"github.com/bensonglobal/meridian/pkg/anim"
	"github.com/bensonglobal/meridian/pkg/geo"
	"github.com/bensonglobal/meridian/pkg/orbit"
)

// spinPeriod is one turn of the dashed ring around the center label.
const spinPeriod = 20 * time.Second

// OrbitalConfig is the data an Orbital diagram draws.
type OrbitalConfig struct {
	Rings  []orbit.RingSpec
	Center string
}

// OrbitalFrame is a snapshot of the orbital diagram.
type OrbitalFrame struct {
	Diagram string         `json:"diagram"`
	State   string         `json:"state"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Elapsed time.Duration  `json:"elapsed"`
	Sizing  orbit.Sizing   `json:"sizing"`
	Center  geo.Point      `json:"center"`
	Label   string         `json:"label"`
	Spin    float64        `json:"spin"` // degrees of the decorative center ring
	Rings   []orbit.Ring   `json:"rings"`
	Items   []orbit.Placed `json:"items"`
}

// Orbital animates items around concentric rings.
type Orbital struct {
	lifecycle
	cfg    OrbitalConfig
	engine *orbit.Engine
	sizing orbit.Sizing
}

// NewOrbital creates an unmounted orbital diagram driven by sched.
func NewOrbital(sched *anim.Scheduler, cfg OrbitalConfig, opts Options) *Orbital {
	o := &Orbital{cfg: cfg}
	o.lifecycle.init(sched, opts, o)
	return o
}

func (o *Orbital) name() string { return "orbital" }

func (o *Orbital) layout(width, height int) {
	var ticks float64
	if o.engine != nil {
		ticks = o.engine.Ticks()
	}
	o.sizing = orbit.SizeFor(width, height)
	o.engine = orbit.Layout(o.cfg.Rings, o.sizing.BaseRadius, o.logger)
	// Carry rotation over so a resize doesn't snap items back to their start.
	o.engine.Advance(ticks)
}

func (o *Orbital) advance(dt time.Duration) {
	o.engine.Advance(anim.Ticks(dt))
}

// Mount lays out the diagram for a width×height container and starts animating.
func (o *Orbital) Mount(width, height int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mount(width, height)
}

// Resize re-lays out the diagram, cancelling the previous layout's callbacks.
func (o *Orbital) Resize(width, height int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.resize(width, height)
}

// Unmount stops the diagram. It is safe to call more than once.
func (o *Orbital) Unmount() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unmount()
}

// State returns the lifecycle state.
func (o *Orbital) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe calls fn after every animation frame until the returned cancel
// function is called or the diagram is unmounted.
func (o *Orbital) Subscribe(fn func()) (cancel func(), err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.subscribe(fn)
}

// Frame returns a snapshot of the current positions.
func (o *Orbital) Frame() (OrbitalFrame, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.ready("frame"); err != nil {
		return OrbitalFrame{}, err
	}
	center := geo.Point{X: o.sizing.CenterX, Y: o.sizing.CenterY}
	return OrbitalFrame{
		Diagram: o.name(),
		State:   o.state.String(),
		Width:   o.width,
		Height:  o.height,
		Elapsed: o.elapsed,
		Sizing:  o.sizing,
		Center:  center,
		Label:   o.cfg.Center,
		Spin:    360 * phase(o.elapsed, spinPeriod),
		Rings:   o.engine.Rings(),
		Items:   o.engine.Positions(center),
	}, nil
}
