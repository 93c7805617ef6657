package diagram

import (
	"math"
	"time"

	"github.com/bensonglobal/meridian/pkg/anim"
	"github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/flow"
	"github.com/bensonglobal/meridian/pkg/geo"
	"github.com/bensonglobal/meridian/pkg/hover"
)

// Decoration periods of the network map.
const (
	sweepPeriod  = 12 * time.Second
	ripplePeriod = 3 * time.Second
)

// NetworkConfig is the data a Network diagram draws.
type NetworkConfig struct {
	Hubs        []geo.Hub
	Connections []flow.Connection
}

// HubMarker is a hub at its projected position.
type HubMarker struct {
	geo.Hub
	Point geo.Point `json:"point"`
}

// NetworkFrame is a snapshot of the network map.
type NetworkFrame struct {
	Diagram   string          `json:"diagram"`
	State     string          `json:"state"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Elapsed   time.Duration   `json:"elapsed"`
	Hubs      []HubMarker     `json:"hubs"`
	Lanes     []flow.Lane     `json:"lanes"`
	Particles []flow.Particle `json:"particles"`
	Hovered   *geo.Hub        `json:"hovered,omitempty"`
	Panel     hover.Panel     `json:"panel"`
	Sweep     float64         `json:"sweep"`  // radar rotation in degrees
	Ripple    float64         `json:"ripple"` // hub pulse phase in [0, 1)
}

// Network animates particles between projected hubs and tracks hover.
type Network struct {
	lifecycle
	cfg      NetworkConfig
	index    geo.Index
	proj     geo.Projection
	points   map[string]geo.Point
	animator *flow.Animator
	hover    *hover.Controller
}

// NewNetwork creates an unmounted network diagram driven by sched.
func NewNetwork(sched *anim.Scheduler, cfg NetworkConfig, opts Options) *Network {
	n := &Network{
		cfg:   cfg,
		index: geo.NewIndex(cfg.Hubs),
		hover: hover.New(),
	}
	n.lifecycle.init(sched, opts, n)
	return n
}

func (n *Network) name() string { return "network" }

func (n *Network) layout(width, height int) {
	n.proj = geo.Fit(width, height)
	n.points = n.proj.ProjectAll(n.cfg.Hubs)
	lanes := flow.Resolve(n.cfg.Connections, n.points, n.logger)
	var opts []flow.Option
	if n.opts.Seed != 0 {
		opts = append(opts, flow.WithSeed(n.opts.Seed))
	}
	n.animator = flow.NewAnimator(lanes, opts...)
}

func (n *Network) advance(dt time.Duration) {
	n.animator.Advance(dt)
}

// Mount projects hubs for a width×height container and starts the particles.
func (n *Network) Mount(width, height int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.mount(width, height)
}

// Resize re-projects hubs and curves, restarting particles on the new lanes.
func (n *Network) Resize(width, height int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.resize(width, height)
}

// Unmount stops the diagram and clears the hover selection.
func (n *Network) Unmount() {
	n.mu.Lock()
	n.unmount()
	n.mu.Unlock()
	n.hover.Leave()
}

// State returns the lifecycle state.
func (n *Network) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Subscribe calls fn after every animation frame until cancelled or unmounted.
func (n *Network) Subscribe(fn func()) (cancel func(), err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.subscribe(fn)
}

// OnHover registers a hover listener.
func (n *Network) OnHover(l hover.Listener) { n.hover.Subscribe(l) }

// Enter marks the hub with the given ID as hovered.
func (n *Network) Enter(hubID string) error {
	n.mu.Lock()
	if err := n.ready("hover"); err != nil {
		n.mu.Unlock()
		return err
	}
	hub, err := n.index.Lookup(hubID)
	n.mu.Unlock()
	if err != nil {
		return err
	}
	n.hover.Enter(hub)

	// An Unmount between the check above and hover.Enter missed this
	// selection, so clear it here.
	n.mu.Lock()
	err = n.ready("hover")
	n.mu.Unlock()
	if err != nil {
		n.hover.Leave()
		return err
	}
	return nil
}

// Leave clears the hover selection.
func (n *Network) Leave() error {
	n.mu.Lock()
	err := n.ready("hover")
	n.mu.Unlock()
	if err != nil {
		return err
	}
	n.hover.Leave()
	return nil
}

// Hovered returns the hovered hub, or nil.
func (n *Network) Hovered() *geo.Hub { return n.hover.Current() }

// Panel returns the side panel for the hovered hub.
func (n *Network) Panel() (hover.Panel, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.ready("panel"); err != nil {
		return hover.Panel{}, err
	}
	return n.panel(n.hover.Current()), nil
}

func (n *Network) panel(h *geo.Hub) hover.Panel {
	if h == nil {
		return hover.Panel{}
	}
	p, ok := n.points[h.ID]
	if !ok {
		return hover.Panel{}
	}
	return hover.NewPanel(h, p, n.width)
}

// Point returns the projected position of a hub.
func (n *Network) Point(hubID string) (geo.Point, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.ready("point"); err != nil {
		return geo.Point{}, err
	}
	p, ok := n.points[hubID]
	if !ok {
		return geo.Point{}, errors.New(errors.ErrCodeUnknownHub, "unknown hub %q", hubID)
	}
	return p, nil
}

// Frame returns a snapshot of hubs, curves, particles and hover state.
func (n *Network) Frame() (NetworkFrame, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.ready("frame"); err != nil {
		return NetworkFrame{}, err
	}
	hubs := make([]HubMarker, 0, len(n.cfg.Hubs))
	for _, h := range n.cfg.Hubs {
		hubs = append(hubs, HubMarker{Hub: h, Point: n.points[h.ID]})
	}
	hovered := n.hover.Current()
	return NetworkFrame{
		Diagram:   n.name(),
		State:     n.state.String(),
		Width:     n.width,
		Height:    n.height,
		Elapsed:   n.elapsed,
		Hubs:      hubs,
		Lanes:     n.animator.Lanes(),
		Particles: n.animator.Particles(),
		Hovered:   hovered,
		Panel:     n.panel(hovered),
		Sweep:     360 * phase(n.elapsed, sweepPeriod),
		Ripple:    phase(n.elapsed, ripplePeriod),
	}, nil
}

func phase(elapsed, period time.Duration) float64 {
	return math.Mod(float64(elapsed), float64(period)) / float64(period)
}
