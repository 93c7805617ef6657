// Package pkg holds the libraries behind meridian, the animated network
// diagrams of the Benson Global site.
//
// # Overview
//
// Two live diagrams share one animation loop:
//
//   - the orbital ecosystem: labeled items riding concentric rings around a
//     center label, each ring turning at its own speed
//   - the hub network: hubs projected onto a map, curved lanes between them,
//     particles travelling the lanes, and a tooltip for the hovered hub
//
// Around them sit a market chart, a node-link view of the hub graph, the AI
// concierge and a simulated social feed.
//
// # Layout
//
//	anim          frame scheduler, clocks and cancellable timers
//	orbit         ring layout and rotation
//	geo           hubs, projection and lookup
//	flow          lane curves and the particle animator
//	hover         hover selection and tooltip panel
//	diagram       component lifecycle (mount, resize, unmount) and frames
//	dataset       reference data, YAML loading and file watching
//	render        SVG, JSON, DOT, PNG and HTML output
//	cache         file, Redis and null caches plus key derivation
//	concierge     chat prompt assembly over a generative model
//	social        simulated platform updates
//	config        TOML configuration with environment overrides
//	errors        coded errors and input validation
//	httputil      retry with exponential backoff
//	observability hook registry for render, chat, cache and HTTP events
//	buildinfo     version information set at link time
//
// # Quick Start
//
// Render the network at two seconds with Doha highlighted:
//
//	ds := dataset.Default()
//	svg, err := render.Render(ctx, ds, render.Request{
//	    Target: render.TargetNetwork,
//	    At:     2 * time.Second,
//	    Hover:  "Doha",
//	}, nil)
//
// Drive a live component:
//
//	sched := anim.NewScheduler()
//	sched.Start()
//	defer sched.Stop()
//
//	n := diagram.NewNetwork(sched, ds.Network(), diagram.Options{})
//	_ = n.Mount(800, 600)
//	defer n.Unmount()
//	cancel, _ := n.Subscribe(func() { f, _ := n.Frame(); draw(f) })
//	defer cancel()
package pkg
