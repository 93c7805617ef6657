// Package hover tracks which hub, if any, the pointer is over.
package hover

import (
	"sync"

	"github.com/bensonglobal/meridian/pkg/geo"
)

// Listener is notified whenever the hovered hub changes.
// A nil hub means the selection was cleared.
type Listener interface {
	HubHovered(hub *geo.Hub)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(hub *geo.Hub)

// HubHovered calls f(hub).
func (f ListenerFunc) HubHovered(hub *geo.Hub) { f(hub) }

// Controller holds at most one hovered hub. The last event wins; events are
// never queued. It is safe for concurrent use.
//
// Listeners run outside the selection lock, one delivery at a time, and
// always end on the latest selection: when changes race, intermediate
// selections may be skipped but never delivered after a newer one.
// Listeners may call Current but must not call Enter or Leave.
type Controller struct {
	mu        sync.Mutex
	current   *geo.Hub
	listeners []Listener
	seq       uint64 // bumped on every selection change

	deliver sync.Mutex // serializes publish
	sent    uint64     // seq of the last delivered selection, guarded by deliver
}

// New creates a controller with the given listeners.
func New(listeners ...Listener) *Controller {
	return &Controller{listeners: listeners}
}

// Subscribe adds a listener.
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// Enter selects hub. Entering the already selected hub does nothing.
func (c *Controller) Enter(hub geo.Hub) {
	c.mu.Lock()
	if c.current != nil && c.current.ID == hub.ID {
		c.mu.Unlock()
		return
	}
	h := hub
	c.current = &h
	c.seq++
	c.mu.Unlock()
	c.publish()
}

// Leave clears the selection, whichever hub was left.
func (c *Controller) Leave() {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.seq++
	c.mu.Unlock()
	c.publish()
}

// publish hands listeners the selection as it is now, unless a later call
// already delivered it. Reading the selection after taking deliver means the
// final delivery always carries the final selection.
func (c *Controller) publish() {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	seq, ls := c.seq, c.listeners
	var hub *geo.Hub
	if c.current != nil {
		h := *c.current
		hub = &h
	}
	c.mu.Unlock()

	if seq == c.sent {
		return
	}
	c.sent = seq
	notify(ls, hub)
}

// Current returns a copy of the hovered hub, or nil.
func (c *Controller) Current() *geo.Hub {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	h := *c.current
	return &h
}

func notify(ls []Listener, hub *geo.Hub) {
	for _, l := range ls {
		var arg *geo.Hub
		if hub != nil {
			h := *hub
			arg = &h
		}
		l.HubHovered(arg)
	}
}
