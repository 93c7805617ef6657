// Package diagram wires layout engines to the animation loop.
//
// [Orbital] and [Network] are mounted into a container of a given size, animate
// on an [anim.Scheduler], re-lay out on resize, and release every timer and
// subscription on unmount. Both follow the same state machine:
//
//	Uninitialized → LayingOut → Animating ⇄ Resizing → TornDown
//
// Operations that don't fit the current state return an
// errors.ErrCodeInvalidState error. Frame snapshots are plain data consumed by
// the renderers in pkg/render.
package diagram
