// Package svg renders diagram frames as standalone SVG documents.
//
// A frame is a snapshot, so every animated element is drawn at the position
// it holds at the frame's elapsed time: orbiting items at their current
// angle, particles at their current point on the curve, the radar sweep and
// hub ripples at their current phase. [WithAnimate] additionally emits SMIL
// animations for the purely decorative parts so a saved file keeps moving
// in a browser.
//
//	frame, _ := orbital.Frame()
//	doc := svg.Orbital(frame, svg.WithBackground("#0B0B0B"))
//
// [JSON] exports any frame as indented JSON for clients that draw themselves.
package svg
