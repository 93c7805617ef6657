// Package flow draws curved connections between projected hubs and animates
// particles along them.
//
// A [Curve] is a quadratic bezier whose control point sits at the chord
// midpoint, offset perpendicular to the chord by 15% of its length. The
// offset follows the chord's orientation, so swapping the endpoints mirrors
// the bow.
//
// An [Animator] keeps one lane per resolved connection. Each lane carries at
// most one particle which fades in, travels the curve at constant speed,
// fades out, and is immediately replaced by a successor.
package flow
