// Package orbit lays out labeled items on concentric rings and rotates them.
//
// Each [RingSpec] holds a distinct item set, a radius factor relative to the
// base radius, and a signed angular velocity in radians per tick. [Layout]
// spaces the items of a ring evenly (2π / n apart, starting at angle 0) and
// returns an [Engine]. Every animation tick the engine advances all angles by
// their ring velocity; angles are kept in [0, 2π).
//
// Labels stay upright regardless of ring rotation: an item's position rotates,
// its text does not.
package orbit
