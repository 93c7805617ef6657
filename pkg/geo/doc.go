// Package geo projects geographic hubs onto a 2D container.
//
// A [Hub] is static reference data: an identifier, a latitude/longitude pair
// and descriptive metadata shown when the hub is hovered. A [Projection] maps
// coordinates to screen space with a Mercator projection that is centered and
// scaled to the container:
//
//	p := geo.Fit(800, 600)
//	pt := p.ProjectHub(hub)
//
// Projections are pure values. Calling [Fit] again with the same dimensions
// yields identical coordinates, which is what makes resize-and-back stable.
package geo
