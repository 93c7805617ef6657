package geo

import (
	"fmt"

	"github.com/bensonglobal/meridian/pkg/errors"
)

// Hub is a geographic point of interest rendered as a marker on the map.
type Hub struct {
	ID     string  `json:"id" yaml:"id"`
	Lat    float64 `json:"lat" yaml:"lat"`
	Lng    float64 `json:"lng" yaml:"lng"`
	Role   string  `json:"role" yaml:"role"`
	Status string  `json:"status" yaml:"status"`
}

// Validate checks the hub identifier and coordinates.
func (h Hub) Validate() error {
	if err := errors.ValidateIdentifier(h.ID); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate(h.Lat, h.Lng); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCoordinate, err, "hub %s", h.ID)
	}
	return nil
}

// Point is a screen-space coordinate in pixels, origin top-left.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Index maps hub IDs to hubs. The zero value is not usable; build with [NewIndex].
type Index map[string]Hub

// NewIndex indexes hubs by ID. Later duplicates replace earlier ones.
func NewIndex(hubs []Hub) Index {
	idx := make(Index, len(hubs))
	for _, h := range hubs {
		idx[h.ID] = h
	}
	return idx
}

// Lookup returns the hub with the given ID or an UNKNOWN_HUB error.
func (idx Index) Lookup(id string) (Hub, error) {
	h, ok := idx[id]
	if !ok {
		return Hub{}, errors.New(errors.ErrCodeUnknownHub, "unknown hub %q", id)
	}
	return h, nil
}
