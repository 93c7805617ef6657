// Package dataset holds the reference data the diagrams draw: hubs, their
// connections, the orbital rings and the market series.
//
// [Default] returns the built-in data. [Load] reads a YAML file; sections it
// omits fall back to the defaults. [Watch] reloads a file when it changes.
package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bensonglobal/meridian/pkg/diagram"
	"github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/flow"
	"github.com/bensonglobal/meridian/pkg/geo"
	"github.com/bensonglobal/meridian/pkg/orbit"
)

// MarketPoint is one period of the market series.
type MarketPoint struct {
	Name    string  `json:"name" yaml:"name"`
	Public  float64 `json:"public" yaml:"public"`
	Private float64 `json:"private" yaml:"private"`
	TG4     float64 `json:"tg4" yaml:"tg4"`
}

// Dataset is the full set of diagram data.
type Dataset struct {
	Center      string            `json:"center" yaml:"center"`
	Hubs        []geo.Hub         `json:"hubs" yaml:"hubs"`
	Connections []flow.Connection `json:"connections" yaml:"connections"`
	Rings       []orbit.RingSpec  `json:"rings" yaml:"rings"`
	Market      []MarketPoint     `json:"market" yaml:"market"`
}

// Default returns the built-in dataset.
func Default() *Dataset {
	return &Dataset{
		Center: "BGWM",
		Hubs: []geo.Hub{
			{ID: "Toronto", Lat: 43.6532, Lng: -79.3832, Role: "HQ / North America", Status: "Operational"},
			{ID: "New York", Lat: 40.7128, Lng: -74.0060, Role: "Capital Markets", Status: "Active"},
			{ID: "London", Lat: 51.5074, Lng: -0.1278, Role: "EMEA Hub", Status: "Active"},
			{ID: "Doha", Lat: 25.2854, Lng: 51.5310, Role: "Middle East / TG4", Status: "High Activity"},
			{ID: "Accra", Lat: 5.6037, Lng: -0.1870, Role: "West Africa", Status: "Growth"},
			{ID: "Windhoek", Lat: -22.5609, Lng: 17.0658, Role: "Energy Infra", Status: "Development"},
			{ID: "Johannesburg", Lat: -26.2041, Lng: 28.0473, Role: "Southern Africa", Status: "Active"},
		},
		Connections: []flow.Connection{
			{Source: "New York", Target: "London"},
			{Source: "New York", Target: "Toronto"},
			{Source: "London", Target: "Doha"},
			{Source: "London", Target: "Accra"},
			{Source: "Doha", Target: "Johannesburg"},
			{Source: "Accra", Target: "Johannesburg"},
			{Source: "Windhoek", Target: "Johannesburg"},
			{Source: "Accra", Target: "Windhoek"},
		},
		Rings: orbit.DefaultRings(),
		Market: []MarketPoint{
			{Name: "Q1", Public: 4000, Private: 2400, TG4: 2400},
			{Name: "Q2", Public: 3000, Private: 1398, TG4: 2210},
			{Name: "Q3", Public: 2000, Private: 9800, TG4: 2290},
			{Name: "Q4", Public: 2780, Private: 3908, TG4: 2000},
			{Name: "Q1", Public: 1890, Private: 4800, TG4: 2181},
			{Name: "Q2", Public: 2390, Private: 3800, TG4: 2500},
			{Name: "Q3", Public: 3490, Private: 4300, TG4: 2100},
		},
	}
}

// Load reads and validates a YAML dataset. An empty path returns [Default].
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read dataset %s", path)
	}
	return Parse(data)
}

// Parse decodes a YAML dataset, filling omitted sections from the defaults.
func Parse(data []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse dataset")
	}
	def := Default()
	if d.Center == "" {
		d.Center = def.Center
	}
	if d.Hubs == nil {
		d.Hubs = def.Hubs
	}
	if d.Connections == nil {
		d.Connections = def.Connections
	}
	if d.Rings == nil {
		d.Rings = def.Rings
	}
	if d.Market == nil {
		d.Market = def.Market
	}
	if _, err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks hub coordinates and ID uniqueness. Connections to unknown
// hubs and empty rings are not fatal, since the animators skip them, and
// are returned as warnings.
func (d *Dataset) Validate() (warnings []string, err error) {
	seen := make(map[string]bool, len(d.Hubs))
	for _, h := range d.Hubs {
		if err := h.Validate(); err != nil {
			return nil, err
		}
		if seen[h.ID] {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate hub %q", h.ID)
		}
		seen[h.ID] = true
	}
	for _, c := range d.Connections {
		for _, end := range []string{c.Source, c.Target} {
			if !seen[end] {
				warnings = append(warnings, fmt.Sprintf("connection %s → %s references unknown hub %q", c.Source, c.Target, end))
			}
		}
	}
	rings := make(map[string]bool, len(d.Rings))
	for _, r := range d.Rings {
		if r.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "ring without id")
		}
		if rings[r.ID] {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "duplicate ring %q", r.ID)
		}
		rings[r.ID] = true
		if r.RadiusFactor <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidDataset, "ring %q: radius factor must be positive", r.ID)
		}
		if len(r.Items) == 0 {
			warnings = append(warnings, fmt.Sprintf("ring %q has no items", r.ID))
		}
	}
	return warnings, nil
}

// Orbital returns the orbital diagram configuration.
func (d *Dataset) Orbital() diagram.OrbitalConfig {
	return diagram.OrbitalConfig{Rings: d.Rings, Center: d.Center}
}

// Network returns the network diagram configuration.
func (d *Dataset) Network() diagram.NetworkConfig {
	return diagram.NetworkConfig{Hubs: d.Hubs, Connections: d.Connections}
}

// Marshal encodes the dataset as YAML.
func (d *Dataset) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
