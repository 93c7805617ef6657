package flow

import (
	"github.com/charmbracelet/log"

	"github.com/bensonglobal/meridian/pkg/geo"
)

// Connection links two hubs by ID.
type Connection struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Lane is a connection resolved to a drawable curve.
type Lane struct {
	Connection
	Curve Curve `json:"curve"`
}

// Resolve turns connections into lanes using projected hub points.
// Connections with an unknown endpoint are skipped and logged.
func Resolve(conns []Connection, points map[string]geo.Point, logger *log.Logger) []Lane {
	if logger == nil {
		logger = log.Default()
	}
	lanes := make([]Lane, 0, len(conns))
	for _, c := range conns {
		src, ok := points[c.Source]
		if !ok {
			logger.Warn("skipping connection with unknown source", "source", c.Source, "target", c.Target)
			continue
		}
		dst, ok := points[c.Target]
		if !ok {
			logger.Warn("skipping connection with unknown target", "source", c.Source, "target", c.Target)
			continue
		}
		lanes = append(lanes, Lane{Connection: c, Curve: NewCurve(src, dst)})
	}
	return lanes
}
