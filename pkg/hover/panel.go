package hover

import (
	"strings"

	"github.com/bensonglobal/meridian/pkg/geo"
)

// Side says where a tooltip sits relative to its hub.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// Tooltip geometry, in pixels.
const (
	TooltipWidth  = 190
	TooltipHeight = 64
	tooltipLeft   = 210 // offset when the tooltip flips to the left of the hub
	tooltipRight  = 20
	tooltipRaise  = 30
)

// Panel is the view model of the side panel and tooltip for a hovered hub.
type Panel struct {
	Active bool      `json:"active"`
	ID     string    `json:"id,omitempty"`
	Title  string    `json:"title,omitempty"`
	Role   string    `json:"role,omitempty"`
	Status string    `json:"status,omitempty"`
	Side   Side      `json:"side,omitempty"`
	Anchor geo.Point `json:"anchor"`
}

// NewPanel builds the panel for hub drawn at p in a container of the given
// width. A nil hub yields an inactive panel. Hubs right of center get their
// tooltip on the left so it stays inside the container.
func NewPanel(hub *geo.Hub, p geo.Point, width int) Panel {
	if hub == nil {
		return Panel{}
	}
	side, x := Right, p.X+tooltipRight
	if p.X > float64(width)/2 {
		side, x = Left, p.X-tooltipLeft
	}
	return Panel{
		Active: true,
		ID:     hub.ID,
		Title:  strings.ToUpper(hub.ID),
		Role:   hub.Role,
		Status: hub.Status,
		Side:   side,
		Anchor: geo.Point{X: x, Y: p.Y - tooltipRaise},
	}
}
