// Package obstacle models the one-sided axis-aligned walls characters collide
// with and rebuilds them every frame from the screen boundary and the visible
// windows.
package obstacle

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/desktopcharacters/geom"
)

// Type selects the wall orientation.
type Type uint8

const (
	// Horizontal walls sit at a fixed Y and span ranges along X.
	Horizontal Type = iota
	// Vertical walls sit at a fixed X and span ranges along Y.
	Vertical
)

func (t Type) String() string {
	switch t {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

func (t Type) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "horizontal":
		*t = Horizontal
	case "vertical":
		*t = Vertical
	default:
		return fmt.Errorf("obstacle: unknown type %q", value.Value)
	}
	return nil
}

// Obstacle is a wall at PerpOffset on the perpendicular axis, possibly
// fragmented into disjoint Segments along the parallel axis.
type Obstacle struct {
	Type       Type         `yaml:"type"`
	PerpOffset float64      `yaml:"perp_offset"`
	Segments   []geom.Range `yaml:"segments"`
}

// New returns an obstacle with a single segment [min, max]. A degenerate
// range yields an obstacle without segments.
func New(t Type, perpOffset, min, max float64) Obstacle {
	o := Obstacle{Type: t, PerpOffset: perpOffset}
	if seg := (geom.Range{Min: min, Max: max}); !seg.Degenerate() {
		o.Segments = []geom.Range{seg}
	}
	return o
}

// Empty reports an obstacle with no surviving segments.
func (o Obstacle) Empty() bool {
	return len(o.Segments) == 0
}

// TotalLength sums the length of every segment.
func (o Obstacle) TotalLength() float64 {
	total := 0.0
	for _, s := range o.Segments {
		total += s.Len()
	}
	return total
}

// Endpoints returns the world-space end points of segment i.
func (o Obstacle) Endpoints(i int) (geom.Vec2, geom.Vec2) {
	s := o.Segments[i]
	if o.Type == Horizontal {
		return geom.V(s.Min, o.PerpOffset), geom.V(s.Max, o.PerpOffset)
	}
	return geom.V(o.PerpOffset, s.Min), geom.V(o.PerpOffset, s.Max)
}

// Clone deep-copies the segment slice.
func (o Obstacle) Clone() Obstacle {
	o.Segments = append([]geom.Range(nil), o.Segments...)
	return o
}
