package obstacle

import (
	"math"

	"github.com/milk9111/desktopcharacters/geom"
)

// SplitSegment removes b from a and appends what is left to out. When the two
// ranges do not overlap, a is appended unchanged. Empty pieces are never
// appended.
func SplitSegment(a, b geom.Range, out []geom.Range) []geom.Range {
	left := math.Max(a.Min, b.Min)
	right := math.Min(a.Max, b.Max)

	if left >= right {
		return append(out, a)
	}
	if a.Min < left {
		out = append(out, geom.Range{Min: a.Min, Max: left})
	}
	if right < a.Max {
		out = append(out, geom.Range{Min: right, Max: a.Max})
	}
	return out
}

// SplitByAABB clips the portion of o hidden by occluder. Clipping only
// applies when the wall line passes through the occluder's span on the
// perpendicular axis (edges inclusive).
func SplitByAABB(o Obstacle, occluder geom.AABB) Obstacle {
	var cut geom.Range
	switch o.Type {
	case Horizontal:
		if o.PerpOffset < occluder.MinY || o.PerpOffset > occluder.MaxY {
			return o
		}
		cut = geom.Range{Min: occluder.MinX, Max: occluder.MaxX}
	case Vertical:
		if o.PerpOffset < occluder.MinX || o.PerpOffset > occluder.MaxX {
			return o
		}
		cut = geom.Range{Min: occluder.MinY, Max: occluder.MaxY}
	default:
		return o
	}

	segments := make([]geom.Range, 0, len(o.Segments)+1)
	for _, s := range o.Segments {
		segments = SplitSegment(s, cut, segments)
	}
	o.Segments = segments
	return o
}
