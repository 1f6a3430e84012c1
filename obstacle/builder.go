package obstacle

import (
	"go.uber.org/zap"

	"github.com/milk9111/desktopcharacters/geom"
)

// Boundary returns the four walls around a world centered at the origin that
// extends ±worldSize: top, bottom, left, right.
func Boundary(worldSize geom.Vec2) []Obstacle {
	return []Obstacle{
		New(Horizontal, worldSize.Y, -worldSize.X, worldSize.X),
		New(Horizontal, -worldSize.Y, -worldSize.X, worldSize.X),
		New(Vertical, -worldSize.X, -worldSize.Y, worldSize.Y),
		New(Vertical, worldSize.X, -worldSize.Y, worldSize.Y),
	}
}

// Edges returns the top, bottom, left and right walls of a window box.
func Edges(box geom.AABB) [4]Obstacle {
	return [4]Obstacle{
		New(Horizontal, box.MaxY, box.MinX, box.MaxX),
		New(Horizontal, box.MinY, box.MinX, box.MaxX),
		New(Vertical, box.MinX, box.MinY, box.MaxY),
		New(Vertical, box.MaxX, box.MinY, box.MaxY),
	}
}

// Build returns a fresh obstacle list for one frame. windows must be ordered
// front-most first: each window's edges are clipped by every window in front
// of it that overlaps it, and edges with nothing left are dropped. Empty
// window boxes are skipped.
func Build(worldSize geom.Vec2, windows []geom.AABB) []Obstacle {
	obstacles := make([]Obstacle, 0, 4+4*len(windows))
	obstacles = append(obstacles, Boundary(worldSize)...)

	occluders := make([]geom.AABB, 0, len(windows))
	for _, box := range windows {
		if box.Empty() {
			continue
		}

		edges := Edges(box)
		for _, occluder := range occluders {
			if !occluder.Intersects(box) {
				continue
			}
			for i := range edges {
				edges[i] = SplitByAABB(edges[i], occluder)
			}
		}
		for _, e := range edges {
			if !e.Empty() {
				obstacles = append(obstacles, e)
			}
		}

		occluders = append(occluders, box)
	}
	return obstacles
}

// Builder wraps Build with debug logging of the frame's obstacle counts.
type Builder struct {
	logger *zap.Logger
	last   int
}

func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger, last: -1}
}

func (b *Builder) Build(worldSize geom.Vec2, windows []geom.AABB) []Obstacle {
	obstacles := Build(worldSize, windows)
	if len(obstacles) != b.last {
		b.logger.Debug("obstacles rebuilt",
			zap.Int("windows", len(windows)),
			zap.Int("obstacles", len(obstacles)),
		)
		b.last = len(obstacles)
	}
	return obstacles
}

// RemoveContained drops every window that lies entirely inside the window
// directly in front of it. The input slice is not modified.
func RemoveContained(windows []geom.AABB) []geom.AABB {
	if len(windows) == 0 {
		return nil
	}
	out := make([]geom.AABB, 0, len(windows))
	out = append(out, windows[0])
	for i := 1; i < len(windows); i++ {
		if out[len(out)-1].ContainsBox(windows[i]) {
			continue
		}
		out = append(out, windows[i])
	}
	return out
}
