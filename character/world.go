package character

import (
	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/obstacle"
)

// DefaultMaxSubSteps bounds the collisions resolved in a single update.
const DefaultMaxSubSteps = 16

// World is the per-step simulation context handed to every character.
type World struct {
	// Size is the half extent: the world spans [-Size, Size] on each axis.
	Size geom.Vec2
	// Gravity is the Y acceleration. World space is Y-up, so a falling world
	// has a negative value.
	Gravity   float64
	Obstacles []obstacle.Obstacle

	MaxSubSteps int
}

func (w *World) maxSubSteps() int {
	if w.MaxSubSteps <= 0 {
		return DefaultMaxSubSteps
	}
	return w.MaxSubSteps
}

// Bounds returns the world box.
func (w *World) Bounds() geom.AABB {
	return geom.NewAABB(-w.Size.X, -w.Size.Y, w.Size.X, w.Size.Y)
}
