// Package coords converts between screen pixels (top-left origin, Y down) and
// world units (centered origin, Y up).
package coords

import (
	"image"
	"math"

	"github.com/milk9111/desktopcharacters/geom"
)

// DefaultWorldScale is the world half height.
const DefaultWorldScale = 2.5

// WorldSizeFor returns the world half extent for a screen of the given pixel
// size. The vertical half extent equals scale and the horizontal one follows
// the aspect ratio.
func WorldSizeFor(screenW, screenH int, scale float64) geom.Vec2 {
	if screenW <= 0 || screenH <= 0 {
		return geom.V(scale, scale)
	}
	return geom.V(float64(screenW)/float64(screenH), 1).Scale(scale)
}

// Mapper holds the screen size in pixels and the world half extent.
type Mapper struct {
	Screen geom.Vec2
	World  geom.Vec2
}

func NewMapper(screenW, screenH int, scale float64) Mapper {
	return Mapper{
		Screen: geom.V(float64(screenW), float64(screenH)),
		World:  WorldSizeFor(screenW, screenH, scale),
	}
}

// Degenerate reports a mapper without a positive screen and world size. Its
// transforms map every point to the origin.
func (m Mapper) Degenerate() bool {
	return !(m.Screen.X > 0 && m.Screen.Y > 0 && m.World.X > 0 && m.World.Y > 0)
}

func (m Mapper) ScreenToWorld(p geom.Vec2) geom.Vec2 {
	if m.Degenerate() {
		return geom.Vec2{}
	}
	n := p.Div(m.Screen).Scale(2).SubScalar(1)
	n.Y = -n.Y
	return n.Mul(m.World)
}

func (m Mapper) WorldToScreen(p geom.Vec2) geom.Vec2 {
	if m.Degenerate() {
		return geom.Vec2{}
	}
	n := p.Div(m.World)
	n.Y = -n.Y
	return n.AddScalar(1).Scale(0.5).Mul(m.Screen)
}

// RectToWorld maps a pixel rectangle given by its top-left corner and size.
func (m Mapper) RectToWorld(x, y, w, h float64) geom.AABB {
	a := m.ScreenToWorld(geom.V(x, y))
	b := m.ScreenToWorld(geom.V(x+w, y+h))
	return geom.NewAABB(a.X, a.Y, b.X, b.Y)
}

// AABBToScreen returns the pixel rectangle covering box as top-left corner
// and size.
func (m Mapper) AABBToScreen(box geom.AABB) (x, y, w, h float64) {
	tl := m.WorldToScreen(geom.V(box.MinX, box.MaxY))
	br := m.WorldToScreen(geom.V(box.MaxX, box.MinY))
	return tl.X, tl.Y, br.X - tl.X, br.Y - tl.Y
}

// AABBToRect rounds the pixel rectangle of box outward to whole pixels.
func (m Mapper) AABBToRect(box geom.AABB) image.Rectangle {
	x, y, w, h := m.AABBToScreen(box)
	return image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
}

// ScaleToScreen converts a world length along each axis to pixels.
func (m Mapper) ScaleToScreen(v geom.Vec2) geom.Vec2 {
	if m.Degenerate() {
		return geom.Vec2{}
	}
	return v.Div(m.World).Scale(0.5).Mul(m.Screen)
}
