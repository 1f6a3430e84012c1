package overlay

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/desktopcharacters/coords"
	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/obstacle"
	"github.com/milk9111/desktopcharacters/sim"
)

type shapeKind int

const (
	shapeObstacle shapeKind = iota
	shapeCharacter
	shapeGrounded
)

// debugSpace mirrors the frame into a static cp.Space so cp.DrawSpace can
// render it. Nothing is ever stepped.
func debugSpace(s *sim.Simulation) *cp.Space {
	space := cp.NewSpace()
	for _, o := range s.Obstacles() {
		for i := range o.Segments {
			a, b := o.Endpoints(i)
			shape := cp.NewSegment(space.StaticBody, toCP(a), toCP(b), 0)
			shape.UserData = shapeObstacle
			space.AddShape(shape)
		}
	}
	for _, c := range s.Characters() {
		box := c.AABB()
		shape := cp.NewBox2(space.StaticBody, cp.BB{L: box.MinX, B: box.MinY, R: box.MaxX, T: box.MaxY}, 0)
		shape.UserData = shapeCharacter
		if c.Grounded() {
			shape.UserData = shapeGrounded
		}
		space.AddShape(shape)
	}
	return space
}

func drawDebug(screen *ebiten.Image, s *sim.Simulation) {
	cp.DrawSpace(debugSpace(s), &debugDrawer{screen: screen, mapper: s.Mapper()})
}

type debugDrawer struct {
	screen *ebiten.Image
	mapper coords.Mapper
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], fill)
	}
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	switch shape.UserData {
	case shapeCharacter:
		return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
	case shapeGrounded:
		return cp.FColor{R: 0.2, G: 0.6, B: 1, A: 0.9}
	default:
		return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
	}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func (d *debugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	p := d.mapper.WorldToScreen(geom.V(a.X, a.Y))
	q := d.mapper.WorldToScreen(geom.V(b.X, b.Y))
	ebitenutil.DrawLine(d.screen, p.X, p.Y, q.X, q.Y, toNRGBA(c))
}

func toCP(v geom.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// obstacleCount is shown in the HUD next to the segment count.
func obstacleCount(obs []obstacle.Obstacle) (walls, segments int) {
	for _, o := range obs {
		walls++
		segments += len(o.Segments)
	}
	return walls, segments
}
