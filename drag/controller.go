// Package drag turns pointer input into a dragged character and estimates a
// release velocity from the trailing pointer history.
package drag

import (
	"go.uber.org/zap"

	"github.com/milk9111/desktopcharacters/character"
	"github.com/milk9111/desktopcharacters/common"
	"github.com/milk9111/desktopcharacters/geom"
)

// DefaultHistoryWindow is the trailing duration, in seconds, used for the
// release velocity.
const DefaultHistoryWindow = 0.1

// Sample is one position of the dragged character and the time since the
// previous sample.
type Sample struct {
	Position geom.Vec2
	DT       float64
}

// Controller owns at most one drag session at a time. It holds a non-owning
// reference to the dragged character.
type Controller struct {
	dragged *character.Character
	offset  geom.Vec2
	history []Sample
	window  float64
	bounds  *geom.AABB

	logger *zap.Logger
}

func NewController(window float64, logger *zap.Logger) *Controller {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{window: window, logger: logger}
}

// SetWindow changes the trailing history duration.
func (d *Controller) SetWindow(window float64) {
	if window > 0 {
		d.window = window
	}
}

// SetBounds keeps dragged characters inside box. A nil box disables clamping.
func (d *Controller) SetBounds(box *geom.AABB) {
	d.bounds = box
}

// Active reports whether a drag is in progress.
func (d *Controller) Active() bool {
	return d.dragged != nil
}

func (d *Controller) Dragged() *character.Character {
	return d.dragged
}

// History returns the current trailing samples.
func (d *Controller) History() []Sample {
	return d.history
}

// PointerDown starts dragging the top-most character under pos. Characters
// later in the slice are drawn later and therefore win.
func (d *Controller) PointerDown(chars []*character.Character, pos geom.Vec2) bool {
	if d.dragged != nil {
		return false
	}
	for i := len(chars) - 1; i >= 0; i-- {
		c := chars[i]
		if c == nil || !c.AABB().ContainsPoint(pos) {
			continue
		}

		c.SetDragged(true)
		d.dragged = c
		d.offset = c.Position().Sub(pos)
		d.history = append(d.history[:0], Sample{Position: c.Position(), DT: 0})

		d.logger.Debug("drag started",
			zap.String("character", c.ID().String()),
			zap.Float64("x", pos.X),
			zap.Float64("y", pos.Y),
		)
		return true
	}
	return false
}

// PointerMove follows the pointer with the dragged character and records the
// new position in the history.
func (d *Controller) PointerMove(pos geom.Vec2, dt float64) {
	if d.dragged == nil {
		return
	}

	target := d.clamp(pos.Add(d.offset))
	d.history = append(d.history, Sample{Position: target, DT: max(dt, 0)})
	d.trim()
	d.dragged.SetPosition(target)
}

// PointerUp ends the drag and hands the estimated release velocity to the
// character. A drag without elapsed time releases with zero velocity.
func (d *Controller) PointerUp() {
	if d.dragged == nil {
		return
	}

	velocity := d.ReleaseVelocity()
	d.dragged.Release(velocity)

	d.logger.Debug("drag released",
		zap.String("character", d.dragged.ID().String()),
		zap.Float64("vx", velocity.X),
		zap.Float64("vy", velocity.Y),
	)

	d.dragged = nil
	d.history = d.history[:0]
}

// Release drops the session if it drags c, releasing c without velocity.
func (d *Controller) Release(c *character.Character) {
	if d.dragged == nil || d.dragged != c {
		return
	}
	d.dragged.Release(geom.Vec2{})
	d.dragged = nil
	d.history = d.history[:0]
}

// ReleaseVelocity is the finite difference across the trailing history.
func (d *Controller) ReleaseVelocity() geom.Vec2 {
	if len(d.history) < 2 {
		return geom.Vec2{}
	}
	total := 0.0
	for _, s := range d.history {
		total += s.DT
	}
	if total <= 0 {
		return geom.Vec2{}
	}
	delta := d.history[len(d.history)-1].Position.Sub(d.history[0].Position)
	return delta.DivScalar(total)
}

// trim drops the oldest samples until the summed duration fits the window.
func (d *Controller) trim() {
	total := 0.0
	for _, s := range d.history {
		total += s.DT
	}
	drop := 0
	for total > d.window && len(d.history)-drop > 1 {
		total -= d.history[drop].DT
		drop++
	}
	if drop > 0 {
		d.history = append(d.history[:0], d.history[drop:]...)
	}
}

func (d *Controller) clamp(p geom.Vec2) geom.Vec2 {
	if d.bounds == nil || d.dragged == nil {
		return p
	}
	half := d.dragged.Size().Scale(0.5)
	b := *d.bounds
	if b.Width() < 2*half.X || b.Height() < 2*half.Y {
		return p
	}
	return geom.V(
		common.Clamp(p.X, b.MinX+half.X, b.MaxX-half.X),
		common.Clamp(p.Y, b.MinY+half.Y, b.MaxY-half.Y),
	)
}
