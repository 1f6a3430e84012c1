package character

import (
	"math"

	"go.uber.org/zap"

	"github.com/milk9111/desktopcharacters/common"
	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/obstacle"
)

// contactSkin shrinks the box for segment overlap tests so a character
// resting exactly on a ledge does not catch the ledge's side wall through
// rounding error.
const contactSkin = 1e-9

type hit struct {
	t     float64
	index int
}

// Update advances the character by dt seconds. A dragged character only
// refreshes its box.
func (c *Character) Update(w *World, dt float64) {
	c.contacts = c.contacts[:0]
	c.grounded = false

	if c.dragged {
		c.velocity = geom.Vec2{}
		c.updateAABB()
		return
	}
	if w == nil || dt <= 0 || !common.Finite(dt) {
		c.updateAABB()
		return
	}

	c.velocity.Y += w.Gravity * dt
	c.sweep(w, dt)

	purposeful := c.steer(dt)
	if c.grounded && !purposeful {
		c.applyFriction(w, dt)
	}

	c.updateAABB()
}

// sweep consumes dt by repeatedly moving to the earliest contact, resolving
// it, and continuing with the time left.
func (c *Character) sweep(w *World, dt float64) {
	remaining := dt
	limit := w.maxSubSteps()

	for resolved := 0; ; resolved++ {
		h, ok := c.earliestHit(w.Obstacles, remaining)
		if !ok {
			c.position = c.position.Add(c.velocity.Scale(remaining))
			c.capped = false
			return
		}
		if resolved >= limit {
			v := c.velocity
			c.velocity = geom.Vec2{}
			if c.capped {
				return
			}
			c.capped = true
			c.logger.Warn("collision sub-step limit reached, freezing velocity",
				zap.Int("limit", limit),
				zap.Float64("remaining", remaining),
				zap.Float64("vx", v.X),
				zap.Float64("vy", v.Y),
			)
			return
		}

		c.position = c.position.Add(c.velocity.Scale(h.t))
		c.resolve(w.Obstacles[h.index], h)
		remaining -= h.t
	}
}

// earliestHit finds the first obstacle the box reaches within budget. Ties go
// to the obstacle that comes first in the list.
func (c *Character) earliestHit(obstacles []obstacle.Obstacle, budget float64) (hit, bool) {
	half := c.size.Scale(0.5)
	box := geom.FromCenter(c.position, c.size)
	leadX := c.position.X + half.X*common.Sign(c.velocity.X)
	leadY := c.position.Y + half.Y*common.Sign(c.velocity.Y)

	best := hit{t: math.Inf(1), index: -1}
	for i, o := range obstacles {
		var t float64
		switch o.Type {
		case obstacle.Horizontal:
			if c.velocity.Y == 0 || !overlapsAny(o.Segments, box.MinX, box.MaxX) {
				continue
			}
			t = timeToContact(o.PerpOffset, leadY, c.velocity.Y)
		case obstacle.Vertical:
			if c.velocity.X == 0 || !overlapsAny(o.Segments, box.MinY, box.MaxY) {
				continue
			}
			t = timeToContact(o.PerpOffset, leadX, c.velocity.X)
		default:
			continue
		}

		if !common.Finite(t) || t < 0 || t > budget {
			continue
		}
		if t < best.t {
			best = hit{t: t, index: i}
		}
	}
	return best, best.index >= 0
}

// timeToContact is the time for the leading edge lead to reach the wall at
// perp moving at v. An edge already within contactSkin of the wall touches it
// now, which keeps a resting box on surfaces whose coordinate does not
// survive the position round trip.
func timeToContact(perp, lead, v float64) float64 {
	gap := perp - lead
	if math.Abs(gap) <= contactSkin*max(1, math.Abs(perp), math.Abs(lead)) {
		return 0
	}
	return gap / v
}

func overlapsAny(segments []geom.Range, lo, hi float64) bool {
	lo += contactSkin
	hi -= contactSkin
	for _, s := range segments {
		if s.Overlaps(lo, hi) {
			return true
		}
	}
	return false
}

// resolve snaps the leading edge onto the wall and reflects the velocity
// component along the wall normal.
func (c *Character) resolve(o obstacle.Obstacle, h hit) {
	half := c.size.Scale(0.5)
	contact := Contact{Obstacle: h.index, Time: h.t}

	switch o.Type {
	case obstacle.Horizontal:
		contact.Speed = math.Abs(c.velocity.Y)
		c.position.Y = o.PerpOffset - half.Y*common.Sign(c.velocity.Y)
		if c.velocity.Y < 0 {
			contact.Kind = ContactFloor
			c.velocity.Y *= -c.data.Restitution.Floor
			c.grounded = true
		} else {
			contact.Kind = ContactRoof
			c.velocity.Y *= -c.data.Restitution.Roof
			c.grounded = false
		}
		contact.Rebound = math.Abs(c.velocity.Y)
	case obstacle.Vertical:
		contact.Speed = math.Abs(c.velocity.X)
		c.position.X = o.PerpOffset - half.X*common.Sign(c.velocity.X)
		contact.Kind = ContactWall
		c.velocity.X *= -c.data.Restitution.Sides
		contact.Rebound = math.Abs(c.velocity.X)
	}

	c.contacts = append(c.contacts, contact)
}

// steer walks a grounded character toward its follow target, closing the
// horizontal gap within one step but never faster than MaxSpeed. It reports
// whether the character moved purposefully this step.
func (c *Character) steer(dt float64) bool {
	if !c.follow.Exists || !c.grounded {
		return false
	}
	if math.Abs(c.velocity.X) > c.data.MaxSpeed {
		return false
	}
	gap := c.follow.Position.X - c.position.X
	c.velocity.X = common.Clamp(gap/dt, -c.data.MaxSpeed, c.data.MaxSpeed)
	return true
}

// applyFriction decelerates horizontal motion by FrictionFloor·|g| per second
// and never reverses it.
func (c *Character) applyFriction(w *World, dt float64) {
	decel := c.data.FrictionFloor * math.Abs(w.Gravity) * dt
	speed := math.Abs(c.velocity.X) - decel
	if speed <= 0 {
		c.velocity.X = 0
		return
	}
	c.velocity.X = common.Sign(c.velocity.X) * speed
}
