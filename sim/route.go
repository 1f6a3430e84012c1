package sim

import (
	"math"

	"github.com/milk9111/desktopcharacters/character"
	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/pathfind"
)

const (
	surfaceTolerance = 1e-6
	// jumpClearance is how far above the landing surface a jump peaks.
	jumpClearance = 0.15
	// approachMargin is the room kept between a box at takeoff and the side of
	// the surface it jumps onto.
	approachMargin = 0.1
	// takeoffTolerance is how close to the takeoff point a character jumps.
	takeoffTolerance = 0.02
)

// route steers a grounded character toward target across the jump graph. It
// returns the point to walk to now and, when the character stands at the
// takeoff of an upward jump, the launch velocity. Downward hops are made by
// walking off the edge toward the target.
func (s *Simulation) route(c *character.Character, target geom.Vec2) (geom.Vec2, *geom.Vec2) {
	g := s.JumpGraph()
	pos := c.Position()
	start, ok := g.NodeAt(geom.V(pos.X, c.AABB().MinY), surfaceTolerance)
	if !ok {
		return target, nil
	}
	goal, ok := g.NodeBelow(target, surfaceTolerance)
	if !ok || goal == start {
		return target, nil
	}

	data := c.Data()
	reachable := pathfind.Reachable(data.MaxJumpVelocity, s.cfg.Gravity)
	// Coincident surfaces, such as a window bottom resting on the floor, are
	// not a hop.
	path := g.Path(start, goal, func(p pathfind.JumpPlan) bool {
		return p.Delta.Len() > surfaceTolerance && reachable(p)
	})
	if len(path) < 2 {
		return target, nil
	}
	from, to := path[0], path[1]
	if g.Nodes[to].Y <= g.Nodes[from].Y {
		return target, nil
	}

	half := c.Size().X / 2
	plan, ok := g.Approach(from, to, half, approachMargin)
	if !ok {
		return target, nil
	}
	if math.Abs(pos.X-plan.Takeoff.X) > takeoffTolerance {
		return plan.Takeoff, nil
	}

	plan.Takeoff.X = pos.X
	plan.Delta.X = plan.Landing.X - pos.X
	b := g.Nodes[to].Range
	wallGap := b.Min - (pos.X + half)
	if plan.Delta.X < 0 {
		wallGap = (pos.X - half) - b.Max
	}
	v, ok := plan.Launch(data.MaxJumpVelocity, data.MaxSpeed, s.cfg.Gravity, jumpClearance, wallGap)
	if !ok {
		return target, nil
	}
	return plan.Landing, &v
}
