// Package character implements the simulated rectangles: gravity, swept
// collision against the frame's obstacles, restitution, floor friction and
// follow-target steering.
package character

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milk9111/desktopcharacters/common"
	"github.com/milk9111/desktopcharacters/geom"
)

// FollowTarget is a point a grounded character walks toward.
type FollowTarget struct {
	Exists   bool
	Position geom.Vec2
}

// ContactKind identifies which side of the character touched an obstacle.
type ContactKind uint8

const (
	ContactFloor ContactKind = iota + 1
	ContactRoof
	ContactWall
)

func (k ContactKind) String() string {
	switch k {
	case ContactFloor:
		return "floor"
	case ContactRoof:
		return "roof"
	case ContactWall:
		return "wall"
	default:
		return "none"
	}
}

// Contact records one resolved collision of the last update.
type Contact struct {
	Kind     ContactKind
	Obstacle int
	// Time is the offset into the step at which the contact happened.
	Time float64
	// Speed and Rebound are the speeds along the contact axis before and after
	// restitution.
	Speed   float64
	Rebound float64
}

type Character struct {
	id uuid.UUID

	position geom.Vec2
	size     geom.Vec2
	velocity geom.Vec2
	aabb     geom.AABB

	dragged  bool
	grounded bool
	// capped is set while consecutive updates hit the sub-step limit.
	capped bool

	data     Data
	follow   FollowTarget
	contacts []Contact

	logger *zap.Logger
}

func New(position, size geom.Vec2, data Data) *Character {
	c := &Character{
		id:       uuid.New(),
		position: position,
		size:     size,
		data:     data.normalized(),
		logger:   zap.NewNop(),
	}
	c.updateAABB()
	return c
}

func (c *Character) ID() uuid.UUID { return c.id }

func (c *Character) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger.With(zap.String("character", c.id.String()))
}

func (c *Character) Position() geom.Vec2 { return c.position }
func (c *Character) Size() geom.Vec2     { return c.size }
func (c *Character) Velocity() geom.Vec2 { return c.velocity }
func (c *Character) AABB() geom.AABB     { return c.aabb }
func (c *Character) Data() Data          { return c.data }
func (c *Character) Dragged() bool       { return c.dragged }

// Grounded reports whether the last update ended with a floor contact.
func (c *Character) Grounded() bool { return c.grounded }

// Contacts returns the collisions resolved during the last update. The slice
// is reused by the next update.
func (c *Character) Contacts() []Contact { return c.contacts }

func (c *Character) SetPosition(p geom.Vec2) {
	c.position = p
	c.updateAABB()
}

func (c *Character) Move(delta geom.Vec2) {
	c.SetPosition(c.position.Add(delta))
}

// SetSize ignores negative components.
func (c *Character) SetSize(s geom.Vec2) {
	c.size = geom.V(max(s.X, 0), max(s.Y, 0))
	c.updateAABB()
}

func (c *Character) SetVelocity(v geom.Vec2) {
	if c.dragged {
		return
	}
	c.velocity = v
}

func (c *Character) SetData(d Data) {
	c.data = d.normalized()
}

func (c *Character) SetFollowTarget(t FollowTarget) {
	c.follow = t
}

// SetDragged switches between the pointer-driven and physics-driven states.
// Entering the dragged state pins the velocity to zero.
func (c *Character) SetDragged(dragged bool) {
	c.dragged = dragged
	if dragged {
		c.velocity = geom.Vec2{}
		c.grounded = false
	}
}

// Release leaves the dragged state with the given velocity.
func (c *Character) Release(v geom.Vec2) {
	c.dragged = false
	c.velocity = v
}

// Jump launches a grounded free character with v, limited to MaxSpeed
// horizontally and MaxJumpVelocity upward. It reports whether the character
// jumped.
func (c *Character) Jump(v geom.Vec2) bool {
	if c.dragged || !c.grounded || v.Y <= 0 || c.data.MaxJumpVelocity <= 0 {
		return false
	}
	c.velocity = geom.V(
		common.Clamp(v.X, -c.data.MaxSpeed, c.data.MaxSpeed),
		min(v.Y, c.data.MaxJumpVelocity),
	)
	c.grounded = false
	return true
}

func (c *Character) updateAABB() {
	c.aabb = geom.FromCenter(c.position, c.size)
}
