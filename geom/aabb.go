package geom

// AABB is an axis-aligned bounding box. Boxes built through NewAABB or
// FromCenter always satisfy Min <= Max on both axes.
type AABB struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// NewAABB builds a box from two opposite corners given in any order.
func NewAABB(x0, y0, x1, y1 float64) AABB {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return AABB{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
}

// FromCenter builds the box covering center ± size/2.
func FromCenter(center, size Vec2) AABB {
	half := size.Scale(0.5)
	return NewAABB(center.X-half.X, center.Y-half.Y, center.X+half.X, center.Y+half.Y)
}

func (b AABB) Width() float64  { return b.MaxX - b.MinX }
func (b AABB) Height() float64 { return b.MaxY - b.MinY }
func (b AABB) Min() Vec2       { return Vec2{b.MinX, b.MinY} }
func (b AABB) Max() Vec2       { return Vec2{b.MaxX, b.MaxY} }

func (b AABB) Center() Vec2 {
	return Vec2{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// Empty reports a box with zero (or negative) width or height.
func (b AABB) Empty() bool {
	return b.MaxX <= b.MinX || b.MaxY <= b.MinY
}

// Intersects tests open-interval overlap on both axes: boxes that only share
// an edge do not intersect.
func (b AABB) Intersects(o AABB) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX && b.MinY < o.MaxY && b.MaxY > o.MinY
}

// ContainsPoint is inclusive of the box edges.
func (b AABB) ContainsPoint(p Vec2) bool {
	return b.MinX <= p.X && p.X <= b.MaxX && b.MinY <= p.Y && p.Y <= b.MaxY
}

// ContainsBox reports whether inner lies entirely within b, edges inclusive.
func (b AABB) ContainsBox(inner AABB) bool {
	return inner.MinX >= b.MinX && inner.MaxX <= b.MaxX && inner.MinY >= b.MinY && inner.MaxY <= b.MaxY
}
