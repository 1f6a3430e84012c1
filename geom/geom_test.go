package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	assert.Equal(t, V(4, 2), a.Add(b))
	assert.Equal(t, V(2, 6), a.Sub(b))
	assert.Equal(t, V(3, -8), a.Mul(b))
	assert.Equal(t, V(3, -2), a.Div(b))
	assert.Equal(t, V(6, 8), a.Scale(2))
	assert.Equal(t, V(1.5, 2), a.DivScalar(2))
	assert.Equal(t, V(4, 5), a.AddScalar(1))
	assert.Equal(t, V(2, 3), a.SubScalar(1))
	assert.Equal(t, V(-3, -4), a.Neg())
	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, 25.0, a.LenSq())
	assert.InDelta(t, 1.0, a.Normalized().Len(), 1e-12)
	assert.Equal(t, Vec2{}, Vec2{}.Normalized())
	assert.Equal(t, V(2, 1), Lerp(a, b, 0.5))
	assert.Equal(t, 5.0, Dist(Vec2{}, a))
	assert.True(t, a.Equal(V(3, 4)))
}

func TestAABBConstructionNormalizes(t *testing.T) {
	b := NewAABB(2, 3, -1, -4)
	require.Equal(t, AABB{MinX: -1, MinY: -4, MaxX: 2, MaxY: 3}, b)
	assert.Equal(t, 3.0, b.Width())
	assert.Equal(t, 7.0, b.Height())
	assert.Equal(t, V(0.5, -0.5), b.Center())

	c := FromCenter(V(0, 0), V(0.5, 0.5))
	assert.Equal(t, AABB{MinX: -0.25, MinY: -0.25, MaxX: 0.25, MaxY: 0.25}, c)
	assert.True(t, NewAABB(0, 0, 0, 1).Empty())
}

func TestAABBQueries(t *testing.T) {
	box := NewAABB(0, 0, 2, 2)

	cases := []struct {
		name       string
		other      AABB
		intersects bool
		contains   bool
	}{
		{"inside", NewAABB(0.5, 0.5, 1, 1), true, true},
		{"same", box, true, true},
		{"overlap", NewAABB(1, 1, 3, 3), true, false},
		{"touching_edge", NewAABB(2, 0, 3, 2), false, false},
		{"apart", NewAABB(5, 5, 6, 6), false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.intersects, box.Intersects(c.other))
			assert.Equal(t, c.intersects, c.other.Intersects(box))
			assert.Equal(t, c.contains, box.ContainsBox(c.other))
		})
	}

	assert.True(t, box.ContainsPoint(V(2, 2)), "edges are inclusive")
	assert.True(t, box.ContainsPoint(V(1, 1)))
	assert.False(t, box.ContainsPoint(V(2.01, 1)))
}

func TestRange(t *testing.T) {
	r := Range{Min: -1, Max: 1}
	assert.False(t, r.Degenerate())
	assert.Equal(t, 2.0, r.Len())
	assert.True(t, r.Overlaps(0.5, 3))
	assert.False(t, r.Overlaps(1, 3), "touching is not overlap")
	assert.True(t, Range{Min: 1, Max: 1}.Degenerate())
	assert.Equal(t, 0.0, Range{Min: 2, Max: 1}.Len())
}
