package pathfind

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/obstacle"
)

func TestComputeJump(t *testing.T) {
	cases := []struct {
		name string
		a, b geom.Range
		want JumpPlan
	}{
		{
			name: "right",
			a:    geom.Range{Min: 0, Max: 1}, b: geom.Range{Min: 2, Max: 3},
			want: JumpPlan{Takeoff: geom.V(1, 0), Landing: geom.V(2, 1), Delta: geom.V(1, 1)},
		},
		{
			name: "left",
			a:    geom.Range{Min: 2, Max: 3}, b: geom.Range{Min: 0, Max: 1},
			want: JumpPlan{Takeoff: geom.V(2, 0), Landing: geom.V(1, 1), Delta: geom.V(-1, 1)},
		},
		{
			name: "overlap_is_vertical",
			a:    geom.Range{Min: 0, Max: 2}, b: geom.Range{Min: 1, Max: 3},
			want: JumpPlan{Takeoff: geom.V(1, 0), Landing: geom.V(1, 1), Delta: geom.V(0, 1)},
		},
		{
			name: "target_contains_source",
			a:    geom.Range{Min: 1, Max: 2}, b: geom.Range{Min: 0, Max: 3},
			want: JumpPlan{Takeoff: geom.V(1, 0), Landing: geom.V(1, 1), Delta: geom.V(0, 1)},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ComputeJump(c.a, 0, c.b, 1))
		})
	}
}

func ledgeGraph() *Graph {
	world := geom.V(2.5, 1)
	obs := obstacle.Build(world, []geom.AABB{geom.NewAABB(-1, -0.5, 0, 0)})
	return Build(obs, world.Y)
}

func TestBuildSkipsCeilingAndVerticals(t *testing.T) {
	g := ledgeGraph()
	require.Len(t, g.Nodes, 3)

	assert.Equal(t, -1.0, g.Nodes[0].Y)
	assert.Equal(t, 0.0, g.Nodes[1].Y)
	assert.Equal(t, -0.5, g.Nodes[2].Y)
	for i, n := range g.Nodes {
		assert.Len(t, n.Edges, 2, "node %d", i)
		for _, e := range n.Edges {
			assert.NotEqual(t, i, e.To)
		}
	}
	assert.Equal(t, geom.V(-0.5, 0), g.Nodes[1].Center())
}

func TestNodeAt(t *testing.T) {
	g := ledgeGraph()

	cases := []struct {
		name string
		p    geom.Vec2
		want int
		ok   bool
	}{
		{"on_ledge", geom.V(-0.5, 0.001), 1, true},
		{"on_floor", geom.V(2, -1), 0, true},
		{"in_air", geom.V(2, 0.5), -1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := g.NodeAt(c.p, 0.01)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestPath(t *testing.T) {
	g := ledgeGraph()

	t.Run("same_node", func(t *testing.T) {
		assert.Equal(t, []int{1}, g.Path(1, 1, nil))
	})

	t.Run("unrestricted", func(t *testing.T) {
		path := g.Path(0, 1, nil)
		require.NotEmpty(t, path)
		assert.Equal(t, 0, path[0])
		assert.Equal(t, 1, path[len(path)-1])
	})

	t.Run("limited_jump_uses_intermediate_step", func(t *testing.T) {
		allow := Reachable(math.Sqrt(24), -20)
		assert.Equal(t, []int{0, 2, 1}, g.Path(0, 1, allow))
	})

	t.Run("too_high", func(t *testing.T) {
		allow := Reachable(0.1, -20)
		assert.Nil(t, g.Path(0, 1, allow))

		down := g.Path(1, 0, allow)
		require.NotEmpty(t, down)
		assert.Equal(t, 0, down[len(down)-1])
	})

	t.Run("out_of_range", func(t *testing.T) {
		assert.Nil(t, g.Path(-1, 0, nil))
		assert.Nil(t, g.Path(0, 9, nil))
	})
}

func TestReachableWithoutGravity(t *testing.T) {
	allow := Reachable(0, 0)
	assert.True(t, allow(JumpPlan{Delta: geom.V(0, 100)}))
}

func TestEdge(t *testing.T) {
	g := ledgeGraph()

	e, ok := g.Edge(0, 1)
	require.True(t, ok)
	assert.Equal(t, 1, e.To)

	_, ok = g.Edge(0, 0)
	assert.False(t, ok)
	_, ok = g.Edge(-1, 0)
	assert.False(t, ok)
}

func TestNodeBelow(t *testing.T) {
	g := ledgeGraph()

	cases := []struct {
		name string
		p    geom.Vec2
		want int
		ok   bool
	}{
		{"above_ledge", geom.V(-0.5, 0.5), 1, true},
		{"inside_window", geom.V(-0.5, -0.25), 2, true},
		{"beside_window", geom.V(2, 0), 0, true},
		{"outside_world", geom.V(3, 0), -1, false},
		{"below_floor", geom.V(-0.5, -1.5), -1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := g.NodeBelow(c.p, 1e-6)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestApproach(t *testing.T) {
	g := ledgeGraph()

	t.Run("nearest_side", func(t *testing.T) {
		p, ok := g.Approach(0, 1, 0.1, 0.1)
		require.True(t, ok)
		assert.InDelta(t, -1.2, p.Takeoff.X, 1e-12)
		assert.InDelta(t, -0.8, p.Landing.X, 1e-12)
		assert.Equal(t, -1.0, p.Takeoff.Y)
		assert.Equal(t, 0.0, p.Landing.Y)
		assert.InDelta(t, 0.4, p.Delta.X, 1e-12)
		assert.InDelta(t, 1.0, p.Delta.Y, 1e-12)
	})

	t.Run("other_side_when_blocked", func(t *testing.T) {
		world := geom.V(2.5, 1)
		obs := obstacle.Build(world, []geom.AABB{geom.NewAABB(-2.45, -0.5, -1.5, 0)})
		g := Build(obs, world.Y)
		floor, ok := g.NodeAt(geom.V(2, -1), 1e-6)
		require.True(t, ok)
		top, ok := g.NodeAt(geom.V(-2, 0), 1e-6)
		require.True(t, ok)

		p, ok := g.Approach(floor, top, 0.1, 0.1)
		require.True(t, ok)
		assert.InDelta(t, -1.3, p.Takeoff.X, 1e-12)
		assert.InDelta(t, -1.7, p.Landing.X, 1e-12)
		assert.Less(t, p.Delta.X, 0.0)
	})

	t.Run("no_room", func(t *testing.T) {
		_, ok := g.Approach(2, 1, 0.1, 0.1)
		assert.False(t, ok)
		_, ok = g.Approach(0, 9, 0.1, 0.1)
		assert.False(t, ok)
	})
}

func TestLaunch(t *testing.T) {
	const gravity, clearance = -20.0, 0.15
	g := math.Abs(gravity)
	// landingX integrates the launch until the box comes back down to dy.
	landingX := func(v geom.Vec2, dy float64) float64 {
		land := (v.Y + math.Sqrt(v.Y*v.Y-2*g*dy)) / g
		return v.X * land
	}

	t.Run("lands_on_target", func(t *testing.T) {
		p := JumpPlan{Delta: geom.V(0.4, 0.5)}
		v, ok := p.Launch(6, 10, gravity, clearance, 10)
		require.True(t, ok)
		assert.InDelta(t, math.Sqrt(2*g*(0.5+clearance)), v.Y, 1e-12)
		assert.InDelta(t, 0.4, landingX(v, 0.5), 1e-12)
	})

	t.Run("slowed_to_clear_the_corner", func(t *testing.T) {
		p := JumpPlan{Delta: geom.V(0.4, 0.5)}
		v, ok := p.Launch(6, 10, gravity, clearance, 0.1)
		require.True(t, ok)
		clear := (v.Y - math.Sqrt(v.Y*v.Y-2*g*(0.5+clearance/2))) / g
		assert.InDelta(t, 0.1, v.X*clear, 1e-12)
		assert.Less(t, landingX(v, 0.5), 0.4)
		assert.Greater(t, landingX(v, 0.5), 0.1)
	})

	t.Run("downward_capped_by_speed", func(t *testing.T) {
		p := JumpPlan{Delta: geom.V(-1, -0.5)}
		v, ok := p.Launch(6, 1.5, gravity, clearance, 0)
		require.True(t, ok)
		assert.Equal(t, -1.5, v.X)
		assert.InDelta(t, math.Sqrt(2*g*clearance), v.Y, 1e-12)
	})

	t.Run("too_high", func(t *testing.T) {
		p := JumpPlan{Delta: geom.V(0.4, 0.5)}
		_, ok := p.Launch(3, 10, gravity, clearance, 10)
		assert.False(t, ok)
	})

	t.Run("apex_capped_but_reachable", func(t *testing.T) {
		p := JumpPlan{Delta: geom.V(0.4, 0.5)}
		v, ok := p.Launch(4.6, 10, gravity, clearance, 10)
		require.True(t, ok)
		assert.Equal(t, 4.6, v.Y)
		assert.InDelta(t, 0.4, landingX(v, 0.5), 1e-12)
	})

	t.Run("no_gravity", func(t *testing.T) {
		_, ok := JumpPlan{Delta: geom.V(1, 1)}.Launch(6, 10, 0, clearance, 10)
		assert.False(t, ok)
	})
}
