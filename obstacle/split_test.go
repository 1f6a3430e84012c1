package obstacle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/desktopcharacters/geom"
)

func TestSplitSegment(t *testing.T) {
	cases := []struct {
		name string
		a, b geom.Range
		want []geom.Range
	}{
		{"no_overlap", geom.Range{Min: 0, Max: 1}, geom.Range{Min: 2, Max: 3}, []geom.Range{{Min: 0, Max: 1}}},
		{"touching", geom.Range{Min: 0, Max: 1}, geom.Range{Min: 1, Max: 3}, []geom.Range{{Min: 0, Max: 1}}},
		{"middle", geom.Range{Min: 0, Max: 10}, geom.Range{Min: 4, Max: 6}, []geom.Range{{Min: 0, Max: 4}, {Min: 6, Max: 10}}},
		{"left", geom.Range{Min: 0, Max: 10}, geom.Range{Min: -5, Max: 3}, []geom.Range{{Min: 3, Max: 10}}},
		{"right", geom.Range{Min: 0, Max: 10}, geom.Range{Min: 7, Max: 20}, []geom.Range{{Min: 0, Max: 7}}},
		{"covered", geom.Range{Min: 0, Max: 10}, geom.Range{Min: -1, Max: 11}, nil},
		{"exact", geom.Range{Min: 0, Max: 10}, geom.Range{Min: 0, Max: 10}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SplitSegment(c.a, c.b, nil)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestSplitSegmentReconstructs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := geom.Range{Min: rng.Float64() * 10, Max: 0}
		a.Max = a.Min + 0.01 + rng.Float64()*10
		b := geom.Range{Min: rng.Float64()*25 - 5, Max: 0}
		b.Max = b.Min + 0.01 + rng.Float64()*10

		pieces := SplitSegment(a, b, nil)

		removed := 0.0
		if lo, hi := max(a.Min, b.Min), min(a.Max, b.Max); lo < hi {
			removed = hi - lo
		}
		kept := 0.0
		for _, p := range pieces {
			require.False(t, p.Degenerate(), "piece %v of %v - %v", p, a, b)
			require.GreaterOrEqual(t, p.Min, a.Min)
			require.LessOrEqual(t, p.Max, a.Max)
			require.False(t, p.Overlaps(b.Min, b.Max), "piece %v still overlaps %v", p, b)
			kept += p.Len()
		}
		require.InDelta(t, a.Len(), kept+removed, 1e-9)
	}
}

func TestSplitByAABB(t *testing.T) {
	occluder := geom.NewAABB(2, 2, 4, 4)

	t.Run("line_outside_span", func(t *testing.T) {
		o := New(Horizontal, 5, 0, 10)
		assert.Equal(t, o, SplitByAABB(o, occluder))
	})
	t.Run("line_through_span", func(t *testing.T) {
		o := SplitByAABB(New(Horizontal, 3, 0, 10), occluder)
		assert.Equal(t, []geom.Range{{Min: 0, Max: 2}, {Min: 4, Max: 10}}, o.Segments)
	})
	t.Run("line_on_edge", func(t *testing.T) {
		o := SplitByAABB(New(Vertical, 4, 0, 10), occluder)
		assert.Equal(t, []geom.Range{{Min: 0, Max: 2}, {Min: 4, Max: 10}}, o.Segments)
	})
	t.Run("fully_hidden", func(t *testing.T) {
		o := SplitByAABB(New(Vertical, 3, 2.5, 3.5), occluder)
		assert.True(t, o.Empty())
	})
}

func TestAddingOccludersNeverGrowsLength(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		o := New(Type(rng.Intn(2)), rng.Float64()*4-2, -3, 3)
		prev := o.TotalLength()
		for j := 0; j < 6; j++ {
			x, y := rng.Float64()*6-3, rng.Float64()*6-3
			occ := geom.NewAABB(x, y, x+rng.Float64()*2, y+rng.Float64()*2)
			o = SplitByAABB(o, occ)
			require.LessOrEqual(t, o.TotalLength(), prev+1e-12)
			prev = o.TotalLength()
		}
	}
}
