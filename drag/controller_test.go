package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/desktopcharacters/character"
	"github.com/milk9111/desktopcharacters/geom"
)

func newChars() []*character.Character {
	return []*character.Character{
		character.New(geom.V(0, 0), geom.V(0.5, 0.5), character.DefaultData()),
		character.New(geom.V(0.2, 0), geom.V(0.5, 0.5), character.DefaultData()),
		character.New(geom.V(2, 0), geom.V(0.5, 0.5), character.DefaultData()),
	}
}

func TestPointerDownPicksTopMost(t *testing.T) {
	cases := []struct {
		name string
		pos  geom.Vec2
		want int // -1 = none
	}{
		{"overlap_prefers_last_added", geom.V(0.1, 0), 1},
		{"only_first", geom.V(-0.2, 0), 0},
		{"edge_inclusive", geom.V(2.25, 0.25), 2},
		{"miss", geom.V(1, 0.9), -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			chars := newChars()
			d := NewController(0, nil)
			ok := d.PointerDown(chars, c.pos)
			if c.want < 0 {
				assert.False(t, ok)
				assert.False(t, d.Active())
				return
			}
			require.True(t, ok)
			assert.Same(t, chars[c.want], d.Dragged())
			assert.True(t, chars[c.want].Dragged())
			require.Len(t, d.History(), 1)
			assert.Equal(t, Sample{Position: chars[c.want].Position(), DT: 0}, d.History()[0])
		})
	}
}

func TestDragFollowsPointerWithOffset(t *testing.T) {
	chars := newChars()
	d := NewController(0, nil)
	require.True(t, d.PointerDown(chars, geom.V(2.1, 0.1)))

	d.PointerMove(geom.V(1.1, 0.6), 1.0/60)
	assert.InDelta(t, 1.0, chars[2].Position().X, 1e-12)
	assert.InDelta(t, 0.5, chars[2].Position().Y, 1e-12)
	assert.Equal(t, geom.Vec2{}, chars[2].Velocity())
}

func TestImmediateReleaseGivesZeroVelocity(t *testing.T) {
	chars := newChars()
	chars[0].SetVelocity(geom.V(4, -2))

	d := NewController(0, nil)
	require.True(t, d.PointerDown(chars, geom.V(-0.2, 0)))
	d.PointerUp()

	assert.False(t, chars[0].Dragged())
	assert.Equal(t, geom.Vec2{}, chars[0].Velocity())
	assert.False(t, d.Active())
	assert.Empty(t, d.History())
}

func TestReleaseVelocityFromHistory(t *testing.T) {
	chars := newChars()
	d := NewController(0.1, nil)
	require.True(t, d.PointerDown(chars, geom.V(2, 0)))

	const dt = 1.0 / 32
	for i := 1; i <= 10; i++ {
		d.PointerMove(geom.V(2+0.1*float64(i), 0), dt)
	}

	// Three samples of 1/32s fit inside 0.1s, a fourth would not.
	require.Len(t, d.History(), 3)
	total := 0.0
	for _, s := range d.History() {
		total += s.DT
	}
	assert.LessOrEqual(t, total, 0.1)

	d.PointerUp()
	assert.InDelta(t, 0.2/(3*dt), chars[2].Velocity().X, 1e-9)
	assert.InDelta(t, 0.0, chars[2].Velocity().Y, 1e-12)
}

func TestHistoryKeepsNewestSampleWhenOverWindow(t *testing.T) {
	chars := newChars()
	d := NewController(0.1, nil)
	require.True(t, d.PointerDown(chars, geom.V(0, 0)))
	d.PointerMove(geom.V(0.5, 0), 0.5)
	require.Len(t, d.History(), 1)
	assert.InDelta(t, 0.7, d.History()[0].Position.X, 1e-12)
	d.PointerUp()
	assert.Equal(t, geom.Vec2{}, chars[1].Velocity())
}

func TestDragClampedToBounds(t *testing.T) {
	chars := newChars()
	d := NewController(0, nil)
	bounds := geom.NewAABB(-2.5, -1, 2.5, 1)
	d.SetBounds(&bounds)

	require.True(t, d.PointerDown(chars, geom.V(2, 0)))
	d.PointerMove(geom.V(10, -10), 1.0/60)

	assert.Equal(t, geom.V(2.25, -0.75), chars[2].Position())
}

func TestReleaseRemovedCharacter(t *testing.T) {
	chars := newChars()
	d := NewController(0, nil)
	require.True(t, d.PointerDown(chars, geom.V(2, 0)))

	d.Release(chars[0])
	assert.True(t, d.Active(), "release of another character is ignored")

	d.Release(chars[2])
	assert.False(t, d.Active())
	assert.False(t, chars[2].Dragged())
}

func TestSecondPointerDownIgnoredWhileDragging(t *testing.T) {
	chars := newChars()
	d := NewController(0, nil)
	require.True(t, d.PointerDown(chars, geom.V(2, 0)))
	assert.False(t, d.PointerDown(chars, geom.V(0, 0)))
	assert.Same(t, chars[2], d.Dragged())
}
