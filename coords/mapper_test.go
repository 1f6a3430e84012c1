package coords

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/desktopcharacters/geom"
)

func TestWorldSizeFor(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		want geom.Vec2
	}{
		{"square", 800, 800, geom.V(2.5, 2.5)},
		{"wide", 1920, 960, geom.V(5, 2.5)},
		{"degenerate", 0, 600, geom.V(2.5, 2.5)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, WorldSizeFor(c.w, c.h, DefaultWorldScale))
		})
	}
}

func TestScreenToWorldCorners(t *testing.T) {
	m := NewMapper(1000, 500, 1)

	cases := []struct {
		name   string
		screen geom.Vec2
		world  geom.Vec2
	}{
		{"top_left", geom.V(0, 0), geom.V(-2, 1)},
		{"bottom_right", geom.V(1000, 500), geom.V(2, -1)},
		{"center", geom.V(500, 250), geom.V(0, 0)},
		{"bottom_left", geom.V(0, 500), geom.V(-2, -1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := m.ScreenToWorld(c.screen)
			assert.InDelta(t, c.world.X, got.X, 1e-12)
			assert.InDelta(t, c.world.Y, got.Y, 1e-12)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	m := NewMapper(1920, 1080, DefaultWorldScale)
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		p := geom.V(r.Float64()*1920, r.Float64()*1080)
		back := m.WorldToScreen(m.ScreenToWorld(p))
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}
}

func TestRectToWorldAndBack(t *testing.T) {
	m := NewMapper(1000, 500, 1)

	box := m.RectToWorld(250, 0, 500, 250)
	assert.InDelta(t, -1.0, box.MinX, 1e-12)
	assert.InDelta(t, 1.0, box.MaxX, 1e-12)
	assert.InDelta(t, 0.0, box.MinY, 1e-12)
	assert.InDelta(t, 1.0, box.MaxY, 1e-12)

	x, y, w, h := m.AABBToScreen(box)
	assert.InDelta(t, 250.0, x, 1e-9)
	assert.InDelta(t, 0.0, y, 1e-9)
	assert.InDelta(t, 500.0, w, 1e-9)
	assert.InDelta(t, 250.0, h, 1e-9)

	assert.Equal(t, image.Rect(250, 0, 750, 250), m.AABBToRect(box))
}

func TestScaleToScreen(t *testing.T) {
	m := NewMapper(1000, 500, 1)
	got := m.ScaleToScreen(geom.V(1, 1))
	assert.InDelta(t, 250.0, got.X, 1e-12)
	assert.InDelta(t, 250.0, got.Y, 1e-12)
}

func TestDegenerateMapperStaysFinite(t *testing.T) {
	cases := []struct {
		name string
		m    Mapper
	}{
		{"zero_value", Mapper{}},
		{"zero_screen", NewMapper(0, 0, DefaultWorldScale)},
		{"zero_height", NewMapper(800, 0, DefaultWorldScale)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.True(t, c.m.Degenerate())
			assert.Equal(t, geom.Vec2{}, c.m.ScreenToWorld(geom.V(10, 20)))
			assert.Equal(t, geom.Vec2{}, c.m.WorldToScreen(geom.V(1, 1)))
			assert.Equal(t, geom.Vec2{}, c.m.ScaleToScreen(geom.V(1, 1)))
			assert.Equal(t, image.Rectangle{}, c.m.AABBToRect(geom.NewAABB(-1, -1, 1, 1)))
		})
	}
	assert.False(t, NewMapper(800, 600, DefaultWorldScale).Degenerate())
}
