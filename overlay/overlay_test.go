package overlay

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/desktopcharacters/character"
	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/platform"
	"github.com/milk9111/desktopcharacters/sim"
)

func newSim(t *testing.T) *sim.Simulation {
	t.Helper()
	scene, err := platform.NewScene(1000, 400, platform.Window{ID: 1, X: 100, Y: 100, W: 200, H: 100})
	require.NoError(t, err)
	cfg := sim.DefaultConfig()
	cfg.WorldScale = 1
	cfg.StatsInterval = 0
	s := sim.New(scene, cfg, nil)
	s.AddCharacter(character.New(geom.V(0, -0.75), geom.V(0.5, 0.5), character.DefaultData()))
	s.Step(1.0 / 60)
	return s
}

func TestDebugSpaceMirrorsFrame(t *testing.T) {
	s := newSim(t)

	counts := map[any]int{}
	debugSpace(s).EachShape(func(shape *cp.Shape) {
		counts[shape.UserData]++
	})

	assert.Equal(t, 8, counts[shapeObstacle])
	assert.Equal(t, 1, counts[shapeGrounded])
	assert.Zero(t, counts[shapeCharacter])
}

func TestToNRGBAClamps(t *testing.T) {
	c := toNRGBA(cp.FColor{R: 2, G: -1, B: 0.5, A: 1})
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(127), c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestReloadScript(t *testing.T) {
	s := newSim(t)
	require.NoError(t, ReloadScript(s, "follow.tengo"))
	require.NoError(t, ReloadScript(s, ""))
	assert.Error(t, ReloadScript(s, "missing.tengo"))
}

func TestObstacleCount(t *testing.T) {
	s := newSim(t)
	walls, segments := obstacleCount(s.Obstacles())
	assert.Equal(t, 8, walls)
	assert.Equal(t, 8, segments)
}
