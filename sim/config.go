package sim

import (
	"time"

	"github.com/milk9111/desktopcharacters/character"
	"github.com/milk9111/desktopcharacters/coords"
	"github.com/milk9111/desktopcharacters/drag"
	"github.com/milk9111/desktopcharacters/prefabs"
)

type Config struct {
	WorldScale    float64
	Gravity       float64
	FixedStep     float64
	MaxFrameDelta float64
	MaxSubSteps   int
	DragWindow    float64
	Seed          int64

	FollowEnabled bool
	FollowRange   float64

	StatsInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		WorldScale:    coords.DefaultWorldScale,
		Gravity:       -20,
		FixedStep:     1.0 / 60,
		MaxFrameDelta: 0.25,
		MaxSubSteps:   character.DefaultMaxSubSteps,
		DragWindow:    drag.DefaultHistoryWindow,
		Seed:          1,
		StatsInterval: DefaultStatsInterval,
	}
}

func ConfigFromSpec(spec prefabs.WorldSpec) Config {
	return Config{
		WorldScale:    spec.WorldScale,
		Gravity:       spec.Gravity,
		FixedStep:     spec.FixedStep,
		MaxFrameDelta: spec.MaxFrameDelta,
		MaxSubSteps:   spec.MaxSubSteps,
		DragWindow:    spec.DragWindow,
		Seed:          spec.Seed,
		FollowEnabled: spec.Follow.Enabled,
		FollowRange:   spec.Follow.Range,
		StatsInterval: time.Duration(spec.Debug.StatsInterval * float64(time.Second)),
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.WorldScale <= 0 {
		c.WorldScale = def.WorldScale
	}
	if c.FixedStep <= 0 {
		c.FixedStep = def.FixedStep
	}
	if c.MaxFrameDelta < c.FixedStep {
		c.MaxFrameDelta = max(def.MaxFrameDelta, c.FixedStep)
	}
	if c.MaxSubSteps <= 0 {
		c.MaxSubSteps = def.MaxSubSteps
	}
	if c.DragWindow <= 0 {
		c.DragWindow = def.DragWindow
	}
	return c
}

// DataFromSpec converts the prefab tuning into character data.
func DataFromSpec(spec prefabs.CharacterSpec) character.Data {
	return character.Data{
		MaxSpeed:        spec.MaxSpeed,
		MaxJumpVelocity: spec.MaxJumpVelocity,
		FrictionFloor:   spec.FrictionFloor,
		Restitution: character.Restitution{
			Sides: spec.Restitution.Sides,
			Roof:  spec.Restitution.Roof,
			Floor: spec.Restitution.Floor,
		},
	}
}
