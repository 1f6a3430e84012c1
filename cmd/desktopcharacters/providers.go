package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/desktopcharacters/logging"
	"github.com/milk9111/desktopcharacters/overlay"
	"github.com/milk9111/desktopcharacters/platform"
	"github.com/milk9111/desktopcharacters/prefabs"
	"github.com/milk9111/desktopcharacters/sim"
)

const windowTitle = "desktopcharacters"

type Flags struct {
	Debug    bool
	Scene    string
	LogLevel string
	Dev      bool
}

type App struct {
	Game   *overlay.Game
	Sim    *sim.Simulation
	Logger *zap.Logger
}

func ProvideLogger(flags Flags) (*zap.Logger, func(), error) {
	logger, err := logging.New(logging.Options{Level: flags.LogLevel, Development: flags.Dev})
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideWorldSpec() (*prefabs.WorldSpec, error) {
	return prefabs.LoadWorldSpec()
}

func ProvideCharacterSpec() (*prefabs.CharacterSpec, error) {
	return prefabs.LoadCharacterSpec()
}

// ProvidePlatform serves the scene windows, resized to the monitor, behind the
// title filter, with the ebiten cursor as pointer.
func ProvidePlatform(flags Flags, world *prefabs.WorldSpec, logger *zap.Logger) (platform.Platform, error) {
	var (
		spec *prefabs.SceneSpec
		err  error
	)
	if flags.Scene != "" {
		spec, err = prefabs.LoadSceneFile(flags.Scene)
	} else {
		spec, err = prefabs.LoadSceneSpec()
	}
	if err != nil {
		return nil, err
	}

	w, h := ebiten.Monitor().Size()
	spec.Screen = prefabs.ScreenSpec{W: w, H: h}
	scene, err := spec.NewScene()
	if err != nil {
		return nil, fmt.Errorf("desktopcharacters: scene: %w", err)
	}
	logger.Info("scene loaded",
		zap.String("name", spec.Name),
		zap.Int("windows", len(spec.Windows)),
		zap.Int("screen_w", w),
		zap.Int("screen_h", h),
	)

	titles := append([]string{windowTitle}, world.BannedTitles...)
	return platform.Compose(platform.NewFilter(scene, titles), overlay.Pointer{}), nil
}

func ProvideSimulation(p platform.Platform, world *prefabs.WorldSpec, chars *prefabs.CharacterSpec, logger *zap.Logger) (*sim.Simulation, error) {
	s := sim.New(p, sim.ConfigFromSpec(*world), logger.Named("sim"))
	s.Spawn(*chars)
	if world.Follow.Enabled {
		if err := overlay.ReloadScript(s, world.Follow.Script); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func ProvideGame(s *sim.Simulation, flags Flags, world *prefabs.WorldSpec, chars *prefabs.CharacterSpec, logger *zap.Logger) *overlay.Game {
	return overlay.NewGame(s, *chars, overlay.Options{
		Debug:     flags.Debug || world.Debug.Obstacles,
		JumpGraph: world.Debug.JumpGraph,
	}, logger.Named("overlay"))
}
