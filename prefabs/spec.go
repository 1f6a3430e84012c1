package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/platform"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

const (
	CharacterFile = "character.yaml"
	WorldFile     = "world.yaml"
	SceneFile     = "scene.yaml"
	FollowScript  = "follow.tengo"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type RestitutionSpec struct {
	Sides float64 `yaml:"sides"`
	Roof  float64 `yaml:"roof"`
	Floor float64 `yaml:"floor"`
}

type SpawnSpec struct {
	Count        int       `yaml:"count"`
	Min          geom.Vec2 `yaml:"min"`
	Max          geom.Vec2 `yaml:"max"`
	InitialSpeed float64   `yaml:"initial_speed"`
}

type CharacterSpec struct {
	Name            string          `yaml:"name"`
	Size            geom.Vec2       `yaml:"size"`
	Color           *YAMLColor      `yaml:"color"`
	DragColor       *YAMLColor      `yaml:"drag_color"`
	MaxSpeed        float64         `yaml:"max_speed"`
	MaxJumpVelocity float64         `yaml:"max_jump_velocity"`
	FrictionFloor   float64         `yaml:"friction_floor"`
	Restitution     RestitutionSpec `yaml:"restitution"`
	Spawn           SpawnSpec       `yaml:"spawn"`
}

func DefaultCharacterSpec() CharacterSpec {
	return CharacterSpec{
		Name:            "character",
		Size:            geom.V(0.5, 0.5),
		Color:           &YAMLColor{Color: color.NRGBA{R: 0x4a, G: 0xa3, B: 0xff, A: 0xff}},
		DragColor:       &YAMLColor{Color: color.NRGBA{R: 0xff, G: 0xb3, B: 0x47, A: 0xff}},
		MaxSpeed:        1.5,
		MaxJumpVelocity: 6.0,
		FrictionFloor:   0.4,
		Restitution:     RestitutionSpec{Sides: 0.2, Roof: 0.2, Floor: 0},
		Spawn: SpawnSpec{
			Count:        1,
			Min:          geom.V(-1, -1),
			Max:          geom.V(1, 1),
			InitialSpeed: 0,
		},
	}
}

func (s CharacterSpec) Validate() error {
	if !finite(s.Size.X, s.Size.Y) || s.Size.X <= 0 || s.Size.Y <= 0 {
		return fmt.Errorf("%w: character size %vx%v", ErrInvalidSpec, s.Size.X, s.Size.Y)
	}
	if s.Spawn.Count < 0 {
		return fmt.Errorf("%w: spawn count %d", ErrInvalidSpec, s.Spawn.Count)
	}
	if !finite(s.MaxSpeed, s.MaxJumpVelocity, s.FrictionFloor,
		s.Restitution.Sides, s.Restitution.Roof, s.Restitution.Floor, s.Spawn.InitialSpeed) {
		return fmt.Errorf("%w: character %s has non-finite values", ErrInvalidSpec, s.Name)
	}
	return nil
}

func LoadCharacterSpec() (*CharacterSpec, error) {
	spec := DefaultCharacterSpec()
	if err := loadInto(CharacterFile, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", CharacterFile, err)
	}
	return &spec, nil
}

type FollowSpec struct {
	Enabled bool    `yaml:"enabled"`
	Range   float64 `yaml:"range"`
	Script  string  `yaml:"script"`
}

type DebugSpec struct {
	Obstacles     bool    `yaml:"obstacles"`
	JumpGraph     bool    `yaml:"jump_graph"`
	StatsInterval float64 `yaml:"stats_interval"`
}

type WorldSpec struct {
	WorldScale    float64    `yaml:"world_scale"`
	Gravity       float64    `yaml:"gravity"`
	FixedStep     float64    `yaml:"fixed_step"`
	MaxFrameDelta float64    `yaml:"max_frame_delta"`
	MaxSubSteps   int        `yaml:"max_sub_steps"`
	DragWindow    float64    `yaml:"drag_window"`
	Seed          int64      `yaml:"seed"`
	Follow        FollowSpec `yaml:"follow"`
	Debug         DebugSpec  `yaml:"debug"`
	BannedTitles  []string   `yaml:"banned_titles"`
}

func DefaultWorldSpec() WorldSpec {
	return WorldSpec{
		WorldScale:    2.5,
		Gravity:       -20,
		FixedStep:     1.0 / 60,
		MaxFrameDelta: 0.25,
		MaxSubSteps:   16,
		DragWindow:    0.1,
		Seed:          1,
		Follow:        FollowSpec{Enabled: false, Range: 1, Script: FollowScript},
		Debug:         DebugSpec{StatsInterval: 3},
	}
}

func (s WorldSpec) Validate() error {
	if !finite(s.WorldScale, s.Gravity, s.FixedStep, s.MaxFrameDelta, s.DragWindow, s.Follow.Range, s.Debug.StatsInterval) {
		return fmt.Errorf("%w: world has non-finite values", ErrInvalidSpec)
	}
	if s.WorldScale <= 0 {
		return fmt.Errorf("%w: world_scale %v", ErrInvalidSpec, s.WorldScale)
	}
	if s.FixedStep <= 0 {
		return fmt.Errorf("%w: fixed_step %v", ErrInvalidSpec, s.FixedStep)
	}
	if s.MaxFrameDelta < s.FixedStep {
		return fmt.Errorf("%w: max_frame_delta %v below fixed_step %v", ErrInvalidSpec, s.MaxFrameDelta, s.FixedStep)
	}
	if s.MaxSubSteps <= 0 {
		return fmt.Errorf("%w: max_sub_steps %d", ErrInvalidSpec, s.MaxSubSteps)
	}
	if s.DragWindow <= 0 {
		return fmt.Errorf("%w: drag_window %v", ErrInvalidSpec, s.DragWindow)
	}
	return nil
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec := DefaultWorldSpec()
	if err := loadInto(WorldFile, &spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", WorldFile, err)
	}
	return &spec, nil
}

type ScreenSpec struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// SceneSpec is a fixed screen with windows listed front to back.
type SceneSpec struct {
	Name    string            `yaml:"name"`
	Screen  ScreenSpec        `yaml:"screen"`
	Windows []platform.Window `yaml:"windows"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](SceneFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadSceneFile reads a scene from an arbitrary path instead of the prefab
// directory.
func LoadSceneFile(path string) (*SceneSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	return &spec, nil
}

// NewScene builds an in-memory platform from the scene.
func (s SceneSpec) NewScene() (*platform.Scene, error) {
	scene, err := platform.NewScene(s.Screen.W, s.Screen.H, s.Windows...)
	if err != nil {
		return nil, fmt.Errorf("prefabs: scene %s: %w", s.Name, err)
	}
	return scene, nil
}

func loadInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the colour, or fallback when unset.
func (c *YAMLColor) NRGBA(fallback color.NRGBA) color.NRGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
