// Package behavior decides the follow target of each character, either
// directly from the pointer or through a tengo script.
package behavior

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/prefabs"
)

var ErrBadOutput = errors.New("behavior: script returned an invalid decision")

// Input is what a decider sees about one character, in world units.
type Input struct {
	Pointer     geom.Vec2
	PointerHeld bool
	Position    geom.Vec2
	Grounded    bool
	FollowRange float64
}

type Decision struct {
	Follow bool
	Target geom.Vec2
}

type Decider interface {
	Decide(in Input) (Decision, error)
}

type DeciderFunc func(in Input) (Decision, error)

func (f DeciderFunc) Decide(in Input) (Decision, error) { return f(in) }

// FollowPointer always walks towards the pointer.
var FollowPointer = DeciderFunc(func(in Input) (Decision, error) {
	return Decision{Follow: true, Target: in.Pointer}, nil
})

const dispatch = `
__output = decide(__input)
`

// Script runs a compiled tengo program that defines decide(input).
type Script struct {
	name     string
	compiled *tengo.Compiled
}

// Load compiles the named script from the prefab scripts.
func Load(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("behavior: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func Compile(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), dispatch...))
	_ = script.Add("__input", map[string]any{})
	_ = script.Add("__output", nil)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("behavior: compile %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

func (s *Script) Name() string { return s.name }

func (s *Script) Decide(in Input) (Decision, error) {
	if err := s.compiled.Set("__input", map[string]any{
		"pointer_x":    in.Pointer.X,
		"pointer_y":    in.Pointer.Y,
		"pointer_held": in.PointerHeld,
		"char_x":       in.Position.X,
		"char_y":       in.Position.Y,
		"grounded":     in.Grounded,
		"follow_range": in.FollowRange,
	}); err != nil {
		return Decision{}, fmt.Errorf("behavior: %s: set input: %w", s.name, err)
	}
	if err := s.compiled.Run(); err != nil {
		return Decision{}, fmt.Errorf("behavior: %s: run: %w", s.name, err)
	}

	out := s.compiled.Get("__output").Map()
	if out == nil {
		return Decision{}, fmt.Errorf("%w: %s", ErrBadOutput, s.name)
	}

	follow, ok := out["follow"].(bool)
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s: follow must be a bool", ErrBadOutput, s.name)
	}
	if !follow {
		return Decision{}, nil
	}

	x, okX := number(out["x"])
	y, okY := number(out["y"])
	if !okX || !okY {
		return Decision{}, fmt.Errorf("%w: %s: x and y must be numbers", ErrBadOutput, s.name)
	}
	return Decision{Follow: true, Target: geom.V(x, y)}, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}
