// Package sim coordinates a frame: it polls the platform, rebuilds the
// obstacles, applies pointer input and advances every character with a fixed
// time step.
package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milk9111/desktopcharacters/behavior"
	"github.com/milk9111/desktopcharacters/character"
	"github.com/milk9111/desktopcharacters/coords"
	"github.com/milk9111/desktopcharacters/drag"
	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/obstacle"
	"github.com/milk9111/desktopcharacters/pathfind"
	"github.com/milk9111/desktopcharacters/platform"
	"github.com/milk9111/desktopcharacters/prefabs"
)

const maxPendingCollisions = 1024

type Simulation struct {
	cfg      Config
	platform platform.Platform
	logger   *zap.Logger

	characters []*character.Character
	drag       *drag.Controller
	decider    behavior.Decider
	builder    *obstacle.Builder

	mapper    coords.Mapper
	world     character.World
	bounds    geom.AABB
	windows   []geom.AABB
	graph     *pathfind.Graph
	graphStep uint64

	events     *Queue[WindowEvent]
	collisions *Queue[CollisionEvent]

	pointer     geom.Vec2
	pointerHeld bool
	polled      platform.Pointer
	hasPolled   bool

	scheduler   *Scheduler
	stats       *Stats
	accumulator float64
	steps       uint64
	elapsed     float64
	rng         *rand.Rand
	decideErr   string
}

// New creates a simulation over p. A nil platform gives an 800x600 screen
// without windows.
func New(p platform.Platform, cfg Config, logger *zap.Logger) *Simulation {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.normalized()

	s := &Simulation{
		cfg:        cfg,
		platform:   p,
		logger:     logger,
		drag:       drag.NewController(cfg.DragWindow, logger.Named("drag")),
		builder:    obstacle.NewBuilder(logger.Named("obstacles")),
		events:     NewQueue[WindowEvent](0),
		collisions: NewQueue[CollisionEvent](maxPendingCollisions),
		stats:      NewStats(cfg.StatsInterval, logger.Named("stats")),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
	}

	s.scheduler = NewScheduler()
	s.scheduler.Add("windows", SystemFunc(updateWindows))
	s.scheduler.Add("input", SystemFunc(updateInput))
	s.scheduler.Add("follow", SystemFunc(updateFollow))
	s.scheduler.Add("characters", SystemFunc(updateCharacters))

	s.refreshWorld()
	s.world.Obstacles = obstacle.Boundary(s.world.Size)
	return s
}

func (s *Simulation) Config() Config { return s.cfg }

// SetDecider installs the follow behaviour. A nil decider follows the pointer
// directly when following is enabled.
func (s *Simulation) SetDecider(d behavior.Decider) {
	s.decider = d
	s.decideErr = ""
}

func (s *Simulation) AddCharacter(c *character.Character) {
	c.SetLogger(s.logger.With(zap.String("character", c.ID().String())))
	s.characters = append(s.characters, c)
}

// RemoveCharacter drops the character and ends its drag, if any.
func (s *Simulation) RemoveCharacter(id uuid.UUID) bool {
	for i, c := range s.characters {
		if c.ID() != id {
			continue
		}
		s.drag.Release(c)
		s.characters = append(s.characters[:i], s.characters[i+1:]...)
		return true
	}
	return false
}

// Spawn adds characters from the character prefab at random positions inside its spawn
// area, clamped to the world, with a random initial velocity.
func (s *Simulation) Spawn(spec prefabs.CharacterSpec) []*character.Character {
	data := DataFromSpec(spec)
	half := spec.Size.Scale(0.5)
	lo := geom.V(max(spec.Spawn.Min.X, -s.world.Size.X+half.X), max(spec.Spawn.Min.Y, -s.world.Size.Y+half.Y))
	hi := geom.V(min(spec.Spawn.Max.X, s.world.Size.X-half.X), min(spec.Spawn.Max.Y, s.world.Size.Y-half.Y))

	out := make([]*character.Character, 0, spec.Spawn.Count)
	for range spec.Spawn.Count {
		pos := geom.V(
			lo.X+s.rng.Float64()*max(hi.X-lo.X, 0),
			lo.Y+s.rng.Float64()*max(hi.Y-lo.Y, 0),
		)
		angle := s.rng.Float64() * 2 * math.Pi
		c := character.New(pos, spec.Size, data)
		c.SetVelocity(geom.V(math.Cos(angle), math.Sin(angle)).Scale(spec.Spawn.InitialSpeed))
		s.AddCharacter(c)
		out = append(out, c)
	}
	s.logger.Info("characters spawned", zap.Int("count", len(out)), zap.Int("total", len(s.characters)))
	return out
}

// ApplyCharacterSpec retunes every character in place.
func (s *Simulation) ApplyCharacterSpec(spec prefabs.CharacterSpec) {
	data := DataFromSpec(spec)
	for _, c := range s.characters {
		c.SetData(data)
		c.SetSize(spec.Size)
	}
	s.logger.Info("character spec applied", zap.Int("characters", len(s.characters)))
}

// ApplyWorldSpec swaps the configuration. Characters and the step
// accumulator are kept.
func (s *Simulation) ApplyWorldSpec(spec prefabs.WorldSpec) {
	s.cfg = ConfigFromSpec(spec).normalized()
	s.drag.SetWindow(s.cfg.DragWindow)
	s.stats.SetInterval(s.cfg.StatsInterval)
	s.refreshWorld()
	s.logger.Info("world spec applied",
		zap.Float64("gravity", s.cfg.Gravity),
		zap.Float64("fixed_step", s.cfg.FixedStep),
		zap.Bool("follow", s.cfg.FollowEnabled),
	)
}

// Push queues pointer input. Events are applied at the next step.
func (s *Simulation) Push(ev WindowEvent) {
	s.events.Push(ev)
}

// Advance runs as many fixed steps as fit in the accumulated frame time and
// returns how many ran.
func (s *Simulation) Advance(frameDelta float64) int {
	if math.IsNaN(frameDelta) || math.IsInf(frameDelta, 0) || frameDelta < 0 {
		frameDelta = 0
	}
	s.accumulator += min(frameDelta, s.cfg.MaxFrameDelta)

	n := 0
	for s.accumulator >= s.cfg.FixedStep {
		s.Step(s.cfg.FixedStep)
		s.accumulator -= s.cfg.FixedStep
		n++
	}
	s.stats.Frame(time.Now())
	return n
}

// Step runs one simulation step of dt seconds.
func (s *Simulation) Step(dt float64) {
	s.scheduler.Update(s, dt)
	s.steps++
	s.elapsed += dt
}

func (s *Simulation) Characters() []*character.Character { return s.characters }
func (s *Simulation) Obstacles() []obstacle.Obstacle     { return s.world.Obstacles }
func (s *Simulation) WorldSize() geom.Vec2               { return s.world.Size }
func (s *Simulation) Mapper() coords.Mapper              { return s.mapper }
func (s *Simulation) Drag() *drag.Controller             { return s.drag }
func (s *Simulation) Stats() *Stats                      { return s.stats }
func (s *Simulation) Steps() uint64                      { return s.steps }

// Windows returns the world boxes of the last step, front to back, after
// contained windows were dropped.
func (s *Simulation) Windows() []geom.AABB { return s.windows }

// Pointer returns the last pointer position in world units and whether the
// button is held.
func (s *Simulation) Pointer() (geom.Vec2, bool) { return s.pointer, s.pointerHeld }

// JumpGraph returns the jump graph of the current obstacles.
func (s *Simulation) JumpGraph() *pathfind.Graph {
	if s.graph == nil || s.graphStep != s.steps {
		s.graph = pathfind.Build(s.world.Obstacles, s.world.Size.Y)
		s.graphStep = s.steps
	}
	return s.graph
}

// Collisions drains the contacts collected since the last call.
func (s *Simulation) Collisions() []CollisionEvent {
	return s.collisions.Drain()
}

func (s *Simulation) screenSize() (int, int) {
	if s.platform == nil {
		return 800, 600
	}
	return s.platform.ScreenSize()
}

func (s *Simulation) refreshWorld() {
	w, h := s.screenSize()
	s.mapper = coords.NewMapper(w, h, s.cfg.WorldScale)
	s.world.Size = s.mapper.World
	s.world.Gravity = s.cfg.Gravity
	s.world.MaxSubSteps = s.cfg.MaxSubSteps
	s.bounds = s.world.Bounds()
	s.drag.SetBounds(&s.bounds)
}

func updateWindows(s *Simulation, _ float64) {
	s.refreshWorld()
	if s.platform == nil {
		s.windows = nil
		s.world.Obstacles = s.builder.Build(s.world.Size, nil)
		return
	}

	windows := s.platform.Windows()
	boxes := make([]geom.AABB, 0, len(windows))
	for _, w := range windows {
		boxes = append(boxes, s.mapper.RectToWorld(float64(w.X), float64(w.Y), float64(w.W), float64(w.H)))
	}
	s.windows = obstacle.RemoveContained(boxes)
	s.world.Obstacles = s.builder.Build(s.world.Size, s.windows)
}

func updateInput(s *Simulation, dt float64) {
	s.pollPointer()

	// A drag that starts this step already has its first sample.
	moved := false
	for _, ev := range s.events.Drain() {
		pos := s.mapper.ScreenToWorld(geom.V(ev.X, ev.Y))
		s.pointer = pos
		switch ev.Kind {
		case PointerDown:
			s.pointerHeld = true
			if s.drag.PointerDown(s.characters, pos) {
				moved = true
			}
		case PointerUp:
			s.pointerHeld = false
			if s.drag.Active() {
				s.drag.PointerMove(pos, dt)
				moved = true
				s.drag.PointerUp()
			}
		}
	}

	if s.drag.Active() && !moved {
		s.drag.PointerMove(s.pointer, dt)
	}
}

// pollPointer turns changes of the platform pointer into window events. The
// first poll only seeds the pointer position.
func (s *Simulation) pollPointer() {
	if s.platform == nil {
		return
	}
	p := s.platform.Pointer()
	prev := s.polled
	first := !s.hasPolled
	s.polled = p
	s.hasPolled = true

	if first {
		s.pointer = s.mapper.ScreenToWorld(geom.V(p.X, p.Y))
		prev = platform.Pointer{X: p.X, Y: p.Y}
	}
	if p.X != prev.X || p.Y != prev.Y {
		s.events.Push(WindowEvent{Kind: PointerMove, X: p.X, Y: p.Y})
	}
	switch {
	case p.Held && !prev.Held:
		s.events.Push(WindowEvent{Kind: PointerDown, X: p.X, Y: p.Y})
	case !p.Held && prev.Held:
		s.events.Push(WindowEvent{Kind: PointerUp, X: p.X, Y: p.Y})
	}
}

func updateFollow(s *Simulation, _ float64) {
	if !s.cfg.FollowEnabled {
		for _, c := range s.characters {
			c.SetFollowTarget(character.FollowTarget{})
		}
		return
	}

	decider := s.decider
	if decider == nil {
		decider = behavior.FollowPointer
	}
	for _, c := range s.characters {
		if c.Dragged() {
			c.SetFollowTarget(character.FollowTarget{})
			continue
		}
		d, err := decider.Decide(behavior.Input{
			Pointer:     s.pointer,
			PointerHeld: s.pointerHeld,
			Position:    c.Position(),
			Grounded:    c.Grounded(),
			FollowRange: s.cfg.FollowRange,
		})
		if err != nil {
			if msg := err.Error(); msg != s.decideErr {
				s.logger.Warn("follow behaviour failed", zap.Error(err))
				s.decideErr = msg
			}
			c.SetFollowTarget(character.FollowTarget{})
			continue
		}
		if !d.Follow {
			c.SetFollowTarget(character.FollowTarget{})
			continue
		}
		target, launch := d.Target, (*geom.Vec2)(nil)
		if c.Grounded() {
			target, launch = s.route(c, d.Target)
		}
		c.SetFollowTarget(character.FollowTarget{Exists: true, Position: target})
		if launch != nil && c.Jump(*launch) {
			s.logger.Debug("character jumped",
				zap.String("character", c.ID().String()),
				zap.Float64("vx", launch.X),
				zap.Float64("vy", launch.Y),
			)
		}
	}
}

func updateCharacters(s *Simulation, dt float64) {
	for i, c := range s.characters {
		c.Update(&s.world, dt)
		for _, contact := range c.Contacts() {
			s.collisions.Push(CollisionEvent{Character: c.ID(), Index: i, Step: s.steps, Contact: contact})
		}
	}
}
