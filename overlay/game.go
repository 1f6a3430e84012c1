// Package overlay renders the simulation in a transparent, borderless,
// always-on-top ebiten window that covers the monitor.
package overlay

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"

	"github.com/milk9111/desktopcharacters/geom"
	"github.com/milk9111/desktopcharacters/pathfind"
	"github.com/milk9111/desktopcharacters/prefabs"
	"github.com/milk9111/desktopcharacters/sim"
)

// ErrQuit ends the run loop on request. RunGame reports it as a clean exit.
var ErrQuit = ebiten.Termination

type Options struct {
	Debug     bool
	JumpGraph bool
}

type Game struct {
	sim    *sim.Simulation
	spec   prefabs.CharacterSpec
	logger *zap.Logger

	reloads <-chan prefabs.Change
	ui      *ebitenui.UI

	debug       bool
	jumpGraph   bool
	paused      bool
	quit        bool
	passthrough bool
	clipboardOK bool
	last        time.Time
	screenW     int
	screenH     int
}

func NewGame(s *sim.Simulation, spec prefabs.CharacterSpec, opts Options, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		sim:       s,
		spec:      spec,
		logger:    logger,
		debug:     opts.Debug,
		jumpGraph: opts.JumpGraph,
	}
	g.ui = NewPauseUI(g)

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboardOK = true
	}
	return g
}

// WatchReloads makes the game re-apply prefab files received on ch.
func (g *Game) WatchReloads(ch <-chan prefabs.Change) {
	g.reloads = ch
}

func (g *Game) Update() error {
	if g.quit || chord(ebiten.KeyQ) {
		return ErrQuit
	}
	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if chord(ebiten.KeyC) {
		g.copySnapshot()
	}

	now := time.Now()
	delta := 0.0
	if !g.last.IsZero() {
		delta = now.Sub(g.last).Seconds()
	}
	g.last = now

	if g.paused {
		g.setPassthrough(false)
		g.ui.Update()
		return nil
	}

	g.sim.Advance(delta)
	g.setPassthrough(!g.hovering())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, c := range g.sim.Characters() {
		x, y, w, h := g.sim.Mapper().AABBToScreen(c.AABB())
		fill := g.spec.Color.NRGBA(color.NRGBA(colornames.Cornflowerblue))
		if c.Dragged() {
			fill = g.spec.DragColor.NRGBA(color.NRGBA(colornames.Orange))
		}
		vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), fill, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, colornames.Black, false)
	}

	if g.debug {
		drawDebug(screen, g.sim)
		if g.jumpGraph {
			g.drawJumpGraph(screen)
		}
		walls, segments := obstacleCount(g.sim.Obstacles())
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f\nCharacters: %d\nObstacles: %d (%d segments)\nStep: %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), len(g.sim.Characters()), walls, segments, g.sim.Steps()))
	}

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) drawJumpGraph(screen *ebiten.Image) {
	m := g.sim.Mapper()
	graph := g.sim.JumpGraph()
	reachable := pathfind.Reachable(g.spec.MaxJumpVelocity, g.sim.Config().Gravity)
	for _, n := range graph.Nodes {
		c := m.WorldToScreen(n.Center())
		vector.StrokeCircle(screen, float32(c.X), float32(c.Y), 4, 1, colornames.Yellow, true)
		for _, e := range n.Edges {
			if !reachable(e.Plan) {
				continue
			}
			a := m.WorldToScreen(e.Plan.Takeoff)
			b := m.WorldToScreen(e.Plan.Landing)
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, color.NRGBA{R: 0xff, G: 0xff, B: 0, A: 0x40}, true)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// hovering reports whether the overlay must take pointer input: the cursor is
// over a character or a drag is running.
func (g *Game) hovering() bool {
	if g.sim.Drag().Active() {
		return true
	}
	x, y := ebiten.CursorPosition()
	p := g.sim.Mapper().ScreenToWorld(geom.V(float64(x), float64(y)))
	for _, c := range g.sim.Characters() {
		if c.AABB().ContainsPoint(p) {
			return true
		}
	}
	return false
}

func (g *Game) setPassthrough(on bool) {
	if on == g.passthrough {
		return
	}
	g.passthrough = on
	ebiten.SetWindowMousePassthrough(on)
}

func (g *Game) copySnapshot() {
	if !g.clipboardOK {
		return
	}
	out, err := g.sim.Snapshot()
	if err != nil {
		g.logger.Error("snapshot failed", zap.Error(err))
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	g.logger.Info("snapshot copied", zap.Int("bytes", len(out)))
}

func (g *Game) applyReloads() {
	if g.reloads == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				return
			}
			if err := g.reload(change); err != nil {
				g.logger.Warn("prefab reload failed", zap.String("file", change.Name), zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) error {
	if change.Script {
		return ReloadScript(g.sim, change.Name)
	}
	switch change.Name {
	case prefabs.CharacterFile:
		spec, err := prefabs.LoadCharacterSpec()
		if err != nil {
			return err
		}
		g.spec = *spec
		g.sim.ApplyCharacterSpec(*spec)
	case prefabs.WorldFile:
		spec, err := prefabs.LoadWorldSpec()
		if err != nil {
			return err
		}
		g.sim.ApplyWorldSpec(*spec)
		g.jumpGraph = spec.Debug.JumpGraph
		if err := ReloadScript(g.sim, spec.Follow.Script); err != nil {
			return err
		}
	default:
		return nil
	}
	g.logger.Info("prefab reloaded", zap.String("file", change.Name))
	return nil
}

func chord(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) && ebiten.IsKeyPressed(ebiten.KeyShift) && inpututil.IsKeyJustPressed(key)
}

// IsQuit reports whether err is the overlay's normal exit.
func IsQuit(err error) bool {
	return errors.Is(err, ErrQuit)
}
