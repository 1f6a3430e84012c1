// Command termview runs the character simulation inside a terminal. Each cell
// is one screen pixel and the scene windows are scaled to fit.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/desktopcharacters/behavior"
	"github.com/milk9111/desktopcharacters/common"
	"github.com/milk9111/desktopcharacters/logging"
	"github.com/milk9111/desktopcharacters/platform"
	"github.com/milk9111/desktopcharacters/prefabs"
	"github.com/milk9111/desktopcharacters/sim"
)

const frameInterval = 16 * time.Millisecond

type view struct {
	screen tcell.Screen
	scene  *platform.Scene
	layout prefabs.SceneSpec
	sim    *sim.Simulation
	sound  *landingSound
	logger *zap.Logger

	charStyle tcell.Style
	dragStyle tcell.Style
}

func main() {
	scenePath := flag.String("scene", "", "scene file with the window layout (defaults to prefabs/scene.yaml)")
	logFile := flag.String("log", "termview.log", "log file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	mute := flag.Bool("mute", false, "disable the landing sound")
	flag.Parse()

	logger, err := logging.New(logging.Options{Level: *logLevel, OutputPaths: []string{*logFile}})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(*scenePath, *mute, logger); err != nil {
		logger.Error("termview stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(scenePath string, mute bool, logger *zap.Logger) error {
	world, err := prefabs.LoadWorldSpec()
	if err != nil {
		return err
	}
	chars, err := prefabs.LoadCharacterSpec()
	if err != nil {
		return err
	}
	var layout *prefabs.SceneSpec
	if scenePath != "" {
		layout, err = prefabs.LoadSceneFile(scenePath)
	} else {
		layout, err = prefabs.LoadSceneSpec()
	}
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	w, h := screen.Size()
	scene, err := platform.NewScene(w, h, fitWindows(*layout, w, h)...)
	if err != nil {
		return err
	}

	s := sim.New(platform.Compose(platform.NewFilter(scene, world.BannedTitles), scene), sim.ConfigFromSpec(*world), logger.Named("sim"))
	s.Spawn(*chars)
	if world.Follow.Enabled && world.Follow.Script != "" {
		script, err := behavior.Load(world.Follow.Script)
		if err != nil {
			return err
		}
		s.SetDecider(script)
	}

	v := &view{
		screen:    screen,
		scene:     scene,
		layout:    *layout,
		sim:       s,
		logger:    logger,
		charStyle: cellStyle(chars.Color.NRGBA(color.NRGBA(colornames.Cornflowerblue))),
		dragStyle: cellStyle(chars.DragColor.NRGBA(color.NRGBA(colornames.Orange))),
	}
	if !mute {
		sound, err := newLandingSound()
		if err != nil {
			logger.Info("landing sound disabled", zap.Error(err))
		} else {
			v.sound = sound
			defer sound.Close()
		}
	}
	logger.Info("termview started", zap.Int("cols", w), zap.Int("rows", h), zap.Int("characters", len(s.Characters())))
	v.loop()
	return nil
}

func (v *view) loop() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.handle(ev) {
				return
			}
		case now := <-ticker.C:
			v.sim.Advance(now.Sub(last).Seconds())
			last = now
			v.playLandings()
			v.draw()
		}
	}
}

// handle applies one terminal event and reports whether to keep running.
func (v *view) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyCtrlQ:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		v.scene.SetPointer(platform.Pointer{
			X:    float64(x) + 0.5,
			Y:    float64(y) + 0.5,
			Held: ev.Buttons()&tcell.Button1 != 0,
		})
	case *tcell.EventResize:
		w, h := ev.Size()
		if err := v.scene.SetScreenSize(w, h); err != nil {
			v.logger.Warn("resize", zap.Error(err))
			break
		}
		v.scene.SetWindows(fitWindows(v.layout, w, h))
		v.screen.Sync()
	}
	return true
}

func (v *view) playLandings() {
	for _, ev := range v.sim.Collisions() {
		if v.sound != nil {
			v.sound.Contact(ev.Contact)
		}
	}
}

func (v *view) draw() {
	v.screen.Clear()

	frame := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, win := range v.scene.Windows() {
		drawFrame(v.screen, win, frame)
	}

	m := v.sim.Mapper()
	for _, c := range v.sim.Characters() {
		style := v.charStyle
		if c.Dragged() {
			style = v.dragStyle
		}
		r := m.AABBToRect(c.AABB())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				v.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}

	status := fmt.Sprintf(" %d characters  step %d  esc quits ", len(v.sim.Characters()), v.sim.Steps())
	for i, r := range status {
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

func cellStyle(c color.NRGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

func drawFrame(screen tcell.Screen, win platform.Window, style tcell.Style) {
	x0, y0 := win.X, win.Y
	x1, y1 := win.X+win.W-1, win.Y+win.H-1
	for x := x0; x <= x1; x++ {
		screen.SetContent(x, y0, '─', nil, style)
		screen.SetContent(x, y1, '─', nil, style)
	}
	for y := y0; y <= y1; y++ {
		screen.SetContent(x0, y, '│', nil, style)
		screen.SetContent(x1, y, '│', nil, style)
	}
	screen.SetContent(x0, y0, '┌', nil, style)
	screen.SetContent(x1, y0, '┐', nil, style)
	screen.SetContent(x0, y1, '└', nil, style)
	screen.SetContent(x1, y1, '┘', nil, style)
	for i, r := range win.Title {
		if x0+2+i >= x1 {
			break
		}
		screen.SetContent(x0+2+i, y0, r, nil, style)
	}
}

// fitWindows scales the scene layout from its own screen size to cols x rows.
func fitWindows(layout prefabs.SceneSpec, cols, rows int) []platform.Window {
	sw, sh := layout.Screen.W, layout.Screen.H
	if sw <= 0 || sh <= 0 {
		return append([]platform.Window(nil), layout.Windows...)
	}
	fx := func(v int) int { return int(math.Round(common.Remap(float64(v), 0, float64(sw), 0, float64(cols)))) }
	fy := func(v int) int { return int(math.Round(common.Remap(float64(v), 0, float64(sh), 0, float64(rows)))) }
	out := make([]platform.Window, 0, len(layout.Windows))
	for _, win := range layout.Windows {
		x0, y0 := fx(win.X), fy(win.Y)
		x1, y1 := fx(win.X+win.W), fy(win.Y+win.H)
		win.X, win.Y, win.W, win.H = x0, y0, x1-x0, y1-y0
		out = append(out, win)
	}
	return out
}
