package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/desktopcharacters/overlay"
	"github.com/milk9111/desktopcharacters/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "draw obstacles and the HUD")
	scene := flag.String("scene", "", "scene file with the window layout (defaults to prefabs/scene.yaml)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	dev := flag.Bool("dev", false, "human readable logs")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	app, cleanup, err := InitializeApp(Flags{Debug: *debug, Scene: *scene, LogLevel: *logLevel, Dev: *dev})
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if watcher, err := prefabs.NewWatcher(prefabs.Dir()); err != nil {
		app.Logger.Info("prefab hot reload disabled", zap.Error(err))
	} else {
		app.Game.WatchReloads(watcher.Events)
		g.Go(func() error {
			defer watcher.Close()
			for {
				select {
				case <-ctx.Done():
					return nil
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					app.Logger.Warn("prefab watcher", zap.Error(err))
				}
			}
		})
	}

	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowTitle(windowTitle)

	err = ebiten.RunGameWithOptions(app.Game, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
	})
	cancel()
	if werr := g.Wait(); werr != nil {
		app.Logger.Warn("watcher stopped", zap.Error(werr))
	}
	if err != nil && !overlay.IsQuit(err) {
		app.Logger.Error("overlay stopped", zap.Error(err))
		cleanup()
		log.Fatal(err)
	}
}
