package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Garsondee/Lemrus/internal/game"
	"github.com/Garsondee/Lemrus/internal/termview"
	"github.com/gdamore/tcell/v2"
)

const renderInterval = 50 * time.Millisecond

func main() {
	var configPath, levelPath string
	flag.StringVar(&configPath, "config", "", "TOML config file (defaults built in)")
	flag.StringVar(&levelPath, "level", "", "PNG or BMP level image; overrides the generator")
	flag.Parse()

	cfg := game.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if levelPath != "" {
		cfg.Level.Path = levelPath
	}
	world, err := cfg.BuildWorld()
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	// The event goroutine only forwards; the loop below owns the world.
	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	updateTicker := time.NewTicker(cfg.TickDuration())
	defer updateTicker.Stop()
	renderTicker := time.NewTicker(renderInterval)
	defer renderTicker.Stop()

	paused := false
	selected := 0
	status := ""
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return
				}
				if ev.Key() == tcell.KeyTab {
					if n := len(world.Lemmings()); n > 0 {
						selected = (selected + 1) % n
					}
					continue
				}
				if ev.Key() != tcell.KeyRune {
					continue
				}
				switch ev.Rune() {
				case ' ':
					paused = !paused
				case 'w':
					status = toggle(world, selected, game.ActionWalk)
				case 'd':
					status = toggle(world, selected, game.ActionDig)
				case 'b':
					status = toggle(world, selected, game.ActionBridge)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-updateTicker.C:
			if !paused {
				world.Step()
			}
		case <-renderTicker.C:
			snap := world.Snapshot()
			cols, rows := screen.Size()
			grid := termview.Rasterize(&snap, cols, rows-1)
			screen.Clear()
			termview.Draw(screen, grid, termview.Status(&snap, paused, selected, status))
			screen.Show()
		}
	}
}

// toggle flips act on lemming id and returns the status line message.
func toggle(w *game.World, id int, act game.ActionSet) string {
	l, ok := w.Lemming(id)
	if !ok {
		return fmt.Sprintf("no lemming %d", id)
	}
	if err := w.SetActions(id, l.Actions.Toggle(act)); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("%s skills: %s", l.Label(), l.Actions)
}
