package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Lemrus/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var configPath, levelPath string
	var scale int
	var seed int64

	flag.StringVar(&configPath, "config", "", "TOML config file (defaults built in)")
	flag.StringVar(&levelPath, "level", "", "PNG or BMP level image; overrides the generator")
	flag.IntVar(&scale, "scale", 1, "integer pixel zoom")
	flag.Int64Var(&seed, "seed", 0, "level generator seed (0 keeps the configured seed)")
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
	if seed != 0 {
		cfg.Level.Seed = seed
	}

	g, err := game.New(cfg, scale)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowTitle("Lemrus")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
