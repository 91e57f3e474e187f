package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Garsondee/Lemrus/internal/game"
)

type runResult struct {
	runIndex int
	seed     int64

	firstDigTick    int
	firstBridgeTick int
	firstTurnTick   int
	firstLeaveTick  int

	stats  game.RunStats
	window *game.WindowReport
	final  string
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configPath string
	var outPrefix string
	var verbose bool

	flag.IntVar(&runs, "runs", 3, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 1, "level seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "TOML config file (defaults built in)")
	flag.StringVar(&outPrefix, "out", "", "write each run's final terrain to <out>-<run>.png")
	flag.BoolVar(&verbose, "v", false, "print the full event log of each run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	cfg := game.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("=== Lemrus headless report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d tps=%d\n\n", runs, ticks, seedBase, seedStep, cfg.TicksPerSecond)

	all := make([]runResult, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rr, err := runOnce(cfg, i+1, seed, ticks, outPrefix, verbose)
		if err != nil {
			log.Fatal(err)
		}
		printRun(rr)
		all = append(all, rr)
	}
	printAggregate(all)
}

func runOnce(cfg game.Config, runIndex int, seed int64, ticks int, outPrefix string, verbose bool) (runResult, error) {
	cfg.Level.Seed = seed
	reporter := game.NewSimReporter(0)
	w, err := cfg.BuildWorld(game.WithReporter(reporter, cfg.TicksPerSecond))
	if err != nil {
		return runResult{}, err
	}
	w.RunTicks(ticks)

	if verbose {
		fmt.Print(w.Log().Format())
	}
	if outPrefix != "" {
		path := fmt.Sprintf("%s-%d.png", outPrefix, runIndex)
		f, err := os.Create(path) // #nosec G304 -- operator supplied prefix
		if err != nil {
			return runResult{}, err
		}
		if err := game.EncodePNG(f, w.Terrain()); err != nil {
			_ = f.Close()
			return runResult{}, fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return runResult{}, err
		}
	}

	entries := w.Log().Entries()
	return runResult{
		runIndex:        runIndex,
		seed:            seed,
		firstDigTick:    firstTick(entries, "terrain", "dig"),
		firstBridgeTick: firstTick(entries, "terrain", "bridge"),
		firstTurnTick:   firstTick(entries, "move", "turn"),
		firstLeaveTick:  firstTick(entries, "world", "left-map"),
		stats:           w.Stats(),
		window:          reporter.WindowSummary(),
		final:           w.Log().Summary(w.Tick(), w.Terrain(), w.Lemmings()),
	}, nil
}

func firstTick(entries []game.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func printRun(rr runResult) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rr.runIndex, rr.seed)
	fmt.Printf("phase_markers: first_dig=%d first_bridge=%d first_turn=%d first_leave=%d\n",
		rr.firstDigTick, rr.firstBridgeTick, rr.firstTurnTick, rr.firstLeaveTick)
	fmt.Print(rr.stats.Format())
	if rr.window != nil {
		fmt.Printf("window: %s\n", rr.window.Format())
	}
	fmt.Print(rr.final)
	fmt.Println()
}

func printAggregate(all []runResult) {
	var total game.RunStats
	for _, rr := range all {
		total.Merge(rr.stats)
	}
	fmt.Printf("=== Aggregate over %d runs ===\n", len(all))
	fmt.Print(total.Format())
}
