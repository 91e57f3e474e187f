package game

import (
	"image"
	"time"
)

// TestSim is a headless harness used by tests. It builds a World without
// touching ebiten and keeps the SimLog for assertions.
type TestSim struct {
	Width  uint32
	Height uint32
	World  *World
	SimLog *SimLog

	fills    []terrainFill
	anims    *AnimationTable
	dt       time.Duration
	gravity  bool
	verbose  bool
	lemmings []spawnSpec
}

type terrainFill struct {
	r image.Rectangle
	c Cell
}

type spawnSpec struct {
	x, y    uint32
	dir     Direction
	actions ActionSet
}

// SimOption is a builder function applied to a TestSim during construction.
type SimOption func(*TestSim)

// WithMapSize sets the terrain dimensions.
func WithMapSize(w, h uint32) SimOption {
	return func(ts *TestSim) {
		ts.Width = w
		ts.Height = h
	}
}

// WithGround fills every row from top down to the bottom with breakable ground.
func WithGround(top uint32) SimOption {
	return func(ts *TestSim) {
		ts.fills = append(ts.fills, terrainFill{image.Rect(0, int(top), 1<<30, 1<<30), SolidBreakable})
	}
}

// WithFill paints a rectangle of cells. Later fills win.
func WithFill(x0, y0, x1, y1 int, c Cell) SimOption {
	return func(ts *TestSim) {
		ts.fills = append(ts.fills, terrainFill{image.Rect(x0, y0, x1, y1), c})
	}
}

// WithAnimations replaces the default walk cycle.
func WithAnimations(at *AnimationTable) SimOption {
	return func(ts *TestSim) { ts.anims = at }
}

// WithTick sets the per-tick delta.
func WithTick(dt time.Duration) SimOption {
	return func(ts *TestSim) { ts.dt = dt }
}

// WithGravity enables terrain settling.
func WithGravity(on bool) SimOption {
	return func(ts *TestSim) { ts.gravity = on }
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return func(ts *TestSim) { ts.verbose = v }
}

// WithLemming adds a lemming; lemmings update in the order they are added.
func WithLemming(x, y uint32, dir Direction, actions ActionSet) SimOption {
	return func(ts *TestSim) {
		ts.lemmings = append(ts.lemmings, spawnSpec{x, y, dir, actions})
	}
}

// NewTestSim applies the options, paints the terrain and spawns lemmings.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Width:  200,
		Height: 120,
		dt:     80 * time.Millisecond,
	}
	for _, o := range opts {
		o(ts)
	}
	if ts.anims == nil {
		ts.anims = DefaultAnimations()
	}
	tm := NewTerrainMap(ts.Width, ts.Height)
	for _, f := range ts.fills {
		tm.Fill(f.r, f.c)
	}
	ts.SimLog = NewSimLog(ts.verbose)
	ts.World = NewWorld(tm, ts.anims,
		WithSimLog(ts.SimLog),
		WithTickDuration(ts.dt),
		WithTerrainGravity(ts.gravity),
	)
	for _, s := range ts.lemmings {
		ts.World.Spawn(s.x, s.y, s.dir, s.actions)
	}
	return ts
}

// Terrain returns the live terrain.
func (ts *TestSim) Terrain() *TerrainMap { return ts.World.Terrain() }

// Lemming returns the i-th spawned lemming.
func (ts *TestSim) Lemming(i int) *Lemming { return ts.World.Lemmings()[i] }

// CurrentTick returns the number of completed ticks.
func (ts *TestSim) CurrentTick() int { return ts.World.Tick() }

// RunTicks advances the simulation n ticks.
func (ts *TestSim) RunTicks(n int) { ts.World.RunTicks(n) }

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// It returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.World.Step()
		if predicate(ts) {
			return ts.World.Tick()
		}
	}
	return -1
}
