package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownLemming is returned when an id does not name a spawned lemming.
var ErrUnknownLemming = errors.New("unknown lemming")

// World owns the terrain and the lemmings. It is stepped by one caller at a
// time; renderers read it between steps.
type World struct {
	terrain  *TerrainMap
	anims    *AnimationTable
	lemmings []*Lemming
	tick     int
	nextID   int

	tickDuration time.Duration
	gravity      bool

	log         *SimLog
	feed        *EventFeed
	stats       RunStats
	reporter    *SimReporter
	reportEvery int
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithSimLog records events into sl.
func WithSimLog(sl *SimLog) WorldOption {
	return func(w *World) { w.log = sl }
}

// WithEventFeed mirrors notable events into an on-screen feed.
func WithEventFeed(f *EventFeed) WorldOption {
	return func(w *World) { w.feed = f }
}

// WithTerrainGravity enables one settle pass per tick after all lemmings move.
func WithTerrainGravity(on bool) WorldOption {
	return func(w *World) { w.gravity = on }
}

// WithTickDuration sets the delta used by Step.
func WithTickDuration(d time.Duration) WorldOption {
	return func(w *World) { w.tickDuration = d }
}

// WithReporter collects a SimReport every n ticks.
func WithReporter(r *SimReporter, every int) WorldOption {
	return func(w *World) {
		w.reporter = r
		w.reportEvery = every
	}
}

// NewWorld creates a world over terrain, animated by anims.
func NewWorld(terrain *TerrainMap, anims *AnimationTable, opts ...WorldOption) *World {
	w := &World{
		terrain:      terrain,
		anims:        anims,
		tickDuration: time.Second / defaultTicksPerSecond,
		log:          NewSimLog(false),
	}
	for _, o := range opts {
		o(w)
	}
	if w.reporter != nil && w.reportEvery <= 0 {
		w.reportEvery = defaultTicksPerSecond
	}
	return w
}

// Spawn appends a lemming. Update order is spawn order.
func (w *World) Spawn(x, y uint32, dir Direction, actions ActionSet) *Lemming {
	l := NewLemming(w.nextID, x, y, dir, actions, w.anims)
	w.nextID++
	w.lemmings = append(w.lemmings, l)
	w.log.Add(w.tick, l.Label(), "world", "spawn",
		fmt.Sprintf("(%d,%d) %s %s", x, y, dir, actions), 0)
	return l
}

// Terrain exposes the live map. Renderers must treat it as read-only.
func (w *World) Terrain() *TerrainMap { return w.terrain }

// Animations returns the shared frame table.
func (w *World) Animations() *AnimationTable { return w.anims }

// Lemmings returns the lemmings in update order.
func (w *World) Lemmings() []*Lemming { return w.lemmings }

// Lemming looks up a lemming by id.
func (w *World) Lemming(id int) (*Lemming, bool) {
	for _, l := range w.lemmings {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// Tick returns the number of completed ticks.
func (w *World) Tick() int { return w.tick }

// TickDuration is the delta Step feeds to Advance.
func (w *World) TickDuration() time.Duration { return w.tickDuration }

// Log returns the event log.
func (w *World) Log() *SimLog { return w.log }

// Stats returns cumulative counters.
func (w *World) Stats() RunStats { return w.stats }

// Reporter returns the attached reporter, if any.
func (w *World) Reporter() *SimReporter { return w.reporter }

// SetActions replaces a lemming's skill set.
func (w *World) SetActions(id int, actions ActionSet) error {
	l, ok := w.Lemming(id)
	if !ok {
		return fmt.Errorf("set actions on %d: %w", id, ErrUnknownLemming)
	}
	if l.Actions == actions {
		return nil
	}
	w.log.Add(w.tick, l.Label(), "world", "skills", fmt.Sprintf("%s → %s", l.Actions, actions), 0)
	w.notify(l, fmt.Sprintf("skills %s", actions))
	l.Actions = actions
	return nil
}

// Step advances one tick of the configured duration.
func (w *World) Step() { w.Advance(w.tickDuration) }

// Advance runs one fixed tick with the given delta. Lemmings update one after
// another in spawn order, each seeing terrain edits made earlier this tick.
func (w *World) Advance(dt time.Duration) {
	w.tick++
	for _, l := range w.lemmings {
		r := l.Update(w.terrain, w.anims, dt)
		w.stats.Record(r)
		w.record(l, r)
	}
	if w.gravity {
		n := w.terrain.Settle()
		w.stats.Settled += n
		if n > 0 {
			w.log.AddVerbose(w.tick, "--", "terrain", "settle", fmt.Sprintf("%d cells", n), float64(n))
		}
	}
	w.stats.Ticks++
	if w.reporter != nil && w.tick%w.reportEvery == 0 {
		w.reporter.Collect(w)
	}
}

// RunTicks steps n times.
func (w *World) RunTicks(n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}

func (w *World) record(l *Lemming, r TickReport) {
	label := l.Label()
	if r.Climbed > 0 {
		w.log.Add(w.tick, label, "move", "climb", fmt.Sprintf("up %d to y=%d", r.Climbed, l.Y), float64(r.Climbed))
	}
	if r.Turned {
		w.log.Add(w.tick, label, "move", "turn", fmt.Sprintf("now facing %s at x=%d", l.Dir, r.StartX), 0)
		w.notify(l, "turned "+l.Dir.String())
	}
	if r.Landed {
		w.log.Add(w.tick, label, "move", "land", fmt.Sprintf("(%d,%d)", l.X, l.Y), float64(l.Y))
	}
	if r.Dug {
		w.log.Add(w.tick, label, "terrain", "dig", fmt.Sprintf("cleared %d", r.CellsDug), float64(r.CellsDug))
	}
	if r.Bridged {
		w.log.Add(w.tick, label, "terrain", "bridge", fmt.Sprintf("laid %d", r.CellsLaid), float64(r.CellsLaid))
	}
	if r.BridgeClimb {
		w.log.Add(w.tick, label, "move", "hop", fmt.Sprintf("(%d,%d)", l.X, l.Y), 0)
	}
	if r.LeftMap {
		w.log.Add(w.tick, label, "world", "left-map", fmt.Sprintf("(%d,%d)", l.X, l.Y), 0)
		w.notify(l, "left the map")
	}
	if r.Transitions > 0 {
		w.log.AddVerbose(w.tick, label, "anim", "frame", string(l.Clock.Current()), float64(r.Transitions))
	}
	if r.StartX != l.X || r.StartY != l.Y {
		w.log.AddVerbose(w.tick, label, "move", "position", fmt.Sprintf("(%d,%d)", l.X, l.Y), 0)
	}
}

func (w *World) notify(l *Lemming, msg string) {
	if w.feed == nil {
		return
	}
	w.feed.Add(w.tick, l.Label(), msg)
}
