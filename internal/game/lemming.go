package game

import (
	"fmt"
	"time"
)

const (
	maxStepUp    = 5 // highest ledge a walker climbs without turning
	digHalfWidth = 3 // dig window starts this many cells behind x
	digWidth     = 6
	bridgeLength = 6 // cells laid ahead, offsets 1..bridgeLength
	bridgeReach  = 2 // horizontal distance of a bridge climb
)

// Lemming is one autonomous walker on the terrain.
type Lemming struct {
	ID      int
	X, Y    uint32
	Dir     Direction
	Actions ActionSet
	Clock   AnimationClock
}

// TickReport records what a lemming did during one Update. It is only
// consumed by logging and statistics.
type TickReport struct {
	Walked      bool
	Turned      bool
	Climbed     uint32 // rows gained by a walking step-up
	Fell        bool
	Landed      bool // was falling at tick start, grounded at tick end
	Dug         bool
	CellsDug    int
	Bridged     bool
	CellsLaid   int
	BridgeClimb bool
	Transitions int
	LeftMap     bool // was on the map at tick start, off it at tick end
	WasOnGround bool
	NowOnGround bool
	StartX      uint32
	StartY      uint32
}

// NewLemming creates a lemming with its clock on the table's start frame.
func NewLemming(id int, x, y uint32, dir Direction, actions ActionSet, at *AnimationTable) *Lemming {
	return &Lemming{
		ID:      id,
		X:       x,
		Y:       y,
		Dir:     dir,
		Actions: actions,
		Clock:   NewAnimationClock(at.Start()),
	}
}

// Label is the short name used in logs, e.g. "L3".
func (l *Lemming) Label() string { return lemmingLabel(l.ID) }

func lemmingLabel(id int) string { return fmt.Sprintf("L%d", id) }

// OnMap reports whether the lemming's position is inside the terrain.
func (l *Lemming) OnMap(tm *TerrainMap) bool {
	return l.X < tm.Width() && l.Y < tm.Height()
}

// OnGround reports whether the cell directly below is solid. Off the map a
// lemming is never grounded.
func (l *Lemming) OnGround(tm *TerrainMap) bool {
	if !l.OnMap(tm) {
		return false
	}
	return tm.Sample(l.X, l.Y+1).IsSolid()
}

// Update runs one tick: walk, fall, dig, bridge, then the animation clock.
// The order is fixed and each step sees the previous step's effects.
func (l *Lemming) Update(tm *TerrainMap, at *AnimationTable, dt time.Duration) TickReport {
	r := TickReport{
		StartX:      l.X,
		StartY:      l.Y,
		WasOnGround: l.OnGround(tm),
	}
	wasOnMap := l.OnMap(tm)

	if l.Actions.Has(ActionWalk) {
		l.walk(tm, at, &r)
	}
	l.fall(tm, &r)
	if l.Actions.Has(ActionDig) {
		l.dig(tm, &r)
	}
	if l.Actions.Has(ActionBridge) {
		l.bridge(tm, &r)
	}
	r.Transitions = l.Clock.Advance(dt, at)

	r.NowOnGround = l.OnGround(tm)
	r.Landed = !r.WasOnGround && r.Fell && r.NowOnGround
	r.LeftMap = wasOnMap && !l.OnMap(tm)
	return r
}

// walk fires once per entry into a locomotion frame, so stride cadence follows
// the animation rather than the tick rate.
func (l *Lemming) walk(tm *TerrainMap, at *AnimationTable, r *TickReport) {
	if !l.Clock.JustTransitioned() || !at.IsLocomotion(l.Clock.Current()) {
		return
	}
	if !l.OnMap(tm) || !l.OnGround(tm) {
		return
	}
	ahead := offset(l.X, l.Dir.Step())
	if tm.Sample(ahead, l.Y).IsSolid() {
		// Step up onto the first clear row within reach. Rows above the top
		// edge are not considered.
		for dy := uint32(1); dy <= maxStepUp && dy <= l.Y; dy++ {
			if !tm.Sample(ahead, l.Y-dy).IsSolid() {
				l.Y -= dy
				r.Climbed = dy
				break
			}
		}
	}
	if tm.Sample(ahead, l.Y).IsSolid() {
		l.Dir = l.Dir.Reverse()
		r.Turned = true
	}
	// The stride is taken on the same tick as a turn, in the new facing, so a
	// walker never pauses at a wall.
	l.X = offset(l.X, l.Dir.Step())
	r.Walked = true
}

func (l *Lemming) fall(tm *TerrainMap, r *TickReport) {
	if l.OnGround(tm) {
		return
	}
	l.Y++
	r.Fell = true
}

// dig clears the breakable cells of a six-wide window under the lemming and
// sinks it one row. Cells left of x=0 wrap out of range and are skipped.
func (l *Lemming) dig(tm *TerrainMap, r *TickReport) {
	if !l.OnMap(tm) || !l.OnGround(tm) {
		return
	}
	left := offset(l.X, -digHalfWidth)
	for i := uint32(0); i < digWidth; i++ {
		c := tm.QueryMut(left+i, l.Y+1)
		if c == nil || !c.IsBreakable() {
			continue
		}
		*c = Empty
		r.CellsDug++
	}
	l.Y++
	r.Dug = true
}

// bridge lays SolidBreakable over empty cells ahead on the lemming's own row,
// then tries to hop up onto it. Only the landing cell and the cell above it
// are probed; cells in between are not.
func (l *Lemming) bridge(tm *TerrainMap, r *TickReport) {
	if !l.OnMap(tm) || !l.OnGround(tm) {
		return
	}
	step := l.Dir.Step()
	for i := int32(1); i <= bridgeLength; i++ {
		c := tm.QueryMut(offset(l.X, step*i), l.Y)
		if c == nil || !c.IsEmpty() {
			continue
		}
		*c = SolidBreakable
		r.CellsLaid++
	}
	r.Bridged = true

	tx := offset(l.X, step*bridgeReach)
	landing, ok := tm.Query(tx, l.Y)
	if !ok || !landing.IsSolid() {
		return
	}
	head, ok := tm.Query(tx, l.Y-1)
	if !ok || head.IsSolid() {
		return
	}
	l.X = tx
	l.Y--
	r.BridgeClimb = true
}
