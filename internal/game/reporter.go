package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour
// reports (~10s at 20TPS).
const reportWindowTicks = 200

// RunStats are cumulative counters over a whole run.
type RunStats struct {
	Ticks        int
	Steps        int // walk strides taken
	Turns        int
	Climbs       int
	ClimbRows    int
	FallTicks    int
	Landings     int
	DigTicks     int
	CellsDug     int
	BridgeTicks  int
	CellsLaid    int
	BridgeClimbs int
	LeftMap      int
	Transitions  int
	Settled      int // cells moved by terrain gravity
}

// Record folds one lemming's tick report into the totals.
func (rs *RunStats) Record(r TickReport) {
	if r.Walked {
		rs.Steps++
	}
	if r.Turned {
		rs.Turns++
	}
	if r.Climbed > 0 {
		rs.Climbs++
		rs.ClimbRows += int(r.Climbed)
	}
	if r.Fell {
		rs.FallTicks++
	}
	if r.Landed {
		rs.Landings++
	}
	if r.Dug {
		rs.DigTicks++
		rs.CellsDug += r.CellsDug
	}
	if r.Bridged {
		rs.BridgeTicks++
		rs.CellsLaid += r.CellsLaid
	}
	if r.BridgeClimb {
		rs.BridgeClimbs++
	}
	if r.LeftMap {
		rs.LeftMap++
	}
	rs.Transitions += r.Transitions
}

// Merge adds other's counters into rs.
func (rs *RunStats) Merge(other RunStats) {
	rs.Ticks += other.Ticks
	rs.Steps += other.Steps
	rs.Turns += other.Turns
	rs.Climbs += other.Climbs
	rs.ClimbRows += other.ClimbRows
	rs.FallTicks += other.FallTicks
	rs.Landings += other.Landings
	rs.DigTicks += other.DigTicks
	rs.CellsDug += other.CellsDug
	rs.BridgeTicks += other.BridgeTicks
	rs.CellsLaid += other.CellsLaid
	rs.BridgeClimbs += other.BridgeClimbs
	rs.LeftMap += other.LeftMap
	rs.Transitions += other.Transitions
	rs.Settled += other.Settled
}

// Format renders the counters as an aligned block.
func (rs RunStats) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  ticks           %d\n", rs.Ticks)
	fmt.Fprintf(&sb, "  strides         %d  (turns %d, step-ups %d / %d rows)\n", rs.Steps, rs.Turns, rs.Climbs, rs.ClimbRows)
	fmt.Fprintf(&sb, "  falling ticks   %d  (landings %d)\n", rs.FallTicks, rs.Landings)
	fmt.Fprintf(&sb, "  dig ticks       %d  (cells cleared %d)\n", rs.DigTicks, rs.CellsDug)
	fmt.Fprintf(&sb, "  bridge ticks    %d  (cells laid %d, hops %d)\n", rs.BridgeTicks, rs.CellsLaid, rs.BridgeClimbs)
	fmt.Fprintf(&sb, "  left map        %d\n", rs.LeftMap)
	fmt.Fprintf(&sb, "  frame changes   %d\n", rs.Transitions)
	if rs.Settled > 0 {
		fmt.Fprintf(&sb, "  settled cells   %d\n", rs.Settled)
	}
	return sb.String()
}

// SimReport is a snapshot of the world at one tick.
type SimReport struct {
	Tick       int
	Total      int
	OnMap      int
	Grounded   int
	Falling    int
	Digging    int
	Bridging   int
	SolidCells int
}

// SimReporter collects periodic reports and summarises sliding windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect gathers a snapshot from the current world state.
func (r *SimReporter) Collect(w *World) SimReport {
	rep := SimReport{
		Tick:       w.Tick(),
		Total:      len(w.lemmings),
		SolidCells: w.terrain.CountSolid(),
	}
	for _, l := range w.lemmings {
		if !l.OnMap(w.terrain) {
			continue
		}
		rep.OnMap++
		if l.OnGround(w.terrain) {
			rep.Grounded++
			if l.Actions.Has(ActionDig) {
				rep.Digging++
			}
			if l.Actions.Has(ActionBridge) {
				rep.Bridging++
			}
		} else {
			rep.Falling++
		}
	}
	r.history = append(r.history, rep)
	return rep
}

// Latest returns the most recent report, or nil.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns every collected report.
func (r *SimReporter) History() []SimReport { return r.history }

// WindowReport summarises the reports inside the trailing window.
type WindowReport struct {
	FromTick, ToTick int
	Samples          int
	AvgFalling       float64
	AvgGrounded      float64
	SolidDelta       int // change in solid cell count across the window
}

// WindowSummary aggregates reports from the last windowTicks ticks.
func (r *SimReporter) WindowSummary() *WindowReport {
	latest := r.Latest()
	if latest == nil {
		return nil
	}
	from := latest.Tick - r.windowTicks
	wr := &WindowReport{FromTick: latest.Tick, ToTick: latest.Tick}
	var first *SimReport
	for i := range r.history {
		rep := &r.history[i]
		if rep.Tick < from {
			continue
		}
		if first == nil {
			first = rep
			wr.FromTick = rep.Tick
		}
		wr.Samples++
		wr.AvgFalling += float64(rep.Falling)
		wr.AvgGrounded += float64(rep.Grounded)
	}
	if wr.Samples > 0 {
		wr.AvgFalling /= float64(wr.Samples)
		wr.AvgGrounded /= float64(wr.Samples)
	}
	wr.SolidDelta = latest.SolidCells - first.SolidCells
	return wr
}

// Format renders the window as a single line.
func (wr *WindowReport) Format() string {
	return fmt.Sprintf("T=%d..%d  samples=%d  falling=%.1f  grounded=%.1f  solid Δ=%+d",
		wr.FromTick, wr.ToTick, wr.Samples, wr.AvgFalling, wr.AvgGrounded, wr.SolidDelta)
}

// FormatLatest renders the most recent report.
func (r *SimReporter) FormatLatest() string {
	rep := r.Latest()
	if rep == nil {
		return "(no reports)"
	}
	return fmt.Sprintf("T=%d  lemmings=%d  on-map=%d  grounded=%d  falling=%d  digging=%d  bridging=%d  solid=%d",
		rep.Tick, rep.Total, rep.OnMap, rep.Grounded, rep.Falling, rep.Digging, rep.Bridging, rep.SolidCells)
}
