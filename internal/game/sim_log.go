package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Lemming  string  // label e.g. "L0", or "--" for world events
	Category string  // move, terrain, anim, world
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] L0   terrain   dig             cleared 6
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-15s %s",
		e.Tick, e.Lemming, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. Unlike EventFeed (UI ring-buffer),
// SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick positions are also
// recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether per-tick entries are recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Add records a new entry.
func (sl *SimLog) Add(tick int, lemming, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Lemming:  lemming,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, lemming, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, lemming, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len returns the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterLemming returns entries for a specific lemming label.
func (sl *SimLog) FilterLemming(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Lemming == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the world state.
func (sl *SimLog) Summary(tick int, tm *TerrainMap, lemmings []*Lemming) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)

	onMap, grounded := 0, 0
	actionCount := map[ActionSet]int{}
	for _, l := range lemmings {
		if l.OnMap(tm) {
			onMap++
		}
		if l.OnGround(tm) {
			grounded++
		}
		actionCount[l.Actions]++
	}
	fmt.Fprintf(&sb, "Lemmings: total=%d  on-map=%d  grounded=%d\n", len(lemmings), onMap, grounded)

	sb.WriteString("Skills: ")
	for _, a := range []ActionSet{
		ActionWalk, ActionWalk | ActionDig, ActionWalk | ActionBridge, ActionDig,
		ActionBridge, ActionDig | ActionBridge, ActionWalk | ActionDig | ActionBridge, 0,
	} {
		if n := actionCount[a]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", a, n)
		}
	}
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "Events: dig=%d  bridge=%d  turn=%d  climb=%d  land=%d\n",
		sl.CountCategory("terrain", "dig"),
		sl.CountCategory("terrain", "bridge"),
		sl.CountCategory("move", "turn"),
		sl.CountCategory("move", "climb"),
		sl.CountCategory("move", "land"))
	fmt.Fprintf(&sb, "Solid cells: %d\n", tm.CountSolid())
	return sb.String()
}
