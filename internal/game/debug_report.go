package game

import (
	"fmt"
	"strings"
)

// LemmingDebugReport describes one lemming, its surroundings and its recent
// log entries. lastTicks bounds the log excerpt.
func LemmingDebugReport(w *World, id int, lastTicks int) string {
	l, ok := w.Lemming(id)
	if !ok {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = 100
	}
	toTick := w.Tick()
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}
	tm := w.Terrain()

	var b strings.Builder
	fmt.Fprintf(&b, "--- Lemrus debug report ---\n")
	fmt.Fprintf(&b, "tick=%d lemming=%s tick_range=[%d..%d]\n", toTick, l.Label(), fromTick, toTick)
	fmt.Fprintf(&b, "pos=(%d,%d) facing=%s skills=%s\n", l.X, l.Y, l.Dir, l.Actions)
	fmt.Fprintf(&b, "frame=%s sprite=%s elapsed=%v just_transitioned=%v\n",
		l.Clock.Current(), w.Animations().SpriteFor(l.Clock.Current()), l.Clock.Elapsed(), l.Clock.JustTransitioned())
	fmt.Fprintf(&b, "on_map=%v on_ground=%v\n\n", l.OnMap(tm), l.OnGround(tm))

	b.WriteString("surroundings (facing right; @ lemming, # solid, % steel, . air, ~ off-map):\n")
	b.WriteString(neighbourhood(tm, l, 7, 4))
	b.WriteByte('\n')

	entries := w.Log().FilterLemming(l.Label())
	b.WriteString("events:\n")
	n := 0
	for _, e := range entries {
		if e.Tick < fromTick || e.Tick > toTick {
			continue
		}
		b.WriteString("  ")
		b.WriteString(e.String())
		b.WriteByte('\n')
		n++
	}
	if n == 0 {
		b.WriteString("  (none)\n")
	}
	return b.String()
}

// neighbourhood renders the cells within rx columns and ry rows of l, always
// oriented so the lemming faces right.
func neighbourhood(tm *TerrainMap, l *Lemming, rx, ry int32) string {
	var b strings.Builder
	step := l.Dir.Step()
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			if dx == 0 && dy == 0 {
				b.WriteByte('@')
				continue
			}
			c, ok := tm.Query(offset(l.X, dx*step), offset(l.Y, dy))
			switch {
			case !ok:
				b.WriteByte('~')
			case c.IsSolid() && !c.IsBreakable():
				b.WriteByte('%')
			case c.IsSolid():
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
