// Package termview draws world snapshots on a character terminal. Each
// terminal cell summarises a block of terrain pixels.
package termview

import (
	"fmt"

	"github.com/Garsondee/Lemrus/internal/game"
	"github.com/gdamore/tcell/v2"
)

// Kind classifies one terminal cell.
type Kind uint8

const (
	KindAir Kind = iota
	KindGround
	KindSteel
	KindLemming
)

// Grid is a rasterised snapshot, indexed [row][col].
type Grid struct {
	Cols, Rows int
	Cells      [][]Kind
	// Pixels covered by one cell.
	ScaleX, ScaleY uint32
}

// Rasterize fits the snapshot into cols x rows cells. A cell is steel if any
// covered pixel is unbreakable solid, ground if any is solid, otherwise air.
// Lemmings on the map are drawn over terrain.
func Rasterize(s *game.Snapshot, cols, rows int) Grid {
	g := Grid{Cols: cols, Rows: rows}
	if cols <= 0 || rows <= 0 || s.Width == 0 || s.Height == 0 {
		return g
	}
	g.ScaleX = ceilDiv(s.Width, uint32(cols))  // #nosec G115 -- cols > 0
	g.ScaleY = ceilDiv(s.Height, uint32(rows)) // #nosec G115 -- rows > 0
	g.Cells = make([][]Kind, rows)
	for r := 0; r < rows; r++ {
		g.Cells[r] = make([]Kind, cols)
		for c := 0; c < cols; c++ {
			g.Cells[r][c] = classify(s, uint32(c)*g.ScaleX, uint32(r)*g.ScaleY, g.ScaleX, g.ScaleY) // #nosec G115
		}
	}
	for _, lv := range s.Lemmings {
		if !lv.OnMap {
			continue
		}
		c := int(lv.X / g.ScaleX)
		r := int(lv.Y / g.ScaleY)
		if r < rows && c < cols {
			g.Cells[r][c] = KindLemming
		}
	}
	return g
}

func classify(s *game.Snapshot, x0, y0, w, h uint32) Kind {
	k := KindAir
	for y := y0; y < y0+h && y < s.Height; y++ {
		for x := x0; x < x0+w && x < s.Width; x++ {
			if !s.Solid(x, y) {
				continue
			}
			if !s.Breakable(x, y) {
				return KindSteel
			}
			k = KindGround
		}
	}
	return k
}

func ceilDiv(a, b uint32) uint32 {
	return (a + b - 1) / b
}

var (
	styleAir     = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleGround  = tcell.StyleDefault.Foreground(tcell.ColorSandyBrown).Background(tcell.ColorBlack)
	styleSteel   = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	styleLemming = tcell.StyleDefault.Foreground(tcell.ColorLime).Background(tcell.ColorBlack).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
)

// Glyph returns the rune and style for a kind.
func Glyph(k Kind) (rune, tcell.Style) {
	switch k {
	case KindGround:
		return '█', styleGround
	case KindSteel:
		return '▓', styleSteel
	case KindLemming:
		return '@', styleLemming
	default:
		return ' ', styleAir
	}
}

// Draw paints the grid at the top-left of screen and a status line below it.
func Draw(screen tcell.Screen, g Grid, status string) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			ch, st := Glyph(g.Cells[r][c])
			screen.SetContent(c, r, ch, nil, st)
		}
	}
	w, _ := screen.Size()
	line := []rune(status)
	for c := 0; c < w; c++ {
		ch := ' '
		if c < len(line) {
			ch = line[c]
		}
		screen.SetContent(c, g.Rows, ch, nil, styleStatus)
	}
}

// Status formats the one-line summary shown under the map. msg, when set,
// replaces the key help.
func Status(s *game.Snapshot, paused bool, selected int, msg string) string {
	state := "running"
	if paused {
		state = "paused"
	}
	sel := "-"
	for _, lv := range s.Lemmings {
		if lv.ID == selected {
			sel = fmt.Sprintf("%s (%d,%d) %s %s", lv.Label(), lv.X, lv.Y, lv.Dir, lv.Actions)
		}
	}
	if msg == "" {
		msg = "tab select  w/d/b skills  space pause  q quit"
	}
	return fmt.Sprintf(" T=%d %s | %s | %s", s.Tick, state, sel, msg)
}
