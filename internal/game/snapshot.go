package game

// LemmingView is the render-facing state of one lemming.
type LemmingView struct {
	ID      int
	X, Y    uint32
	Dir     Direction
	Actions ActionSet
	Frame   FrameID
	Sprite  SpriteID
	OnMap   bool
}

// Label matches Lemming.Label for the same id.
func (lv LemmingView) Label() string { return lemmingLabel(lv.ID) }

// Snapshot is a detached copy of everything a renderer needs after a tick.
type Snapshot struct {
	Tick     int
	Width    uint32
	Height   uint32
	Pix      []uint8 // RGBA, row-major
	Lemmings []LemmingView
}

// Snapshot copies the current state. Mutating the result never affects the
// world.
func (w *World) Snapshot() Snapshot {
	pix := make([]uint8, len(w.terrain.Pix()))
	copy(pix, w.terrain.Pix())
	return Snapshot{
		Tick:     w.tick,
		Width:    w.terrain.Width(),
		Height:   w.terrain.Height(),
		Pix:      pix,
		Lemmings: w.LemmingViews(),
	}
}

// LemmingViews returns per-lemming render state without copying the terrain.
func (w *World) LemmingViews() []LemmingView {
	out := make([]LemmingView, len(w.lemmings))
	for i, l := range w.lemmings {
		frame := l.Clock.Current()
		out[i] = LemmingView{
			ID:      l.ID,
			X:       l.X,
			Y:       l.Y,
			Dir:     l.Dir,
			Actions: l.Actions,
			Frame:   frame,
			Sprite:  w.anims.SpriteFor(frame),
			OnMap:   l.OnMap(w.terrain),
		}
	}
	return out
}

// Solid reports whether snapshot pixel (x, y) is solid; out of range is not.
func (s *Snapshot) Solid(x, y uint32) bool {
	if x >= s.Width || y >= s.Height {
		return false
	}
	return s.Pix[(int(y)*int(s.Width)+int(x))*4] != 0
}

// Breakable reports whether snapshot pixel (x, y) is breakable.
func (s *Snapshot) Breakable(x, y uint32) bool {
	if x >= s.Width || y >= s.Height {
		return false
	}
	return s.Pix[(int(y)*int(s.Width)+int(x))*4+2] != 0
}
