package game

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// FrameID names an animation frame.
type FrameID string

// SpriteID names the image a renderer draws for a frame.
type SpriteID string

var (
	ErrUnknownFrame = errors.New("unknown animation frame")
	ErrBadDelay     = errors.New("animation delay must be positive")
)

// Frame is one node of the animation graph. Next links by id only, so
// cycles are fine.
type Frame struct {
	ID     FrameID
	Sprite SpriteID
	Delay  time.Duration
	Next   FrameID
}

// AnimationTable is the id-keyed frame arena shared read-only by all clocks.
type AnimationTable struct {
	frames     map[FrameID]Frame
	locomotion mapset.Set[FrameID]
	start      FrameID
}

// NewAnimationTable builds a table whose clocks begin at start.
func NewAnimationTable(start FrameID, frames ...Frame) *AnimationTable {
	at := &AnimationTable{
		frames:     make(map[FrameID]Frame, len(frames)),
		locomotion: mapset.New[FrameID](),
		start:      start,
	}
	for _, f := range frames {
		at.frames[f.ID] = f
	}
	return at
}

// DefaultAnimations is the two-frame walk cycle: 80 ms per frame, both frames
// gating locomotion.
func DefaultAnimations() *AnimationTable {
	at := NewAnimationTable("walk-0",
		Frame{ID: "walk-0", Sprite: "lemming-walk-0", Delay: 80 * time.Millisecond, Next: "walk-1"},
		Frame{ID: "walk-1", Sprite: "lemming-walk-1", Delay: 80 * time.Millisecond, Next: "walk-0"},
	)
	at.MarkLocomotion("walk-0", "walk-1")
	return at
}

// MarkLocomotion designates frames whose entry lets Walk fire.
func (at *AnimationTable) MarkLocomotion(ids ...FrameID) {
	for _, id := range ids {
		at.locomotion.Put(id)
	}
}

// IsLocomotion reports whether id gates Walk.
func (at *AnimationTable) IsLocomotion(id FrameID) bool {
	return at.locomotion.Has(id)
}

// Frame looks up a frame by id.
func (at *AnimationTable) Frame(id FrameID) (Frame, bool) {
	f, ok := at.frames[id]
	return f, ok
}

// Start returns the frame new clocks begin on.
func (at *AnimationTable) Start() FrameID { return at.start }

// Len returns the number of frames.
func (at *AnimationTable) Len() int { return len(at.frames) }

// SpriteFor resolves the sprite drawn for a frame; unknown frames yield "".
func (at *AnimationTable) SpriteFor(id FrameID) SpriteID {
	return at.frames[id].Sprite
}

// Sprites returns every distinct sprite id in sorted order.
func (at *AnimationTable) Sprites() []SpriteID {
	seen := mapset.New[SpriteID]()
	var out []SpriteID
	for _, f := range at.frames {
		if f.Sprite == "" || seen.Has(f.Sprite) {
			continue
		}
		seen.Put(f.Sprite)
		out = append(out, f.Sprite)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate checks the graph is closed and every delay is positive.
// Frames are checked in id order so the reported error is stable.
func (at *AnimationTable) Validate() error {
	if _, ok := at.frames[at.start]; !ok {
		return fmt.Errorf("start frame %q: %w", at.start, ErrUnknownFrame)
	}
	ids := make([]FrameID, 0, len(at.frames))
	for id := range at.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		f := at.frames[id]
		if f.Delay <= 0 {
			return fmt.Errorf("frame %q delay %v: %w", id, f.Delay, ErrBadDelay)
		}
		if _, ok := at.frames[f.Next]; !ok {
			return fmt.Errorf("frame %q next %q: %w", id, f.Next, ErrUnknownFrame)
		}
	}
	var bad error
	at.locomotion.Each(func(id FrameID) {
		if _, ok := at.frames[id]; !ok && bad == nil {
			bad = fmt.Errorf("locomotion frame %q: %w", id, ErrUnknownFrame)
		}
	})
	return bad
}

// AnimationClock tracks one lemming's position in the frame graph.
type AnimationClock struct {
	current      FrameID
	elapsed      time.Duration
	transitioned bool
}

// NewAnimationClock starts a clock on the given frame.
func NewAnimationClock(start FrameID) AnimationClock {
	return AnimationClock{current: start}
}

// Current returns the frame being shown.
func (ac *AnimationClock) Current() FrameID { return ac.current }

// Elapsed returns time accumulated since entering the current frame.
func (ac *AnimationClock) Elapsed() time.Duration { return ac.elapsed }

// JustTransitioned reports whether the last Advance entered a new frame.
func (ac *AnimationClock) JustTransitioned() bool { return ac.transitioned }

// Advance accumulates dt and follows Next links while the elapsed time covers
// the current frame's delay. It returns the number of transitions taken.
func (ac *AnimationClock) Advance(dt time.Duration, at *AnimationTable) int {
	ac.elapsed += dt
	ac.transitioned = false
	n := 0
	for {
		f, ok := at.Frame(ac.current)
		if !ok || f.Delay <= 0 || ac.elapsed < f.Delay {
			return n
		}
		ac.elapsed -= f.Delay
		ac.current = f.Next
		ac.transitioned = true
		n++
	}
}
