package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAnimations_Valid(t *testing.T) {
	at := DefaultAnimations()
	require.NoError(t, at.Validate())
	assert.Equal(t, FrameID("walk-0"), at.Start())
	assert.Equal(t, 2, at.Len())
	assert.True(t, at.IsLocomotion("walk-0"))
	assert.True(t, at.IsLocomotion("walk-1"))
	assert.False(t, at.IsLocomotion("nope"))
	assert.Equal(t, []SpriteID{"lemming-walk-0", "lemming-walk-1"}, at.Sprites())
}

func TestAnimationTable_ValidateErrors(t *testing.T) {
	missingNext := NewAnimationTable("a",
		Frame{ID: "a", Sprite: "s", Delay: time.Millisecond, Next: "b"})
	err := missingNext.Validate()
	assert.True(t, errors.Is(err, ErrUnknownFrame), "got %v", err)

	zeroDelay := NewAnimationTable("a",
		Frame{ID: "a", Sprite: "s", Delay: 0, Next: "a"})
	assert.ErrorIs(t, zeroDelay.Validate(), ErrBadDelay)

	noStart := NewAnimationTable("x",
		Frame{ID: "a", Sprite: "s", Delay: time.Millisecond, Next: "a"})
	assert.ErrorIs(t, noStart.Validate(), ErrUnknownFrame)

	badLoco := NewAnimationTable("a",
		Frame{ID: "a", Sprite: "s", Delay: time.Millisecond, Next: "a"})
	badLoco.MarkLocomotion("ghost")
	assert.ErrorIs(t, badLoco.Validate(), ErrUnknownFrame)
}

func TestAnimationClock_TransitionCadence(t *testing.T) {
	at := DefaultAnimations()
	clk := NewAnimationClock(at.Start())

	// 80 ms frames fed in 20 ms ticks: one transition every fourth tick.
	transitions := 0
	for i := 1; i <= 16; i++ {
		n := clk.Advance(20*time.Millisecond, at)
		transitions += n
		if i%4 == 0 {
			assert.Equal(t, 1, n, "tick %d", i)
			assert.True(t, clk.JustTransitioned(), "tick %d", i)
		} else {
			assert.Zero(t, n, "tick %d", i)
			assert.False(t, clk.JustTransitioned(), "tick %d", i)
		}
	}
	assert.Equal(t, 4, transitions)
	assert.Equal(t, FrameID("walk-0"), clk.Current(), "even number of transitions returns to start")
	assert.Zero(t, clk.Elapsed())
}

func TestAnimationClock_MultipleTransitionsInOneTick(t *testing.T) {
	at := NewAnimationTable("a",
		Frame{ID: "a", Sprite: "sa", Delay: 10 * time.Millisecond, Next: "b"},
		Frame{ID: "b", Sprite: "sb", Delay: 20 * time.Millisecond, Next: "a"},
	)
	clk := NewAnimationClock("a")

	n := clk.Advance(35*time.Millisecond, at)
	assert.Equal(t, 2, n)
	assert.Equal(t, FrameID("a"), clk.Current())
	assert.Equal(t, 5*time.Millisecond, clk.Elapsed())
	assert.True(t, clk.JustTransitioned())

	n = clk.Advance(time.Millisecond, at)
	assert.Zero(t, n)
	assert.False(t, clk.JustTransitioned())
	assert.Equal(t, 6*time.Millisecond, clk.Elapsed())
}

func TestAnimationClock_UnknownFrameIsInert(t *testing.T) {
	at := DefaultAnimations()
	clk := NewAnimationClock("missing")
	assert.Zero(t, clk.Advance(time.Second, at))
	assert.Equal(t, FrameID("missing"), clk.Current())
	assert.False(t, clk.JustTransitioned())
}
