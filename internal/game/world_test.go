package game

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A bridger at (50,20) and a bystander hovering at (55,19). Whoever updates
// first decides whether the bystander finds the new bridge under its feet.
func TestWorld_UpdateOrderIsSpawnOrder(t *testing.T) {
	t.Run("bridger first", func(t *testing.T) {
		ts := NewTestSim(
			WithFill(0, 21, 52, 120, SolidBreakable),
			WithLemming(50, 20, DirRight, ActionBridge),
			WithLemming(55, 19, DirRight, 0),
		)
		ts.RunTicks(1)
		assert.Equal(t, uint32(19), ts.Lemming(1).Y)
		assert.True(t, ts.Lemming(1).OnGround(ts.Terrain()))
	})
	t.Run("bystander first", func(t *testing.T) {
		ts := NewTestSim(
			WithFill(0, 21, 52, 120, SolidBreakable),
			WithLemming(55, 19, DirRight, 0),
			WithLemming(50, 20, DirRight, ActionBridge),
		)
		ts.RunTicks(1)
		assert.Equal(t, uint32(20), ts.Lemming(0).Y)
		// The bridge is laid under the bystander's new position regardless.
		assert.Equal(t, SolidBreakable, ts.Terrain().Sample(55, 20))
	})
}

func TestWorld_SpawnAssignsSequentialIDs(t *testing.T) {
	w := NewWorld(NewTerrainMap(10, 10), DefaultAnimations())
	a := w.Spawn(1, 1, DirRight, ActionWalk)
	b := w.Spawn(2, 2, DirLeft, 0)
	assert.Equal(t, 0, a.ID)
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, "L1", b.Label())
	got, ok := w.Lemming(1)
	require.True(t, ok)
	assert.Same(t, b, got)
	_, ok = w.Lemming(7)
	assert.False(t, ok)
	assert.Equal(t, 2, w.Log().CountCategory("world", "spawn"))
	assert.Equal(t, 50*time.Millisecond, w.TickDuration())
}

func TestWorld_SetActions(t *testing.T) {
	feed := NewEventFeed()
	w := NewWorld(NewTerrainMap(10, 10), DefaultAnimations(), WithEventFeed(feed))
	l := w.Spawn(1, 1, DirRight, ActionWalk)

	require.NoError(t, w.SetActions(l.ID, ActionWalk|ActionDig))
	assert.True(t, l.Actions.Has(ActionDig))
	assert.True(t, w.Log().HasEntry("world", "skills", "walk|dig"))
	assert.Equal(t, 1, feed.Len())

	// Unchanged set is a no-op.
	require.NoError(t, w.SetActions(l.ID, ActionWalk|ActionDig))
	assert.Equal(t, 1, w.Log().CountCategory("world", "skills"))

	err := w.SetActions(42, ActionBridge)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLemming))
}

func TestWorld_SnapshotIsDetached(t *testing.T) {
	ts := NewTestSim(
		WithGround(21),
		WithLemming(50, 20, DirRight, ActionWalk),
	)
	ts.RunTicks(2)
	snap := ts.World.Snapshot()
	require.Equal(t, 2, snap.Tick)
	require.Len(t, snap.Lemmings, 1)
	assert.Equal(t, uint32(51), snap.Lemmings[0].X)
	assert.Equal(t, SpriteID("lemming-walk-0"), snap.Lemmings[0].Sprite)
	assert.Equal(t, ts.Lemming(0).Label(), snap.Lemmings[0].Label())
	assert.True(t, snap.Solid(0, 21))
	assert.True(t, snap.Breakable(0, 21))
	assert.False(t, snap.Solid(0, 20))
	assert.False(t, snap.Solid(1000, 21))

	for i := range snap.Pix {
		snap.Pix[i] = 0
	}
	snap.Lemmings[0].X = 0
	assert.True(t, ts.Terrain().Sample(0, 21).IsSolid())
	assert.Equal(t, uint32(51), ts.Lemming(0).X)

	// A later tick does not reach back into an old snapshot.
	before := ts.World.Snapshot()
	ts.RunTicks(2)
	assert.Equal(t, uint32(51), before.Lemmings[0].X)
	assert.Equal(t, uint32(53), ts.Lemming(0).X)
}

func TestWorld_AdvanceUsesGivenDelta(t *testing.T) {
	ts := NewTestSim(
		WithGround(21),
		WithLemming(50, 20, DirRight, 0),
	)
	ts.World.Advance(160 * time.Millisecond)
	l := ts.Lemming(0)
	assert.Equal(t, FrameID("walk-0"), l.Clock.Current())
	assert.True(t, l.Clock.JustTransitioned())
	assert.Equal(t, 2, ts.World.Stats().Transitions)
	assert.Equal(t, 1, ts.CurrentTick())
}

func TestWorld_TerrainGravity(t *testing.T) {
	ts := NewTestSim(
		WithGravity(true),
		WithFill(10, 10, 11, 11, SolidBreakable),
	)
	ts.RunTicks(1)
	tm := ts.Terrain()
	assert.True(t, tm.Sample(10, 11).IsSolid())
	assert.False(t, tm.Sample(10, 10).IsSolid())
	assert.Equal(t, 1, ts.World.Stats().Settled)

	tick := ts.RunUntil(func(ts *TestSim) bool {
		return ts.Terrain().Sample(10, ts.Height-1).IsSolid()
	}, 500)
	assert.Equal(t, int(ts.Height)-11, tick)
	settled := ts.World.Stats().Settled
	ts.RunTicks(5)
	assert.Equal(t, settled, ts.World.Stats().Settled, "block at the bottom stays put")
}

func TestWorld_GravityOffByDefault(t *testing.T) {
	ts := NewTestSim(WithFill(10, 10, 11, 11, SolidBreakable))
	ts.RunTicks(3)
	assert.True(t, ts.Terrain().Sample(10, 10).IsSolid())
	assert.Zero(t, ts.World.Stats().Settled)
}

func TestWorld_VerboseLogging(t *testing.T) {
	quiet := NewTestSim(WithLemming(5, 5, DirRight, 0))
	quiet.RunTicks(3)
	assert.Zero(t, quiet.SimLog.CountCategory("anim", "frame"))
	assert.Zero(t, quiet.SimLog.CountCategory("move", "position"))

	loud := NewTestSim(WithVerbose(true), WithLemming(5, 5, DirRight, 0))
	loud.RunTicks(3)
	assert.Equal(t, 3, loud.SimLog.CountCategory("anim", "frame"))
	assert.Equal(t, 3, loud.SimLog.CountCategory("move", "position"))
	if t.Failed() {
		t.Log(loud.SimLog.Format())
	}
}

func TestWorld_EventFeedReceivesTurns(t *testing.T) {
	feed := NewEventFeed()
	tm := NewTerrainMap(40, 20)
	tm.Fill(image.Rect(0, 11, 40, 20), SolidBreakable)
	tm.Fill(image.Rect(12, 0, 14, 11), SolidSteel)
	w := NewWorld(tm, DefaultAnimations(), WithEventFeed(feed), WithTickDuration(80*time.Millisecond))
	w.Spawn(10, 10, DirRight, ActionWalk)
	w.RunTicks(4)

	var msgs []string
	for _, e := range feed.Recent() {
		msgs = append(msgs, e.Label+": "+e.Message)
	}
	assert.Contains(t, msgs, "L0: turned left")
}

func TestWorld_ReporterCollectsPeriodically(t *testing.T) {
	rep := NewSimReporter(10)
	tm := NewTerrainMap(50, 50)
	tm.Fill(image.Rect(0, 40, 50, 50), SolidBreakable)
	w := NewWorld(tm, DefaultAnimations(), WithReporter(rep, 5))
	w.Spawn(10, 0, DirRight, ActionDig)
	w.Spawn(20, 39, DirRight, ActionBridge)
	w.RunTicks(20)

	hist := rep.History()
	require.Len(t, hist, 4)
	assert.Equal(t, []int{5, 10, 15, 20}, []int{hist[0].Tick, hist[1].Tick, hist[2].Tick, hist[3].Tick})
	assert.Equal(t, 2, hist[0].Total)
	assert.Equal(t, 1, hist[0].Falling)
	assert.Equal(t, 1, hist[0].Bridging)

	ws := rep.WindowSummary()
	require.NotNil(t, ws)
	assert.Equal(t, 10, ws.FromTick)
	assert.Equal(t, 20, ws.ToTick)
	assert.Equal(t, 3, ws.Samples)
	assert.Contains(t, ws.Format(), "samples=3")
	assert.Contains(t, rep.FormatLatest(), "T=20")
}
