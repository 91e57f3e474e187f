package game

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_Predicates(t *testing.T) {
	assert.False(t, Empty.IsSolid())
	assert.False(t, Empty.IsBreakable())
	assert.True(t, Empty.IsEmpty())

	assert.True(t, SolidBreakable.IsSolid())
	assert.True(t, SolidBreakable.IsBreakable())
	assert.False(t, SolidBreakable.IsEmpty())

	assert.True(t, SolidSteel.IsSolid())
	assert.False(t, SolidSteel.IsBreakable())

	// Non-solid but not the canonical empty value.
	haze := Cell{0, 40, 0, 255}
	assert.False(t, haze.IsSolid())
	assert.False(t, haze.IsEmpty())
}

func TestNewTerrainMap_DefaultEmpty(t *testing.T) {
	tm := NewTerrainMap(10, 8)
	require.Equal(t, uint32(10), tm.Width())
	require.Equal(t, uint32(8), tm.Height())
	for y := uint32(0); y < tm.Height(); y++ {
		for x := uint32(0); x < tm.Width(); x++ {
			c, ok := tm.Query(x, y)
			require.True(t, ok)
			require.Equal(t, Empty, c, "cell (%d,%d)", x, y)
		}
	}
	assert.Zero(t, tm.CountSolid())
}

func TestTerrainMap_OutOfRange(t *testing.T) {
	tm := NewTerrainMap(3, 3)
	coords := [][2]uint32{
		{3, 0}, {0, 3}, {3, 3}, {100, 1},
		{math.MaxUint32, 0}, {0, math.MaxUint32}, {math.MaxUint32, math.MaxUint32},
	}
	for _, c := range coords {
		_, ok := tm.Query(c[0], c[1])
		assert.False(t, ok, "Query(%d,%d)", c[0], c[1])
		assert.Nil(t, tm.QueryMut(c[0], c[1]), "QueryMut(%d,%d)", c[0], c[1])
		assert.Equal(t, Empty, tm.Sample(c[0], c[1]))
		assert.False(t, tm.Set(c[0], c[1], SolidSteel))
	}
	assert.Zero(t, tm.CountSolid(), "out-of-range writes must not land anywhere")
}

func TestTerrainMap_QueryMutWritesThrough(t *testing.T) {
	tm := NewTerrainMap(4, 4)
	p := tm.QueryMut(2, 1)
	require.NotNil(t, p)
	*p = SolidBreakable

	c, ok := tm.Query(2, 1)
	require.True(t, ok)
	assert.Equal(t, SolidBreakable, c)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, tm.ColorAt(2, 1))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, tm.Image().NRGBAAt(2, 1))
	assert.Equal(t, 1, tm.CountSolid())
}

func TestTerrainMap_FillClips(t *testing.T) {
	tm := NewTerrainMap(5, 5)
	tm.Fill(image.Rect(-3, 3, 100, 100), SolidSteel)
	assert.Equal(t, 10, tm.CountSolid())
	assert.Equal(t, Empty, tm.Sample(0, 2))
	assert.Equal(t, SolidSteel, tm.Sample(4, 4))
}

func TestTerrainMap_FromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 13, 12))
	img.Set(11, 11, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	tm := NewTerrainMapFromImage(img)
	require.Equal(t, uint32(3), tm.Width())
	require.Equal(t, uint32(2), tm.Height())
	c := tm.Sample(1, 1)
	assert.True(t, c.IsSolid())
	assert.False(t, c.IsBreakable())
	assert.False(t, tm.Sample(0, 0).IsSolid())
}

func TestTerrainMap_FromImageKeepsTranslucentChannels(t *testing.T) {
	faint := color.NRGBA{R: 1, G: 0, B: 1, A: 100}

	nrgba := image.NewNRGBA(image.Rect(5, 5, 7, 7))
	nrgba.SetNRGBA(6, 5, faint)
	tm := NewTerrainMapFromImage(nrgba)
	assert.Equal(t, Cell{1, 0, 1, 100}, tm.Sample(1, 0))
	assert.True(t, tm.Sample(1, 0).IsSolid())
	assert.True(t, tm.Sample(1, 0).IsBreakable())

	// Non-NRGBA sources go through the colour model and keep the flags too.
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.NRGBA{R: 255, G: 0, B: 255, A: 128})
	c := NewTerrainMapFromImage(rgba).Sample(0, 0)
	assert.True(t, c.IsSolid())
	assert.True(t, c.IsBreakable())
	assert.Equal(t, uint8(128), c[3])
}

func TestTerrainMap_CloneIsIndependent(t *testing.T) {
	tm := NewTerrainMap(2, 2)
	cp := tm.Clone()
	cp.Set(0, 0, SolidBreakable)
	assert.Equal(t, Empty, tm.Sample(0, 0))
	assert.Equal(t, SolidBreakable, cp.Sample(0, 0))
}

func TestTerrainMap_SettleDropsOneRowPerPass(t *testing.T) {
	tm := NewTerrainMap(1, 3)
	tm.Set(0, 0, SolidBreakable)

	assert.Equal(t, 1, tm.Settle())
	assert.Equal(t, Cell{}, tm.Sample(0, 0))
	assert.Equal(t, SolidBreakable, tm.Sample(0, 1))

	assert.Equal(t, 1, tm.Settle())
	assert.Equal(t, SolidBreakable, tm.Sample(0, 2))

	assert.Zero(t, tm.Settle(), "resting on the floor")
}

func TestTerrainMap_SettleShiftsStack(t *testing.T) {
	tm := NewTerrainMap(1, 3)
	tm.Set(0, 0, SolidSteel)
	tm.Set(0, 1, SolidBreakable)

	assert.Equal(t, 2, tm.Settle())
	assert.Equal(t, Cell{}, tm.Sample(0, 0))
	assert.Equal(t, SolidSteel, tm.Sample(0, 1))
	assert.Equal(t, SolidBreakable, tm.Sample(0, 2))
}
