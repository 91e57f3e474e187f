package game

import (
	"image"
	"image/color"
)

// Cell is one RGBA pixel of the collision map.
// Channel 0 carries solidity, channel 2 breakability; the rest is visual.
type Cell [4]uint8

var (
	// Empty is open air.
	Empty = Cell{0, 0, 0, 255}
	// SolidBreakable is diggable ground, and what bridges are built from.
	SolidBreakable = Cell{255, 255, 255, 255}
	// SolidSteel blocks movement but cannot be dug.
	SolidSteel = Cell{160, 160, 0, 255}
)

// IsSolid reports whether the cell blocks passage.
func (c Cell) IsSolid() bool { return c[0] != 0 }

// IsBreakable reports whether digging may clear the cell.
func (c Cell) IsBreakable() bool { return c[2] != 0 }

// IsEmpty reports whether the cell is exactly Empty. A transparent or
// coloured non-solid cell is not empty.
func (c Cell) IsEmpty() bool { return c == Empty }

// TerrainMap is the authoritative pixel collision map. It is never resized.
type TerrainMap struct {
	width  uint32
	height uint32
	pix    []uint8 // row-major RGBA: index = (y*width + x) * 4
}

// NewTerrainMap creates a map of the given size filled with Empty.
func NewTerrainMap(width, height uint32) *TerrainMap {
	tm := &TerrainMap{
		width:  width,
		height: height,
		pix:    make([]uint8, int(width)*int(height)*4),
	}
	for i := 0; i < len(tm.pix); i += 4 {
		copy(tm.pix[i:i+4], Empty[:])
	}
	return tm
}

// NewTerrainMapFromImage copies a decoded level image into a new map. Channels
// are kept unpremultiplied, so a translucent pixel keeps its solid and
// breakable flags.
func NewTerrainMapFromImage(img image.Image) *TerrainMap {
	b := img.Bounds()
	tm := &TerrainMap{
		width:  uint32(b.Dx()), // #nosec G115 -- image bounds are non-negative
		height: uint32(b.Dy()), // #nosec G115
		pix:    make([]uint8, b.Dx()*b.Dy()*4),
	}
	rowLen := b.Dx() * 4
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(tm.pix[y*rowLen:(y+1)*rowLen], src.Pix[i:i+rowLen])
		}
		return tm
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := y*rowLen + x*4
			tm.pix[i], tm.pix[i+1], tm.pix[i+2], tm.pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return tm
}

// Width returns the map width in pixels.
func (tm *TerrainMap) Width() uint32 { return tm.width }

// Height returns the map height in pixels.
func (tm *TerrainMap) Height() uint32 { return tm.height }

// inBounds returns true if (x, y) lies inside the map.
func (tm *TerrainMap) inBounds(x, y uint32) bool {
	return x < tm.width && y < tm.height
}

func (tm *TerrainMap) offset(x, y uint32) int {
	return (int(y)*int(tm.width) + int(x)) * 4
}

// Query returns the cell at (x, y). ok is false when the coordinates are out
// of range; that is an ordinary outcome, not a fault.
func (tm *TerrainMap) Query(x, y uint32) (c Cell, ok bool) {
	if !tm.inBounds(x, y) {
		return Cell{}, false
	}
	i := tm.offset(x, y)
	return Cell(tm.pix[i : i+4]), true
}

// QueryMut returns a pointer into the map at (x, y), or nil if out of range.
func (tm *TerrainMap) QueryMut(x, y uint32) *Cell {
	if !tm.inBounds(x, y) {
		return nil
	}
	i := tm.offset(x, y)
	return (*Cell)(tm.pix[i : i+4])
}

// Sample is Query with out-of-range resolved to Empty.
func (tm *TerrainMap) Sample(x, y uint32) Cell {
	if c, ok := tm.Query(x, y); ok {
		return c
	}
	return Empty
}

// Set writes c at (x, y). It returns false if the coordinates are out of range.
func (tm *TerrainMap) Set(x, y uint32, c Cell) bool {
	p := tm.QueryMut(x, y)
	if p == nil {
		return false
	}
	*p = c
	return true
}

// Fill writes c to every in-range cell of r.
func (tm *TerrainMap) Fill(r image.Rectangle, c Cell) {
	r = r.Intersect(image.Rect(0, 0, int(tm.width), int(tm.height)))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			tm.Set(uint32(x), uint32(y), c) // #nosec G115 -- clipped to map bounds
		}
	}
}

// Pix exposes the live unpremultiplied RGBA buffer for direct blitting. Callers must not
// retain it across ticks if they need a stable copy.
func (tm *TerrainMap) Pix() []uint8 { return tm.pix }

// Image wraps the live buffer as an *image.NRGBA without copying.
func (tm *TerrainMap) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    tm.pix,
		Stride: int(tm.width) * 4,
		Rect:   image.Rect(0, 0, int(tm.width), int(tm.height)),
	}
}

// ColorAt returns the visual colour of (x, y); out of range is transparent.
func (tm *TerrainMap) ColorAt(x, y uint32) color.NRGBA {
	c, ok := tm.Query(x, y)
	if !ok {
		return color.NRGBA{}
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// Clone returns an independent copy of the map.
func (tm *TerrainMap) Clone() *TerrainMap {
	pix := make([]uint8, len(tm.pix))
	copy(pix, tm.pix)
	return &TerrainMap{width: tm.width, height: tm.height, pix: pix}
}

// CountSolid returns the number of solid cells.
func (tm *TerrainMap) CountSolid() int {
	n := 0
	for i := 0; i < len(tm.pix); i += 4 {
		if tm.pix[i] != 0 {
			n++
		}
	}
	return n
}

// Settle runs one pass of terrain gravity: each solid cell resting on a
// non-solid cell drops one row and leaves an all-zero cell behind. Columns are
// scanned bottom-up so a cell falls at most one row per pass.
func (tm *TerrainMap) Settle() int {
	moved := 0
	if tm.height < 2 {
		return 0
	}
	for x := uint32(0); x < tm.width; x++ {
		for y := tm.height - 1; y > 0; y-- {
			below := tm.QueryMut(x, y)
			if below.IsSolid() {
				continue
			}
			above := tm.QueryMut(x, y-1)
			if !above.IsSolid() {
				continue
			}
			*below = *above
			*above = Cell{}
			moved++
		}
	}
	return moved
}
