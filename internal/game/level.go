package game

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedLevel is returned for level files that are neither PNG nor BMP.
var ErrUnsupportedLevel = errors.New("unsupported level format")

// LevelParams drive the procedural level generator. Path, when set, loads a
// level image instead.
type LevelParams struct {
	Path          string `toml:"path"`
	Width         uint32 `toml:"width"`
	Height        uint32 `toml:"height"`
	Seed          int64  `toml:"seed"`
	Ground        uint32 `toml:"ground"`         // mean surface row
	HillAmplitude uint32 `toml:"hill_amplitude"` // max rows above/below Ground
	SteelBlocks   int    `toml:"steel_blocks"`
	Gaps          int    `toml:"gaps"`
}

// DefaultLevelParams returns an 800x600 rolling landscape.
func DefaultLevelParams() LevelParams {
	return LevelParams{
		Width:         defaultLevelWidth,
		Height:        defaultLevelHeight,
		Seed:          1,
		Ground:        400,
		HillAmplitude: 30,
		SteelBlocks:   3,
		Gaps:          1,
	}
}

// LoadLevel decodes a PNG or BMP file into a terrain map.
func LoadLevel(path string) (*TerrainMap, error) {
	f, err := os.Open(path) // #nosec G304 -- level path is operator supplied
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close()
	tm, err := DecodeLevel(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return tm, nil
}

// DecodeLevel decodes a level image; ext selects the format (".png", ".bmp").
func DecodeLevel(r io.Reader, ext string) (*TerrainMap, error) {
	var (
		img image.Image
		err error
	)
	switch strings.ToLower(ext) {
	case ".png":
		img, err = png.Decode(r)
	case ".bmp":
		img, err = bmp.Decode(r)
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedLevel)
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return NewTerrainMapFromImage(img), nil
}

// EncodePNG writes the terrain as a PNG image.
func EncodePNG(w io.Writer, tm *TerrainMap) error {
	return png.Encode(w, tm.Image())
}

// GenerateLevel builds a deterministic landscape from p: breakable ground
// under a rolling surface, steel blocks sitting on it and bottomless gaps.
func GenerateLevel(p LevelParams) *TerrainMap {
	tm := NewTerrainMap(p.Width, p.Height)
	if p.Width == 0 || p.Height == 0 {
		return tm
	}
	rng := rand.New(rand.NewSource(p.Seed)) // #nosec G404 -- level layout only

	surface := make([]uint32, p.Width)
	phaseA := rng.Float64() * 2 * math.Pi
	phaseB := rng.Float64() * 2 * math.Pi
	amp := float64(p.HillAmplitude)
	for x := uint32(0); x < p.Width; x++ {
		fx := float64(x)
		h := float64(p.Ground) +
			amp*0.7*math.Sin(fx/97+phaseA) +
			amp*0.3*math.Sin(fx/23+phaseB)
		surface[x] = clampRow(h, p.Height)
	}

	for x := uint32(0); x < p.Width; x++ {
		for y := surface[x]; y < p.Height; y++ {
			// Channel 1 is visual only; vary it for texture.
			shade := uint8(200 + rng.Intn(56)) // #nosec G115 -- 200..255
			tm.Set(x, y, Cell{255, shade, 255, 255})
		}
	}

	for i := 0; i < p.SteelBlocks; i++ {
		w := 8 + rng.Intn(9)
		h := 10 + rng.Intn(11)
		x0 := rng.Intn(int(p.Width))
		top := int(surface[x0]) - h
		tm.Fill(image.Rect(x0, top, x0+w, int(surface[x0])+2), SolidSteel)
	}

	for i := 0; i < p.Gaps; i++ {
		w := 6 + rng.Intn(9)
		// Keep gaps away from the left edge where the default spawn lands.
		x0 := int(p.Width)/4 + rng.Intn(max(1, int(p.Width)*3/4-w))
		tm.Fill(image.Rect(x0, 0, x0+w, int(p.Height)), Empty)
	}
	return tm
}

func clampRow(h float64, height uint32) uint32 {
	if h < 1 {
		return 1
	}
	if h > float64(height-1) {
		return height - 1
	}
	return uint32(h)
}
