package game

import (
	"hash/fnv"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	spriteW = 6
	spriteH = 10
	// Anchor inside the sprite that sits on the lemming's position.
	spriteAnchorX = 0.5
	spriteAnchorY = 0.9
)

var (
	hairCol = color.RGBA{R: 60, G: 200, B: 60, A: 255}
	skinCol = color.RGBA{R: 240, G: 200, B: 170, A: 255}
	robeCol = color.RGBA{R: 70, G: 90, B: 230, A: 255}
)

// walkPoses are two 6x10 masks: h hair, s skin, b body, blank transparent.
var walkPoses = [2][spriteH]string{
	{
		" hh   ",
		"hhhh  ",
		" ss   ",
		" bbs  ",
		" bb   ",
		" bb   ",
		" bb   ",
		" s s  ",
		"s   s ",
		"s   s ",
	},
	{
		" hh   ",
		"hhhh  ",
		" ss   ",
		" bbs  ",
		" bb   ",
		" bb   ",
		" bb   ",
		" ss   ",
		" ss   ",
		" s s  ",
	},
}

// spriteAtlas lazily builds one image per sprite id. The two walk sprites are
// drawn from masks; any other id gets a solid block tinted from its name.
type spriteAtlas struct {
	images map[SpriteID]*ebiten.Image
}

func newSpriteAtlas() *spriteAtlas {
	return &spriteAtlas{images: make(map[SpriteID]*ebiten.Image)}
}

func (sa *spriteAtlas) get(id SpriteID) *ebiten.Image {
	if img, ok := sa.images[id]; ok {
		return img
	}
	img := ebiten.NewImage(spriteW, spriteH)
	switch id {
	case "lemming-walk-0":
		paintMask(img, walkPoses[0])
	case "lemming-walk-1":
		paintMask(img, walkPoses[1])
	default:
		img.Fill(tintFor(id))
	}
	sa.images[id] = img
	return img
}

func paintMask(img *ebiten.Image, mask [spriteH]string) {
	for y, row := range mask {
		for x, ch := range row {
			switch ch {
			case 'h':
				img.Set(x, y, hairCol)
			case 's':
				img.Set(x, y, skinCol)
			case 'b':
				img.Set(x, y, robeCol)
			}
		}
	}
}

func tintFor(id SpriteID) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	v := h.Sum32()
	return color.RGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: 255} // #nosec G115 -- byte extraction
}
