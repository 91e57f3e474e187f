package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hudHeight is the strip under the level reserved for status text.
const hudHeight = 56

// selectRadius is how close (in level pixels) a click must land to a lemming.
const selectRadius = 8

// Game adapts a World to ebiten's Update/Draw loop. Update advances the
// simulation; Draw only reads it.
type Game struct {
	world *World
	cfg   Config
	feed  *EventFeed

	levelW, levelH int
	scale          int
	width, height  int

	terrainImg *ebiten.Image
	sprites    *spriteAtlas

	selected int // lemming id, -1 when none
	status   string

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
}

// New builds the viewer for cfg. scale is the integer pixel zoom.
func New(cfg Config, scale int) (*Game, error) {
	if scale < 1 {
		scale = 1
	}
	feed := NewEventFeed()
	w, err := cfg.BuildWorld(WithEventFeed(feed), WithReporter(NewSimReporter(0), cfg.TicksPerSecond))
	if err != nil {
		return nil, err
	}
	lw := int(w.Terrain().Width())
	lh := int(w.Terrain().Height())
	g := &Game{
		world:      w,
		cfg:        cfg,
		feed:       feed,
		levelW:     lw,
		levelH:     lh,
		scale:      scale,
		width:      lw*scale + feedPanelWidth,
		height:     lh*scale + hudHeight,
		terrainImg: ebiten.NewImage(lw, lh),
		sprites:    newSpriteAtlas(),
		selected:   -1,
		simSpeed:   1,
		prevKeys:   make(map[ebiten.Key]bool),
	}
	ebiten.SetTPS(cfg.TicksPerSecond)
	return g, nil
}

// World exposes the simulated world.
func (g *Game) World() *World { return g.world }

// WindowSize is the natural window size for Layout.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.handleInput()
	if g.simSpeed <= 0 {
		return nil
	}
	// For speeds > 1 run multiple sim ticks per frame.
	// For speeds < 1 accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.world.Step()
	}
	return nil
}

func (g *Game) keyPressed(k ebiten.Key, current map[ebiten.Key]bool) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	// Space: pause/resume. -/=: slower/faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if g.keyPressed(ebiten.KeySpace, currentKeys) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.keyPressed(ebiten.KeyMinus, currentKeys) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if g.keyPressed(ebiten.KeyEqual, currentKeys) {
		for _, s := range speeds {
			if s > g.simSpeed {
				g.simSpeed = s
				break
			}
		}
	}
	// Period: single step while paused.
	if g.keyPressed(ebiten.KeyPeriod, currentKeys) && g.simSpeed == 0 {
		g.world.Step()
	}

	// Skill toggles on the selected lemming.
	toggles := []struct {
		key ebiten.Key
		act ActionSet
	}{
		{ebiten.KeyW, ActionWalk},
		{ebiten.KeyD, ActionDig},
		{ebiten.KeyB, ActionBridge},
	}
	for _, t := range toggles {
		if g.keyPressed(t.key, currentKeys) {
			g.toggleSelected(t.act)
		}
	}

	// N: spawn a walker under the cursor.
	if g.keyPressed(ebiten.KeyN, currentKeys) {
		if x, y, ok := g.cursorLevelPos(); ok {
			l := g.world.Spawn(uint32(x), uint32(y), DirRight, ActionWalk) // #nosec G115 -- checked by cursorLevelPos
			g.selected = l.ID
			g.status = fmt.Sprintf("spawned %s", l.Label())
		}
	}

	// C: copy the selected lemming's report.
	if g.keyPressed(ebiten.KeyC, currentKeys) && g.selected >= 0 {
		report := LemmingDebugReport(g.world, g.selected, 0)
		if err := clipboard.WriteAll(report); err != nil {
			g.status = "clipboard: " + err.Error()
		} else {
			g.status = "report copied"
		}
	}

	// Left mouse click: select the nearest lemming.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !g.prevMouseLeft {
		if x, y, ok := g.cursorLevelPos(); ok {
			g.selected = g.nearestLemming(x, y)
		}
	}
	g.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.prevKeys = currentKeys
}

func (g *Game) toggleSelected(act ActionSet) {
	l, ok := g.world.Lemming(g.selected)
	if !ok {
		return
	}
	if err := g.world.SetActions(l.ID, l.Actions.Toggle(act)); err != nil {
		g.status = err.Error()
		return
	}
	g.status = fmt.Sprintf("%s skills: %s", l.Label(), l.Actions)
}

// cursorLevelPos converts the cursor to level pixels.
func (g *Game) cursorLevelPos() (int, int, bool) {
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	if x < 0 || y < 0 || x >= g.levelW || y >= g.levelH {
		return 0, 0, false
	}
	return x, y, true
}

// nearestLemming returns the id of the closest on-map lemming within
// selectRadius of (x, y), or -1.
func (g *Game) nearestLemming(x, y int) int {
	best := -1
	bestD := math.MaxFloat64
	for _, lv := range g.world.LemmingViews() {
		if !lv.OnMap {
			continue
		}
		dx := float64(int(lv.X) - x)
		dy := float64(int(lv.Y) - spriteH/2 - y)
		d := math.Hypot(dx, dy)
		if d <= selectRadius && d < bestD {
			best, bestD = lv.ID, d
		}
	}
	return best
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 6, G: 6, B: 10, A: 255})

	g.terrainImg.WritePixels(g.world.Terrain().Pix())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.terrainImg, op)

	for _, lv := range g.world.LemmingViews() {
		if !lv.OnMap {
			continue
		}
		g.drawLemming(screen, lv)
	}

	g.drawHUD(screen)
	g.feed.Draw(screen, g.levelW*g.scale, g.height)
}

func (g *Game) drawLemming(screen *ebiten.Image, lv LemmingView) {
	img := g.sprites.get(lv.Sprite)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-spriteAnchorX*spriteW, -spriteAnchorY*spriteH)
	if lv.Dir == DirLeft {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Translate(float64(lv.X), float64(lv.Y))
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(img, op)

	if lv.ID == g.selected {
		s := float32(g.scale)
		x := (float32(lv.X) - spriteAnchorX*spriteW - 2) * s
		y := (float32(lv.Y) - spriteAnchorY*spriteH - 2) * s
		vector.StrokeRect(screen, x, y, (spriteW+4)*s, (spriteH+4)*s, 1, color.RGBA{R: 255, G: 220, B: 40, A: 255}, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	top := g.levelH * g.scale
	vector.FillRect(screen, 0, float32(top), float32(g.levelW*g.scale), hudHeight, color.RGBA{R: 16, G: 14, B: 22, A: 255}, false)

	speed := "paused"
	if g.simSpeed > 0 {
		speed = fmt.Sprintf("%.1fx", g.simSpeed)
	}
	line1 := fmt.Sprintf("T=%d  speed=%s  lemmings=%d", g.world.Tick(), speed, len(g.world.Lemmings()))
	if rep := g.world.Reporter(); rep != nil && rep.Latest() != nil {
		line1 += fmt.Sprintf("  falling=%d  on-map=%d", rep.Latest().Falling, rep.Latest().OnMap)
	}
	text.Draw(screen, line1, basicfont.Face7x13, 8, top+16, color.White)

	line2 := "click select  W/D/B skills  N spawn  C copy report  SPACE pause  . step  -/= speed"
	if l, ok := g.world.Lemming(g.selected); ok {
		line2 = fmt.Sprintf("%s (%d,%d) %s  skills=%s  frame=%s", l.Label(), l.X, l.Y, l.Dir, l.Actions, l.Clock.Current())
	}
	text.Draw(screen, line2, basicfont.Face7x13, 8, top+32, color.RGBA{R: 190, G: 190, B: 210, A: 255})
	if g.status != "" {
		text.Draw(screen, g.status, basicfont.Face7x13, 8, top+48, color.RGBA{R: 255, G: 220, B: 120, A: 255})
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
