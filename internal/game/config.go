package game

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults: an 800x600 level updated 20 times
// a second with a single walker-digger dropped at (100, 50).
const (
	defaultTicksPerSecond = 20
	defaultLevelWidth     = 800
	defaultLevelHeight    = 600
)

// SpawnConfig places one lemming at start-up.
type SpawnConfig struct {
	X       uint32 `toml:"x"`
	Y       uint32 `toml:"y"`
	Dir     string `toml:"dir"`
	Actions string `toml:"actions"`
}

// FrameConfig is one animation frame as written in the config file.
type FrameConfig struct {
	ID      string `toml:"id"`
	Sprite  string `toml:"sprite"`
	DelayMs int    `toml:"delay_ms"`
	Next    string `toml:"next"`
}

// AnimationConfig is the externally supplied frame table.
type AnimationConfig struct {
	Start      string        `toml:"start"`
	Locomotion []string      `toml:"locomotion"`
	Frames     []FrameConfig `toml:"frame"`
}

// Config holds everything needed to build a World.
type Config struct {
	TicksPerSecond int             `toml:"ticks_per_second"`
	TerrainGravity bool            `toml:"terrain_gravity"`
	Verbose        bool            `toml:"verbose"`
	Level          LevelParams     `toml:"level"`
	Spawns         []SpawnConfig   `toml:"lemming"`
	Animation      AnimationConfig `toml:"animation"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		TicksPerSecond: defaultTicksPerSecond,
		Level:          DefaultLevelParams(),
		Spawns: []SpawnConfig{
			{X: 100, Y: 50, Dir: "right", Actions: "walk|dig"},
		},
		Animation: AnimationConfig{
			Start:      "walk-0",
			Locomotion: []string{"walk-0", "walk-1"},
			Frames: []FrameConfig{
				{ID: "walk-0", Sprite: "lemming-walk-0", DelayMs: 80, Next: "walk-1"},
				{ID: "walk-1", Sprite: "lemming-walk-1", DelayMs: 80, Next: "walk-0"},
			},
		},
	}
}

// LoadConfig decodes a TOML file over the defaults. Keys the file sets
// replace the default; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	def := DefaultConfig()
	cfg := def
	// Arrays of tables replace the defaults wholesale rather than merging
	// element by element.
	cfg.Spawns = nil
	cfg.Animation.Frames = nil
	cfg.Animation.Locomotion = nil
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if !md.IsDefined("lemming") {
		cfg.Spawns = def.Spawns
	}
	if !md.IsDefined("animation", "frame") {
		cfg.Animation.Frames = def.Animation.Frames
	}
	if !md.IsDefined("animation", "locomotion") {
		cfg.Animation.Locomotion = def.Animation.Locomotion
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail mid-run.
func (c Config) Validate() error {
	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("ticks_per_second must be > 0, got %d", c.TicksPerSecond)
	}
	if c.Level.Path == "" && (c.Level.Width == 0 || c.Level.Height == 0) {
		return fmt.Errorf("level size %dx%d is empty", c.Level.Width, c.Level.Height)
	}
	for i, s := range c.Spawns {
		if _, err := ParseDirection(s.Dir); err != nil {
			return fmt.Errorf("lemming %d: %w", i, err)
		}
		if _, err := ParseActionSet(s.Actions); err != nil {
			return fmt.Errorf("lemming %d: %w", i, err)
		}
	}
	_, err := c.Animation.Table()
	return err
}

// TickDuration is the fixed simulation delta.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}

// Table builds and validates the animation table.
func (ac AnimationConfig) Table() (*AnimationTable, error) {
	frames := make([]Frame, len(ac.Frames))
	for i, f := range ac.Frames {
		frames[i] = Frame{
			ID:     FrameID(f.ID),
			Sprite: SpriteID(f.Sprite),
			Delay:  time.Duration(f.DelayMs) * time.Millisecond,
			Next:   FrameID(f.Next),
		}
	}
	at := NewAnimationTable(FrameID(ac.Start), frames...)
	for _, id := range ac.Locomotion {
		at.MarkLocomotion(FrameID(id))
	}
	if err := at.Validate(); err != nil {
		return nil, fmt.Errorf("animation: %w", err)
	}
	return at, nil
}

// BuildWorld loads or generates the level, spawns the configured lemmings and
// returns a ready World.
func (c Config) BuildWorld(opts ...WorldOption) (*World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var terrain *TerrainMap
	if c.Level.Path != "" {
		tm, err := LoadLevel(c.Level.Path)
		if err != nil {
			return nil, err
		}
		terrain = tm
	} else {
		terrain = GenerateLevel(c.Level)
	}
	anims, err := c.Animation.Table()
	if err != nil {
		return nil, err
	}
	base := []WorldOption{
		WithTickDuration(c.TickDuration()),
		WithTerrainGravity(c.TerrainGravity),
		WithSimLog(NewSimLog(c.Verbose)),
	}
	w := NewWorld(terrain, anims, append(base, opts...)...)
	for _, s := range c.Spawns {
		dir, _ := ParseDirection(s.Dir)
		actions, _ := ParseActionSet(s.Actions)
		w.Spawn(s.X, s.Y, dir, actions)
	}
	return w, nil
}
