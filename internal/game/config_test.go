package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lemrus.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50*time.Millisecond, cfg.TickDuration())
	require.Len(t, cfg.Spawns, 1)
	assert.Equal(t, uint32(100), cfg.Spawns[0].X)
	assert.Equal(t, uint32(50), cfg.Spawns[0].Y)
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
ticks_per_second = 40
terrain_gravity = true

[level]
width = 300
height = 200

[[lemming]]
x = 10
y = 5
dir = "left"
actions = "bridge"

[[lemming]]
x = 20
y = 5
actions = "walk,dig"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25*time.Millisecond, cfg.TickDuration())
	assert.True(t, cfg.TerrainGravity)
	assert.Equal(t, uint32(300), cfg.Level.Width)
	assert.Equal(t, uint32(30), cfg.Level.HillAmplitude, "unset keys keep their default")
	require.Len(t, cfg.Spawns, 2, "spawn list replaces the default")
	assert.Equal(t, "left", cfg.Spawns[0].Dir)
	assert.Equal(t, "walk,dig", cfg.Spawns[1].Actions)
	assert.Len(t, cfg.Animation.Frames, 2, "animation defaults kept")
	assert.Equal(t, []string{"walk-0", "walk-1"}, cfg.Animation.Locomotion)
}

func TestLoadConfig_CustomAnimation(t *testing.T) {
	path := writeConfig(t, `
[animation]
start = "a"
locomotion = ["b"]

[[animation.frame]]
id = "a"
sprite = "lemming-walk-0"
delay_ms = 30
next = "b"

[[animation.frame]]
id = "b"
sprite = "lemming-walk-1"
delay_ms = 60
next = "a"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	at, err := cfg.Animation.Table()
	require.NoError(t, err)
	assert.Equal(t, FrameID("a"), at.Start())
	assert.True(t, at.IsLocomotion("b"))
	assert.False(t, at.IsLocomotion("a"))
	f, ok := at.Frame("b")
	require.True(t, ok)
	assert.Equal(t, 60*time.Millisecond, f.Delay)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "bogus = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")

	_, err = LoadConfig(writeConfig(t, "ticks_per_second = 0\n"))
	assert.ErrorContains(t, err, "ticks_per_second")

	_, err = LoadConfig(writeConfig(t, "[[lemming]]\nx = 1\ny = 1\nactions = \"fly\"\n"))
	assert.ErrorContains(t, err, "fly")

	_, err = LoadConfig(writeConfig(t, `
[animation]
start = "a"
locomotion = ["a"]
[[animation.frame]]
id = "a"
sprite = "s"
delay_ms = 10
next = "zzz"
`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFrame), "got %v", err)
}

func TestConfig_BuildWorld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level.Width = 240
	cfg.Level.Height = 160
	cfg.Level.Ground = 100
	cfg.Verbose = true

	w, err := cfg.BuildWorld()
	require.NoError(t, err)
	assert.Equal(t, uint32(240), w.Terrain().Width())
	assert.Equal(t, 50*time.Millisecond, w.TickDuration())
	assert.True(t, w.Log().Verbose())
	require.Len(t, w.Lemmings(), 1)
	l := w.Lemmings()[0]
	assert.Equal(t, ActionWalk|ActionDig, l.Actions)
	assert.Equal(t, DirRight, l.Dir)
}

func TestConfig_BuildWorldFromLevelFile(t *testing.T) {
	tm := NewTerrainMap(30, 20)
	tm.Fill(rectFromGround(30, 20, 15), SolidBreakable)
	path := filepath.Join(t.TempDir(), "level.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, EncodePNG(f, tm))
	require.NoError(t, f.Close())

	cfg := DefaultConfig()
	cfg.Level.Path = path
	cfg.Spawns = []SpawnConfig{{X: 5, Y: 0, Dir: "r", Actions: "none"}}
	w, err := cfg.BuildWorld()
	require.NoError(t, err)
	assert.Equal(t, uint32(30), w.Terrain().Width())
	w.RunTicks(20)
	assert.Equal(t, uint32(14), w.Lemmings()[0].Y)
}
