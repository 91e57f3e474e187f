package main

import (
	"testing"

	"github.com/Garsondee/Lemrus/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	w := game.NewWorld(game.NewTerrainMap(10, 10), game.DefaultAnimations())
	l := w.Spawn(2, 2, game.DirRight, game.ActionWalk)

	assert.Equal(t, "L0 skills: walk|dig", toggle(w, l.ID, game.ActionDig))
	assert.True(t, l.Actions.Has(game.ActionDig))

	assert.Equal(t, "L0 skills: dig", toggle(w, l.ID, game.ActionWalk))
	assert.Equal(t, "no lemming 3", toggle(w, 3, game.ActionBridge))
}
