package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/gridhunt/board"
)

func TestSelectTarget(t *testing.T) {
	b := board.New(20, 20)
	self := board.Tile{X: 5, Y: 5}

	near := newActor(7, board.Tile{X: 6, Y: 5})
	tieLow := newActor(2, board.Tile{X: 5, Y: 7})
	tieHigh := newActor(9, board.Tile{X: 7, Y: 5})
	far := newActor(3, board.Tile{X: 15, Y: 15})
	me := newActor(1, self)
	dead := newActor(4, self)
	dead.active = false

	all := []Target{far, tieHigh, tieLow, near, me, dead}

	t.Run("nearest", func(t *testing.T) {
		got := SelectTarget(1, self, nil, all, b.ToTile, false)
		assert.Same(t, near, got)
	})

	t.Run("tie_breaks_by_id", func(t *testing.T) {
		got := SelectTarget(1, self, nil, []Target{tieHigh, tieLow}, b.ToTile, false)
		assert.Same(t, tieLow, got)
	})

	t.Run("keeps_current", func(t *testing.T) {
		got := SelectTarget(1, self, far, all, b.ToTile, false)
		assert.Same(t, far, got)
	})

	t.Run("force_reselects", func(t *testing.T) {
		got := SelectTarget(1, self, far, all, b.ToTile, true)
		assert.Same(t, near, got)
	})

	t.Run("replaces_inactive_current", func(t *testing.T) {
		got := SelectTarget(1, self, dead, all, b.ToTile, false)
		assert.Same(t, near, got)
	})

	t.Run("none", func(t *testing.T) {
		assert.Nil(t, SelectTarget(1, self, nil, []Target{me, dead}, b.ToTile, false))
		assert.Nil(t, SelectTarget(1, self, nil, nil, b.ToTile, true))
	})
}
