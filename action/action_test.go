package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitValues(t *testing.T) {
	assert.Equal(t, Action(0), NoAction)
	assert.Equal(t, Action(1), MoveLeft)
	assert.Equal(t, Action(2), MoveRight)
	assert.Equal(t, Action(4), MoveUp)
	assert.Equal(t, Action(8), MoveDown)
	assert.Equal(t, Action(16), Attack)
}

func TestDeltaRoundTrip(t *testing.T) {
	for _, move := range Moves {
		dx, dy := move.Delta()
		assert.Equal(t, move, FromDelta(dx, dy), "move %s", move)
		odx, ody := move.Opposite().Delta()
		assert.Equal(t, -dx, odx)
		assert.Equal(t, -dy, ody)
	}
	dx, dy := NoAction.Delta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.Equal(t, NoAction, FromDelta(1, 1))
}

func TestMovementIgnoresAttack(t *testing.T) {
	a := MoveUp | Attack
	assert.True(t, a.Has(Attack))
	assert.Equal(t, MoveUp, a.Movement())
	dx, dy := a.Delta()
	assert.Equal(t, 0, dx)
	assert.Equal(t, 1, dy)
	assert.Equal(t, "up|attack", a.String())
	assert.Equal(t, "none", NoAction.String())
}
