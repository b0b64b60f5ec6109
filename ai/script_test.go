package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/gridhunt/board"
)

const aboveTargetScript = `
if has_target {
	goal_x = target_x
	goal_y = target_y + 1
	if !is_safe(goal_x, goal_y) {
		goal_x = -1
	}
}
`

func TestScriptedGoals(t *testing.T) {
	b := board.New(5, 5)
	sg, err := NewScriptedGoals("above", []byte(aboveTargetScript), NewGoals(calmArchetype(), nil))
	require.NoError(t, err)

	in := GoalInput{
		State:     StateChase,
		Self:      board.Tile{X: 0, Y: 0},
		Target:    board.Tile{X: 2, Y: 2},
		HasTarget: true,
		Range:     1,
		Hit:       MeleeHit{},
	}
	got, ok := markOnce(sg, b, in)
	require.True(t, ok)
	assert.Equal(t, board.Tile{X: 2, Y: 3}, got)

	b.SetBlocked(2, 3, true)
	got, ok = markOnce(sg, b, in)
	require.True(t, ok)
	assert.NotEqual(t, board.Tile{X: 2, Y: 3}, got, "unsafe script goal falls back")
	assert.True(t, b.IsSafeAt(got.X, got.Y))

	in.HasTarget = false
	in.State = StateSpawn
	got, ok = markOnce(sg, b, in)
	require.True(t, ok)
	assert.Equal(t, in.Self, got)
}

func TestScriptedGoalsKeepImmobileInPlace(t *testing.T) {
	b := board.New(5, 5)
	sg, err := NewScriptedGoals("above", []byte(aboveTargetScript), nil)
	require.NoError(t, err)

	got, ok := markOnce(sg, b, GoalInput{
		State:     StateChase,
		Self:      board.Tile{X: 0, Y: 0},
		Target:    board.Tile{X: 2, Y: 2},
		HasTarget: true,
		Range:     1,
		Immobile:  true,
	})
	require.True(t, ok)
	assert.Equal(t, board.Tile{X: 0, Y: 0}, got)
}

func TestScriptedGoalsCompileError(t *testing.T) {
	_, err := NewScriptedGoals("broken", []byte("goal_x = = 1"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestControllerLoadsGoalScript(t *testing.T) {
	b := board.New(6, 6)
	a := calmArchetype()
	a.GoalScript = "above.tengo"

	_, err := NewController(newActor(0, board.Tile{}), b, a)
	require.Error(t, err, "no loader")

	loads := 0
	loader := func(name string) ([]byte, error) {
		loads++
		assert.Equal(t, "above.tengo", name)
		return []byte(aboveTargetScript), nil
	}
	c, err := NewController(newActor(0, board.Tile{}), b, a, WithScriptLoader(loader))
	require.NoError(t, err)
	c.SetTarget(newActor(1, board.Tile{X: 4, Y: 0}))
	c.Update()

	assert.Equal(t, 1, loads)
	assert.True(t, c.Marks().IsGoal(4, 1))
}

func TestDebugLoggingGate(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	EnableDebugLogging(true)
	assert.True(t, IsDebugEnabled())
	EnableDebugLogging(false)
	assert.False(t, IsDebugEnabled())
}
