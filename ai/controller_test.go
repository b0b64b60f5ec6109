package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/pathfind"
)

// fixedGoal always marks the same tile.
type fixedGoal struct{ tile board.Tile }

func (f fixedGoal) MarkGoals(m *board.Marks, in GoalInput) {
	m.SetGoal(f.tile.X, f.tile.Y)
	EnsureGoal(m, in.Self)
}

func TestOpenBoardStepsTowardGoal(t *testing.T) {
	b := board.New(5, 5)
	for _, kind := range []string{pathfind.KindBFS, pathfind.KindBestFirst} {
		a := calmArchetype()
		a.Search = kind
		c, err := NewController(newActor(0, board.Tile{}), b, a,
			WithGoalMarker(fixedGoal{tile: board.Tile{X: 4, Y: 4}}))
		require.NoError(t, err)

		got := c.Update()
		assert.Contains(t, []action.Action{action.MoveRight, action.MoveUp}, got, kind)
	}
}

func TestSameTileSpawnAttacks(t *testing.T) {
	b := board.New(5, 5)
	a := calmArchetype()
	a.Range = 0
	enemy := newActor(0, board.Tile{X: 2, Y: 2})
	target := newActor(1, board.Tile{X: 2, Y: 2})

	c, err := NewController(enemy, b, a)
	require.NoError(t, err)
	c.SetTarget(target)

	got := c.Update()
	assert.Equal(t, StateAttack, c.State())
	assert.True(t, c.Marks().IsGoal(2, 2))
	assert.Equal(t, action.NoAction, c.Cached())
	assert.Equal(t, action.Attack, got)

	enemy.ready = false
	assert.Equal(t, action.NoAction, c.Update())
}

func TestWalledInEnemyStandsStill(t *testing.T) {
	b, err := board.FromRows([]string{
		".....",
		"..#..",
		".#.#.",
		"..#..",
		".....",
	})
	require.NoError(t, err)

	c, err := NewController(newActor(0, board.Tile{X: 2, Y: 2}), b, calmArchetype(),
		WithGoalMarker(fixedGoal{tile: board.Tile{X: 4, Y: 4}}))
	require.NoError(t, err)

	assert.Equal(t, action.NoAction, c.Update())
	assert.True(t, c.Marks().IsGoal(4, 4))
	assert.LessOrEqual(t, c.Marks().VisitedCount(), 1)
}

func TestTargetRemovedMidChase(t *testing.T) {
	b := board.New(20, 5)
	a := calmArchetype()
	a.DecisionInterval = 1
	enemy := newActor(0, board.Tile{X: 0, Y: 2})
	target := newActor(1, board.Tile{X: 6, Y: 2})

	c, err := NewController(enemy, b, a)
	require.NoError(t, err)
	c.SetTarget(target)

	c.Update()
	require.Equal(t, StateChase, c.State())
	require.Equal(t, action.MoveRight, c.Cached())

	target.active = false
	c.Update()
	assert.Equal(t, StateWander, c.State())
	assert.Nil(t, c.Target())
}

func TestDecisionCadence(t *testing.T) {
	b := board.New(20, 5)
	a := calmArchetype()
	a.DecisionInterval = 10
	a.Range = 1
	enemy := newActor(3, board.Tile{X: 0, Y: 2})
	target := newActor(9, board.Tile{X: 8, Y: 2})

	c, err := NewController(enemy, b, a)
	require.NoError(t, err)
	c.SetTarget(target)

	var decided []int
	prevTick := -1
	for tick := 0; tick < 30; tick++ {
		require.Equal(t, tick, c.Tick())
		due := c.DecisionDue()
		before := c.Marks().VisitedCount()
		got := c.Update()

		if due {
			decided = append(decided, tick)
			prevTick = tick
		} else {
			assert.Equal(t, before, c.Marks().VisitedCount(), "tick %d searched off-cadence", tick)
			if prevTick >= 0 {
				assert.Equal(t, c.Cached(), got.Movement(), "tick %d", tick)
			}
		}
	}
	assert.Equal(t, []int{7, 17, 27}, decided)
}

func TestAttackBitReevaluatedEveryCall(t *testing.T) {
	b := board.New(10, 3)
	a := calmArchetype()
	a.DecisionInterval = 10
	a.Range = 1
	enemy := newActor(0, board.Tile{X: 4, Y: 1})
	target := newActor(1, board.Tile{X: 5, Y: 1})

	c, err := NewController(enemy, b, a)
	require.NoError(t, err)
	c.SetTarget(target)

	require.True(t, c.Update().Has(action.Attack))
	require.Equal(t, StateAttack, c.State())

	enemy.ready = false
	assert.False(t, c.Update().Has(action.Attack), "cooldown")

	enemy.ready = true
	assert.True(t, c.Update().Has(action.Attack))

	target.moveTo(board.Tile{X: 8, Y: 1})
	assert.False(t, c.Update().Has(action.Attack), "out of reach between decisions")
	assert.Equal(t, StateAttack, c.State(), "state only changes on decision ticks")
}

func TestControllerDeterministicWithSeed(t *testing.T) {
	b := board.New(12, 12)
	run := func() []action.Action {
		a := calmArchetype()
		a.Patrol = PatrolRandom
		a.DecisionInterval = 1
		enemy := newActor(5, board.Tile{X: 6, Y: 6})
		c, err := NewController(enemy, b, a, WithRand(rand.New(rand.NewPCG(8, 8))))
		require.NoError(t, err)

		out := make([]action.Action, 0, 40)
		for i := 0; i < 40; i++ {
			act := c.Update()
			out = append(out, act)
			dx, dy := act.Delta()
			tile := c.Tile()
			enemy.moveTo(board.Tile{X: tile.X + dx, Y: tile.Y + dy})
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestEnemiesKeepSeparateMarks(t *testing.T) {
	b := board.New(8, 8)
	a := calmArchetype()
	a.DecisionInterval = 1

	c1, err := NewController(newActor(1, board.Tile{X: 0, Y: 0}), b, a,
		WithGoalMarker(fixedGoal{tile: board.Tile{X: 7, Y: 0}}))
	require.NoError(t, err)
	c2, err := NewController(newActor(2, board.Tile{X: 0, Y: 7}), b, a,
		WithGoalMarker(fixedGoal{tile: board.Tile{X: 0, Y: 0}}))
	require.NoError(t, err)

	assert.Equal(t, action.MoveRight, c1.Update())
	assert.Equal(t, action.MoveDown, c2.Update())
	assert.True(t, c1.Marks().IsGoal(7, 0))
	assert.True(t, c2.Marks().IsGoal(0, 0))
}

func TestSharedMarksUseBoardSlot(t *testing.T) {
	b := board.New(4, 1)
	c, err := NewController(newActor(0, board.Tile{}), b, calmArchetype(),
		WithSharedMarks(), WithGoalMarker(fixedGoal{tile: board.Tile{X: 3, Y: 0}}))
	require.NoError(t, err)

	assert.Equal(t, action.MoveRight, c.Update())
	assert.True(t, b.IsGoal(3, 0))
}

func TestSetArchetypeKeepsState(t *testing.T) {
	b := board.New(5, 5)
	c, err := NewController(newActor(0, board.Tile{X: 2, Y: 2}), b, calmArchetype())
	require.NoError(t, err)
	c.Update()
	state, tick := c.State(), c.Tick()

	next := calmArchetype()
	next.Search = pathfind.KindBestFirst
	next.Hit = HitRanged
	require.NoError(t, c.SetArchetype(next))
	assert.Equal(t, state, c.State())
	assert.Equal(t, tick, c.Tick())
	assert.IsType(t, &pathfind.BestFirst{}, c.Engine())

	bad := calmArchetype()
	bad.Search = "teleport"
	assert.ErrorIs(t, c.SetArchetype(bad), pathfind.ErrUnknownEngine)
	assert.Equal(t, HitRanged, c.Archetype().Hit)
}

func TestDebugPath(t *testing.T) {
	b := board.New(5, 1)
	c, err := NewController(newActor(0, board.Tile{}), b, calmArchetype(),
		WithGoalMarker(fixedGoal{tile: board.Tile{X: 3, Y: 0}}))
	require.NoError(t, err)
	c.Update()

	path := c.DebugPath()
	require.Len(t, path, 4)
	assert.Equal(t, board.Tile{X: 3, Y: 0}, path[3])
}

func TestRangedEnemyWalksAroundWallAndFires(t *testing.T) {
	b, err := board.FromRows([]string{
		".......",
		"...#...",
		".......",
	})
	require.NoError(t, err)
	a := calmArchetype()
	a.Hit = HitRanged
	a.Range = 3
	a.DecisionInterval = 1
	tile := board.Tile{X: 0, Y: 1}
	enemy := newActor(0, tile)
	target := newActor(1, board.Tile{X: 5, Y: 1})

	c, err := NewController(enemy, b, a)
	require.NoError(t, err)
	c.SetTarget(target)

	fired := false
	for i := 0; i < 50 && !fired; i++ {
		act := c.Update()
		fired = act.Has(action.Attack)
		dx, dy := act.Movement().Delta()
		tile = board.Tile{X: tile.X + dx, Y: tile.Y + dy}
		require.True(t, b.IsSafeAt(tile.X, tile.Y))
		enemy.moveTo(tile)
	}
	require.True(t, fired, "state=%s tile=%s", c.State(), tile)
	assert.Equal(t, StateAttack, c.State())
	assert.Equal(t, board.Tile{X: 4, Y: 1}, tile)
}

func TestBestFirstPrefersLongAxisOnlyWhilePursuing(t *testing.T) {
	b := board.New(20, 5)
	a := calmArchetype()
	a.Search = pathfind.KindBestFirst
	a.DecisionInterval = 1
	target := newActor(1, board.Tile{X: 6, Y: 2})

	c, err := NewController(newActor(0, board.Tile{X: 0, Y: 2}), b, a)
	require.NoError(t, err)
	engine, ok := c.Engine().(*pathfind.BestFirst)
	require.True(t, ok)

	c.SetTarget(target)
	c.Update()
	require.Equal(t, StateChase, c.State())
	assert.True(t, engine.Chasing())

	target.active = false
	c.Update()
	require.Equal(t, StateWander, c.State())
	assert.False(t, engine.Chasing())
}
