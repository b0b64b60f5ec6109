package ai

import (
	"math/rand/v2"

	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/board"
)

// PatrolKind selects the WANDER goal policy.
type PatrolKind string

const (
	PatrolSquare     PatrolKind = "square"
	PatrolHorizontal PatrolKind = "horizontal"
	PatrolVertical   PatrolKind = "vertical"
	PatrolRandom     PatrolKind = "random"
)

// Valid reports a known kind. Empty counts as square.
func (k PatrolKind) Valid() bool {
	switch k {
	case "", PatrolSquare, PatrolHorizontal, PatrolVertical, PatrolRandom:
		return true
	}
	return false
}

// patrol remembers where a wandering enemy is headed between decisions.
type patrol struct {
	kind           PatrolKind
	size           int
	continueChance float64
	rng            *rand.Rand

	anchor    board.Tile
	hasAnchor bool
	seq       int
	dir       action.Action
}

func newPatrol(a Archetype, rng *rand.Rand) *patrol {
	size := a.PatrolSize
	if size <= 0 {
		size = defaultPatrolSize
	}
	kind := a.Patrol
	if kind == "" {
		kind = PatrolSquare
	}
	return &patrol{
		kind:           kind,
		size:           size,
		continueChance: a.ContinueChance,
		rng:            rng,
	}
}

// waypoints returns the loop corners relative to the anchor.
func (p *patrol) waypoints() []board.Tile {
	s := p.size
	switch p.kind {
	case PatrolHorizontal:
		return []board.Tile{{X: 0, Y: 0}, {X: s, Y: 0}}
	case PatrolVertical:
		return []board.Tile{{X: 0, Y: 0}, {X: 0, Y: s}}
	default:
		return []board.Tile{{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}, {X: 0, Y: s}}
	}
}

func (p *patrol) mark(m *board.Marks, self board.Tile) {
	if p.kind == PatrolRandom {
		p.markRandom(m, self)
		return
	}
	if !p.hasAnchor {
		p.anchor = self
		p.hasAnchor = true
		p.seq = 1
	}

	b := m.Board()
	wps := p.waypoints()
	// Skip waypoints already reached or with no safe tile nearby, at most
	// one full lap.
	for range wps {
		wp := wps[p.seq%len(wps)]
		goal, ok := b.NearestSafe(board.Tile{X: p.anchor.X + wp.X, Y: p.anchor.Y + wp.Y})
		if ok && goal != self {
			m.SetGoal(goal.X, goal.Y)
			return
		}
		p.seq++
	}
}

// markRandom keeps heading the same way with probability continueChance,
// otherwise picks uniformly among the safe orthogonal neighbours, and marks
// the farthest safe tile up to size steps along that direction.
func (p *patrol) markRandom(m *board.Marks, self board.Tile) {
	b := m.Board()

	dir := p.dir
	if dir != action.NoAction {
		dx, dy := dir.Delta()
		if !b.IsSafeAt(self.X+dx, self.Y+dy) || !roll(p.rng, p.continueChance) {
			dir = action.NoAction
		}
	}
	if dir == action.NoAction {
		var open [4]action.Action
		n := 0
		for _, mv := range action.Moves {
			dx, dy := mv.Delta()
			if b.IsSafeAt(self.X+dx, self.Y+dy) {
				open[n] = mv
				n++
			}
		}
		if n == 0 {
			p.dir = action.NoAction
			return
		}
		pick := 0
		if p.rng != nil {
			pick = p.rng.IntN(n)
		}
		dir = open[pick]
	}
	p.dir = dir

	dx, dy := dir.Delta()
	goal := self
	for i := 0; i < p.size; i++ {
		next := board.Tile{X: goal.X + dx, Y: goal.Y + dy}
		if !b.IsSafeAt(next.X, next.Y) {
			break
		}
		goal = next
	}
	m.SetGoal(goal.X, goal.Y)
}

// advance moves on to the next waypoint, used when the current one turns
// out to be unreachable.
func (p *patrol) advance() {
	p.seq++
	p.dir = action.NoAction
}
