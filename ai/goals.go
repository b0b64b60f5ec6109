package ai

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/board"
)

// GoalInput is the snapshot a GoalMarker sees for one decision.
type GoalInput struct {
	State     State
	Self      board.Tile
	Target    board.Tile
	HasTarget bool
	Range     int
	Hit       HitPolicy
	Immobile  bool
}

// GoalMarker marks goal tiles on freshly cleared marks before a search.
type GoalMarker interface {
	MarkGoals(m *board.Marks, in GoalInput)
}

// Advancer is implemented by markers that keep patrol progress and want to
// skip a goal the search could not reach.
type Advancer interface {
	Advance()
}

// Goals is the built-in per-state marking strategy. It keeps patrol
// progress, so every controller owns its own.
type Goals struct {
	patrol *patrol
}

func NewGoals(a Archetype, rng *rand.Rand) *Goals {
	return &Goals{patrol: newPatrol(a, rng)}
}

func (g *Goals) MarkGoals(m *board.Marks, in GoalInput) {
	if m == nil {
		return
	}
	if in.Immobile {
		m.SetGoal(in.Self.X, in.Self.Y)
		EnsureGoal(m, in.Self)
		return
	}

	switch in.State {
	case StateWander:
		g.patrol.mark(m, in.Self)
	case StateChase:
		if in.HasTarget {
			markChase(m, in)
		}
	case StateAttack:
		if in.HasTarget {
			markAttack(m, in)
		}
	}
	EnsureGoal(m, in.Self)
}

func (g *Goals) Advance() {
	g.patrol.advance()
}

// markChase marks, among the four lanes through the target, the firing tile
// nearest the enemy. Each lane starts at attack range and steps inward past
// tiles that are unsafe or have no line of fire. When no lane yields one,
// any firing tile around the target is used.
func markChase(m *board.Marks, in GoalInput) {
	b := m.Board()
	hit := hitPolicy(in)
	minStep := 1
	if in.Range <= 0 {
		minStep = 0
	}

	best, bestDist := board.Tile{}, math.MaxInt
	for _, mv := range action.Moves {
		dx, dy := mv.Delta()
		for k := max(in.Range, minStep); k >= minStep; k-- {
			c := board.Tile{X: in.Target.X + dx*k, Y: in.Target.Y + dy*k}
			if !b.IsSafeAt(c.X, c.Y) || !hit.CanHit(b, c, in.Target, in.Range) {
				continue
			}
			if d := c.Manhattan(in.Self); d < bestDist {
				best, bestDist = c, d
			}
			break
		}
	}
	if bestDist != math.MaxInt {
		m.SetGoal(best.X, best.Y)
		return
	}
	markNearestFiring(m, in, hit)
}

// markAttack keeps the enemy in place when it already reaches the target,
// otherwise marks the nearest tile on the four lanes through the target
// from which the hit policy connects.
func markAttack(m *board.Marks, in GoalInput) {
	b := m.Board()
	hit := hitPolicy(in)
	if hit.CanHit(b, in.Self, in.Target, in.Range) {
		m.SetGoal(in.Self.X, in.Self.Y)
		return
	}

	best, bestDist := board.Tile{}, math.MaxInt
	consider := func(c board.Tile) {
		if !b.IsSafeAt(c.X, c.Y) || !hit.CanHit(b, c, in.Target, in.Range) {
			return
		}
		if d := c.Manhattan(in.Self); d < bestDist {
			best, bestDist = c, d
		}
	}
	if in.Range == 0 {
		consider(in.Target)
	}
	for _, mv := range action.Moves {
		dx, dy := mv.Delta()
		for k := 1; k <= in.Range; k++ {
			consider(board.Tile{X: in.Target.X + dx*k, Y: in.Target.Y + dy*k})
		}
	}
	if bestDist != math.MaxInt {
		m.SetGoal(best.X, best.Y)
		return
	}
	markNearestFiring(m, in, hit)
}

// markNearestFiring scans the square of attack range around the target, so
// diagonal shots from power tiles are found too. The target tile only counts
// at range 0. Ties keep the first tile in
// row-major order.
func markNearestFiring(m *board.Marks, in GoalInput, hit HitPolicy) {
	if in.Range < 0 {
		return
	}
	b := m.Board()
	best, bestDist := board.Tile{}, math.MaxInt
	for y := in.Target.Y - in.Range; y <= in.Target.Y+in.Range; y++ {
		for x := in.Target.X - in.Range; x <= in.Target.X+in.Range; x++ {
			c := board.Tile{X: x, Y: y}
			if c == in.Target && in.Range > 0 {
				continue
			}
			if !b.IsSafeAt(x, y) || !hit.CanHit(b, c, in.Target, in.Range) {
				continue
			}
			if d := c.Manhattan(in.Self); d < bestDist {
				best, bestDist = c, d
			}
		}
	}
	if bestDist != math.MaxInt {
		m.SetGoal(best.X, best.Y)
	}
}

func hitPolicy(in GoalInput) HitPolicy {
	if in.Hit == nil {
		return MeleeHit{}
	}
	return in.Hit
}

// EnsureGoal guarantees a safe goal after marking: the enemy's own tile, or
// the nearest safe tile when that is unsafe. It is a no-op when a goal is
// already set or the board has no safe tile.
func EnsureGoal(m *board.Marks, self board.Tile) {
	if _, ok := m.Goal(); ok {
		return
	}
	m.SetGoal(self.X, self.Y)
	if _, ok := m.Goal(); ok {
		return
	}
	if t, ok := m.Board().NearestSafe(self); ok {
		m.SetGoal(t.X, t.Y)
	}
}
