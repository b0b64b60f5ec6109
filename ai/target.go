package ai

import (
	"github.com/milk9111/gridhunt/board"
)

// Agent is the enemy a Controller drives.
type Agent interface {
	ID() int
	Position() (x, y float64)
	CanAttack() bool
}

// Target is anything an enemy may hunt. It can go inactive at any time.
type Target interface {
	ID() int
	Position() (x, y float64)
	Active() bool
}

// Alive reports a non-nil, active target.
func Alive(t Target) bool {
	return t != nil && t.Active()
}

// SelectTarget keeps current while it is alive, unless force is set.
// Otherwise it returns the alive candidate nearest selfTile by Manhattan
// tile distance, skipping self and breaking ties by lower id. It returns nil
// when nothing qualifies.
func SelectTarget(self int, selfTile board.Tile, current Target, candidates []Target, toTile func(x, y float64) board.Tile, force bool) Target {
	if !force && Alive(current) && current.ID() != self {
		return current
	}

	var best Target
	bestDist := 0
	for _, c := range candidates {
		if !Alive(c) || c.ID() == self {
			continue
		}
		d := toTile(c.Position()).Manhattan(selfTile)
		if best == nil || d < bestDist || (d == bestDist && c.ID() < best.ID()) {
			best, bestDist = c, d
		}
	}
	return best
}
