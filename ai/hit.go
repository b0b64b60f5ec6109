package ai

import (
	"fmt"

	"github.com/milk9111/gridhunt/board"
)

const (
	HitMelee    = "melee"
	HitRanged   = "ranged"
	HitDiagonal = "diagonal"
)

// HitPolicy decides whether an attack from one tile reaches another.
type HitPolicy interface {
	CanHit(b *board.Board, from, target board.Tile, rng int) bool
}

// NewHitPolicy resolves a policy by name. An empty name is melee.
func NewHitPolicy(kind string) (HitPolicy, error) {
	switch kind {
	case "", HitMelee:
		return MeleeHit{}, nil
	case HitRanged:
		return RangedHit{}, nil
	case HitDiagonal:
		return DiagonalHit{}, nil
	default:
		return nil, fmt.Errorf("ai: unknown hit policy %q", kind)
	}
}

// MeleeHit reaches targets on the same row or column within range on each
// axis. A negative range never hits.
type MeleeHit struct{}

func (MeleeHit) CanHit(_ *board.Board, from, target board.Tile, rng int) bool {
	if rng < 0 {
		return false
	}
	dx, dy := abs(target.X-from.X), abs(target.Y-from.Y)
	return (dx == 0 || dy == 0) && dx <= rng && dy <= rng
}

// RangedHit is MeleeHit plus a clear line of fire: every tile strictly
// between shooter and target must be safe.
type RangedHit struct{}

func (RangedHit) CanHit(b *board.Board, from, target board.Tile, rng int) bool {
	if !(MeleeHit{}).CanHit(b, from, target, rng) {
		return false
	}
	return clearLine(b, from, target)
}

// DiagonalHit is RangedHit plus exact diagonals within range while the
// shooter stands on a power tile.
type DiagonalHit struct{}

func (DiagonalHit) CanHit(b *board.Board, from, target board.Tile, rng int) bool {
	if (RangedHit{}).CanHit(b, from, target, rng) {
		return true
	}
	if rng < 0 || !b.IsPower(from.X, from.Y) {
		return false
	}
	dx, dy := abs(target.X-from.X), abs(target.Y-from.Y)
	if dx != dy || dx > rng {
		return false
	}
	return clearLine(b, from, target)
}

// clearLine walks the straight or diagonal line from a to b, excluding both
// ends, and reports whether every tile on it is safe.
func clearLine(b *board.Board, from, to board.Tile) bool {
	sx, sy := sign(to.X-from.X), sign(to.Y-from.Y)
	x, y := from.X+sx, from.Y+sy
	for x != to.X || y != to.Y {
		if !b.IsSafeAt(x, y) {
			return false
		}
		x += sx
		y += sy
	}
	return true
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
