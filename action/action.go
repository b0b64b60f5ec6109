package action

import "strings"

// Action is the per-frame command bit-mask handed to the gameplay loop.
type Action uint8

const (
	NoAction  Action = 0
	MoveLeft  Action = 1
	MoveRight Action = 2
	MoveUp    Action = 4
	MoveDown  Action = 8
	Attack    Action = 16
)

const moveMask = MoveLeft | MoveRight | MoveUp | MoveDown

// Moves lists the cardinal moves in the fixed expansion order used by search.
var Moves = [...]Action{MoveLeft, MoveRight, MoveUp, MoveDown}

// Has reports whether every bit of flag is set.
func (a Action) Has(flag Action) bool {
	return flag != 0 && a&flag == flag
}

// Movement strips everything but the movement bits.
func (a Action) Movement() Action {
	return a & moveMask
}

// Delta returns the tile offset for a single move. Up is +y.
func (a Action) Delta() (dx, dy int) {
	switch a.Movement() {
	case MoveLeft:
		return -1, 0
	case MoveRight:
		return 1, 0
	case MoveUp:
		return 0, 1
	case MoveDown:
		return 0, -1
	}
	return 0, 0
}

// Opposite returns the reverse move, or NoAction for non-moves.
func (a Action) Opposite() Action {
	switch a.Movement() {
	case MoveLeft:
		return MoveRight
	case MoveRight:
		return MoveLeft
	case MoveUp:
		return MoveDown
	case MoveDown:
		return MoveUp
	}
	return NoAction
}

// FromDelta maps a unit tile offset back to a move.
func FromDelta(dx, dy int) Action {
	switch {
	case dx < 0 && dy == 0:
		return MoveLeft
	case dx > 0 && dy == 0:
		return MoveRight
	case dx == 0 && dy > 0:
		return MoveUp
	case dx == 0 && dy < 0:
		return MoveDown
	}
	return NoAction
}

func (a Action) String() string {
	if a == NoAction {
		return "none"
	}
	parts := make([]string, 0, 2)
	if a.Has(MoveLeft) {
		parts = append(parts, "left")
	}
	if a.Has(MoveRight) {
		parts = append(parts, "right")
	}
	if a.Has(MoveUp) {
		parts = append(parts, "up")
	}
	if a.Has(MoveDown) {
		parts = append(parts, "down")
	}
	if a.Has(Attack) {
		parts = append(parts, "attack")
	}
	return strings.Join(parts, "|")
}
