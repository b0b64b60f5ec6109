// Package pathfind answers one question for an enemy: which single step from
// its tile leads toward the goal currently marked on its Marks.
package pathfind

import (
	"errors"
	"fmt"

	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/board"
)

const (
	KindBFS       = "bfs"
	KindBestFirst = "best_first"
	// KindBestFirstLongAxis is best-first with PreferLongAxis set, so the
	// preference also applies outside pursuit.
	KindBestFirstLongAxis = "best_first_long_axis"
)

var ErrUnknownEngine = errors.New("pathfind: unknown engine")

// Engine searches from a start tile to the goal held by m. Engines reuse an
// internal node arena, so one Engine must not be shared between goroutines.
type Engine interface {
	// FirstStep returns the first move of a path to the goal, or NoAction
	// when the start is already the goal or no goal is reachable.
	FirstStep(b *board.Board, m *board.Marks, from board.Tile) action.Action
	// Trace returns the whole path, start first, for debug drawing.
	Trace(b *board.Board, m *board.Marks, from board.Tile) []board.Tile
}

// ChaseAware is implemented by engines whose tie-breaks change while the
// enemy pursues a target.
type ChaseAware interface {
	SetChasing(chasing bool)
}

// New returns the engine registered under kind. An empty kind selects BFS.
func New(kind string) (Engine, error) {
	switch kind {
	case "", KindBFS:
		return NewBFS(), nil
	case KindBestFirst:
		return NewBestFirst(), nil
	case KindBestFirstLongAxis:
		bf := NewBestFirst()
		bf.PreferLongAxis = true
		return bf, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
}

type node struct {
	tile   board.Tile
	g      int
	h      int
	first  action.Action
	parent int
	seq    int
}

// arena holds search nodes across calls; reset keeps the backing array.
type arena struct {
	nodes []node
}

func (a *arena) reset() {
	a.nodes = a.nodes[:0]
}

func (a *arena) add(n node) int {
	n.seq = len(a.nodes)
	a.nodes = append(a.nodes, n)
	return n.seq
}

// path walks parent links back from idx and returns tiles start first.
func (a *arena) path(idx int) []board.Tile {
	if idx < 0 {
		return nil
	}
	var out []board.Tile
	for i := idx; i >= 0; i = a.nodes[i].parent {
		out = append(out, a.nodes[i].tile)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// childFirst propagates the first action from parent to child. Children of
// the start node take the move that reached them.
func childFirst(parent node, parentIdx int, move action.Action) action.Action {
	if parentIdx == 0 {
		return move
	}
	return parent.first
}

func resolveMarks(b *board.Board, m *board.Marks) *board.Marks {
	if m != nil {
		return m
	}
	return b.Marks()
}
