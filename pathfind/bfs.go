package pathfind

import (
	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/board"
)

// BFS expands tiles in FIFO order with neighbours tried left, right, up,
// down. Visited marks double as the closed set.
type BFS struct {
	arena arena
	queue []int
}

func NewBFS() *BFS {
	return &BFS{}
}

func (s *BFS) FirstStep(b *board.Board, m *board.Marks, from board.Tile) action.Action {
	idx := s.search(b, m, from)
	if idx < 0 {
		return action.NoAction
	}
	return s.arena.nodes[idx].first
}

func (s *BFS) Trace(b *board.Board, m *board.Marks, from board.Tile) []board.Tile {
	return s.arena.path(s.search(b, m, from))
}

func (s *BFS) search(b *board.Board, m *board.Marks, from board.Tile) int {
	if b == nil || !b.InBounds(from.X, from.Y) {
		return -1
	}
	m = resolveMarks(b, m)

	s.arena.reset()
	s.queue = s.queue[:0]

	s.queue = append(s.queue, s.arena.add(node{tile: from, parent: -1}))
	m.SetVisited(from.X, from.Y)

	for head := 0; head < len(s.queue); head++ {
		curIdx := s.queue[head]
		cur := s.arena.nodes[curIdx]
		if m.IsGoal(cur.tile.X, cur.tile.Y) {
			return curIdx
		}

		for _, move := range action.Moves {
			dx, dy := move.Delta()
			nx, ny := cur.tile.X+dx, cur.tile.Y+dy
			if !b.IsSafeAt(nx, ny) || m.IsVisited(nx, ny) {
				continue
			}
			m.SetVisited(nx, ny)
			s.queue = append(s.queue, s.arena.add(node{
				tile:   board.Tile{X: nx, Y: ny},
				g:      cur.g + 1,
				first:  childFirst(cur, curIdx, move),
				parent: curIdx,
			}))
		}
	}
	return -1
}
