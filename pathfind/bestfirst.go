package pathfind

import (
	"container/heap"

	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/board"
)

const stepCost = 10

// BestFirst is a cost-guided search: f = g + h with step cost 10 and a
// Manhattan heuristic scaled by the same factor. Tiles are closed when
// popped, so a tile may sit in the frontier more than once.
type BestFirst struct {
	// PreferLongAxis expands along the axis with the larger remaining
	// distance to the goal first, which changes tie-breaks only. It is
	// always on when set and otherwise follows SetChasing.
	PreferLongAxis bool

	chasing bool

	arena arena
	open  frontier
}

func NewBestFirst() *BestFirst {
	return &BestFirst{}
}

// SetChasing turns the long-axis preference on for pursuit decisions.
func (s *BestFirst) SetChasing(chasing bool) {
	s.chasing = chasing
}

// Chasing reports the last value passed to SetChasing.
func (s *BestFirst) Chasing() bool { return s.chasing }

func (s *BestFirst) FirstStep(b *board.Board, m *board.Marks, from board.Tile) action.Action {
	idx := s.search(b, m, from)
	if idx < 0 {
		return action.NoAction
	}
	return s.arena.nodes[idx].first
}

func (s *BestFirst) Trace(b *board.Board, m *board.Marks, from board.Tile) []board.Tile {
	return s.arena.path(s.search(b, m, from))
}

func (s *BestFirst) search(b *board.Board, m *board.Marks, from board.Tile) int {
	if b == nil || !b.InBounds(from.X, from.Y) {
		return -1
	}
	m = resolveMarks(b, m)
	goal, hasGoal := m.Goal()

	h := func(t board.Tile) int {
		if !hasGoal {
			return 0
		}
		return t.Manhattan(goal) * stepCost
	}

	s.arena.reset()
	s.open.arena = &s.arena
	s.open.items = s.open.items[:0]
	heap.Push(&s.open, s.arena.add(node{tile: from, h: h(from), parent: -1}))

	var moves [4]action.Action
	for s.open.Len() > 0 {
		curIdx := heap.Pop(&s.open).(int)
		cur := s.arena.nodes[curIdx]
		if m.IsVisited(cur.tile.X, cur.tile.Y) {
			continue
		}
		m.SetVisited(cur.tile.X, cur.tile.Y)

		if m.IsGoal(cur.tile.X, cur.tile.Y) {
			return curIdx
		}

		for _, move := range s.order(&moves, cur.tile, goal, hasGoal) {
			dx, dy := move.Delta()
			next := board.Tile{X: cur.tile.X + dx, Y: cur.tile.Y + dy}
			if !b.IsSafeAt(next.X, next.Y) || m.IsVisited(next.X, next.Y) {
				continue
			}
			heap.Push(&s.open, s.arena.add(node{
				tile:   next,
				g:      cur.g + stepCost,
				h:      h(next),
				first:  childFirst(cur, curIdx, move),
				parent: curIdx,
			}))
		}
	}
	return -1
}

// order fills buf with the neighbour expansion order for t.
func (s *BestFirst) order(buf *[4]action.Action, t, goal board.Tile, hasGoal bool) []action.Action {
	*buf = action.Moves
	if !(s.PreferLongAxis || s.chasing) || !hasGoal {
		return buf[:]
	}
	dx, dy := goal.X-t.X, goal.Y-t.Y
	horiz := [2]action.Action{action.MoveLeft, action.MoveRight}
	if dx > 0 {
		horiz = [2]action.Action{action.MoveRight, action.MoveLeft}
	}
	vert := [2]action.Action{action.MoveUp, action.MoveDown}
	if dy < 0 {
		vert = [2]action.Action{action.MoveDown, action.MoveUp}
	}
	if abs(dx) >= abs(dy) {
		*buf = [4]action.Action{horiz[0], horiz[1], vert[0], vert[1]}
	} else {
		*buf = [4]action.Action{vert[0], vert[1], horiz[0], horiz[1]}
	}
	return buf[:]
}

// frontier is a min-heap of arena indices ordered by f, then h, then
// insertion sequence.
type frontier struct {
	arena *arena
	items []int
}

func (f frontier) Len() int { return len(f.items) }

func (f frontier) Less(i, j int) bool {
	a, b := f.arena.nodes[f.items[i]], f.arena.nodes[f.items[j]]
	fa, fb := a.g+a.h, b.g+b.h
	if fa != fb {
		return fa < fb
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (f frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) {
	f.items = append(f.items, x.(int))
}

func (f *frontier) Pop() any {
	n := len(f.items)
	item := f.items[n-1]
	f.items = f.items[:n-1]
	return item
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
