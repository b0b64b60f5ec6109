package board

import "log/slog"

// NoGoal is the sentinel goal coordinate after ClearMarks.
var NoGoal = Tile{X: -1, Y: -1}

// Marks holds the goal pair and visited set for one clear/mark/search cycle.
// Visited marks are generation stamps, so clearing never touches the grid.
type Marks struct {
	board   *Board
	goal    Tile
	stamps  []uint32
	gen     uint32
	visited int
}

// NewMarks creates a scratch bound to b. Each controller owns one so searches
// never observe another enemy's marks.
func (b *Board) NewMarks() *Marks {
	m := &Marks{
		board:  b,
		goal:   NoGoal,
		stamps: make([]uint32, b.width*b.height),
		gen:    1,
	}
	return m
}

// Board returns the board these marks belong to.
func (m *Marks) Board() *Board {
	return m.board
}

// ClearMarks resets the goal to NoGoal and forgets every visited mark.
func (m *Marks) ClearMarks() {
	if m == nil {
		return
	}
	m.goal = NoGoal
	m.visited = 0
	m.gen++
	if m.gen == 0 {
		for i := range m.stamps {
			m.stamps[i] = 0
		}
		m.gen = 1
	}
}

// SetGoal records (x, y) as the goal when the tile is safe. Only one goal is
// retained; later calls overwrite earlier ones.
func (m *Marks) SetGoal(x, y int) {
	if m == nil {
		return
	}
	if !m.board.IsSafeAt(x, y) {
		slog.Debug("board: ignoring unsafe goal", "x", x, "y", y)
		return
	}
	m.goal = Tile{X: x, Y: y}
}

// IsGoal reports whether (x, y) is in bounds and equals the goal.
func (m *Marks) IsGoal(x, y int) bool {
	if m == nil || !m.board.InBounds(x, y) {
		return false
	}
	return m.goal.X == x && m.goal.Y == y
}

// Goal returns the current goal, if any.
func (m *Marks) Goal() (Tile, bool) {
	if m == nil || m.goal == NoGoal {
		return NoGoal, false
	}
	return m.goal, true
}

// SetVisited marks a safe tile visited.
func (m *Marks) SetVisited(x, y int) {
	if m == nil || !m.board.IsSafeAt(x, y) {
		return
	}
	idx := m.board.index(x, y)
	if m.stamps[idx] == m.gen {
		return
	}
	m.stamps[idx] = m.gen
	m.visited++
}

// IsVisited reports a visited mark on a safe tile.
func (m *Marks) IsVisited(x, y int) bool {
	if m == nil || !m.board.IsSafeAt(x, y) {
		return false
	}
	return m.stamps[m.board.index(x, y)] == m.gen
}

// VisitedCount returns how many tiles were marked since the last clear.
func (m *Marks) VisitedCount() int {
	if m == nil {
		return 0
	}
	return m.visited
}
