package board

import (
	"fmt"
	"math"
)

// DefaultTileSize is the world-space edge of one tile when a level does not
// say otherwise.
const DefaultTileSize = 32.0

// Tile is a grid coordinate.
type Tile struct {
	X int
	Y int
}

// Manhattan returns |dx| + |dy| between two tiles.
func (t Tile) Manhattan(o Tile) int {
	return abs(t.X-o.X) + abs(t.Y-o.Y)
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

type cell uint8

const (
	cellBlocked cell = 1 << iota
	cellHazard
	cellPower
)

// Board is the navigation grid for one level. Terrain flags are fixed at
// level load; goal and visited marks are transient and live in Marks.
type Board struct {
	width    int
	height   int
	tileSize float64
	cells    []cell

	marks *Marks
}

// New creates an open board. Non-positive dimensions are clamped to 1.
func New(width, height int) *Board {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	b := &Board{
		width:    width,
		height:   height,
		tileSize: DefaultTileSize,
		cells:    make([]cell, width*height),
	}
	b.marks = b.NewMarks()
	return b
}

// FromRows builds a board from text rows. Row 0 is the top of the map, so it
// becomes the highest y. '#' is blocked, '~' hazard, '*' power, anything
// else open.
func FromRows(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("board: no rows")
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("board: row %d has width %d, want %d", i, len(row), width)
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("board: empty rows")
	}
	b := New(width, len(rows))
	for i, row := range rows {
		y := len(rows) - 1 - i
		for x, ch := range row {
			switch ch {
			case '#':
				b.SetBlocked(x, y, true)
			case '~':
				b.SetHazard(x, y, true)
			case '*':
				b.SetPower(x, y, true)
			}
		}
	}
	return b, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// TileSize returns the world-space size of one tile.
func (b *Board) TileSize() float64 {
	if b == nil || b.tileSize <= 0 {
		return DefaultTileSize
	}
	return b.tileSize
}

// SetTileSize configures world-to-tile scaling. Non-positive sizes are ignored.
func (b *Board) SetTileSize(size float64) {
	if b == nil || size <= 0 {
		return
	}
	b.tileSize = size
}

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return b != nil && x >= 0 && y >= 0 && x < b.width && y < b.height
}

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

// IsSafeAt is the walkability predicate: in bounds and not blocked.
func (b *Board) IsSafeAt(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.cells[b.index(x, y)]&cellBlocked == 0
}

// IsBlocked reports a blocked in-bounds tile. Out of bounds is not blocked;
// callers wanting walkability use IsSafeAt.
func (b *Board) IsBlocked(x, y int) bool {
	return b.InBounds(x, y) && b.cells[b.index(x, y)]&cellBlocked != 0
}

func (b *Board) IsHazard(x, y int) bool {
	return b.InBounds(x, y) && b.cells[b.index(x, y)]&cellHazard != 0
}

func (b *Board) IsPower(x, y int) bool {
	return b.InBounds(x, y) && b.cells[b.index(x, y)]&cellPower != 0
}

func (b *Board) SetBlocked(x, y int, blocked bool) { b.setFlag(x, y, cellBlocked, blocked) }
func (b *Board) SetHazard(x, y int, hazard bool)   { b.setFlag(x, y, cellHazard, hazard) }
func (b *Board) SetPower(x, y int, power bool)     { b.setFlag(x, y, cellPower, power) }

func (b *Board) setFlag(x, y int, flag cell, on bool) {
	if !b.InBounds(x, y) {
		return
	}
	idx := b.index(x, y)
	if on {
		b.cells[idx] |= flag
	} else {
		b.cells[idx] &^= flag
	}
}

// ScreenToBoard converts a continuous world coordinate to a tile index.
func ScreenToBoard(coord, tileSize float64) int {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return int(math.Floor(coord / tileSize))
}

// ToTile converts a world position using the board's tile size.
func (b *Board) ToTile(x, y float64) Tile {
	size := b.TileSize()
	return Tile{X: ScreenToBoard(x, size), Y: ScreenToBoard(y, size)}
}

// TileCenter returns the world-space center of a tile.
func (b *Board) TileCenter(t Tile) (x, y float64) {
	size := b.TileSize()
	return (float64(t.X) + 0.5) * size, (float64(t.Y) + 0.5) * size
}

// SafeCount returns the number of walkable tiles.
func (b *Board) SafeCount() int {
	n := 0
	for _, c := range b.cells {
		if c&cellBlocked == 0 {
			n++
		}
	}
	return n
}

// NearestSafe scans rings of growing Chebyshev radius around t and returns
// the first safe tile by Manhattan distance, scanning rows bottom-up and
// columns left to right within a ring.
func (b *Board) NearestSafe(t Tile) (Tile, bool) {
	if b == nil {
		return Tile{}, false
	}
	if b.IsSafeAt(t.X, t.Y) {
		return t, true
	}
	maxR := b.width + b.height
	for r := 1; r <= maxR; r++ {
		best := Tile{}
		bestDist := math.MaxInt
		for y := t.Y - r; y <= t.Y+r; y++ {
			for x := t.X - r; x <= t.X+r; x++ {
				if abs(x-t.X) != r && abs(y-t.Y) != r {
					continue
				}
				if !b.IsSafeAt(x, y) {
					continue
				}
				d := abs(x-t.X) + abs(y-t.Y)
				if d < bestDist {
					bestDist = d
					best = Tile{X: x, Y: y}
				}
			}
		}
		if bestDist != math.MaxInt {
			return best, true
		}
	}
	return Tile{}, false
}

// The methods below operate on the board's own Marks. They exist for callers
// that share one scratch across enemies; such callers must run each
// clear/mark/search sequence to completion before starting the next.

func (b *Board) ClearMarks()             { b.marks.ClearMarks() }
func (b *Board) SetGoal(x, y int)        { b.marks.SetGoal(x, y) }
func (b *Board) IsGoal(x, y int) bool    { return b.marks.IsGoal(x, y) }
func (b *Board) SetVisited(x, y int)     { b.marks.SetVisited(x, y) }
func (b *Board) IsVisited(x, y int) bool { return b.marks.IsVisited(x, y) }
func (b *Board) Goal() (Tile, bool)      { return b.marks.Goal() }
func (b *Board) VisitedCount() int       { return b.marks.VisitedCount() }

// Marks returns the board's shared scratch.
func (b *Board) Marks() *Marks {
	return b.marks
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
