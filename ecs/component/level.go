package component

import "github.com/milk9111/gridhunt/board"

// Level is the singleton carrying the navigation board of the loaded level.
type Level struct {
	Name  string
	Board *board.Board
}

var LevelComponent = NewComponent[Level]()

// DebugPath is the traced path drawn by the overlay.
type DebugPath struct {
	Tiles []board.Tile
}

var DebugPathComponent = NewComponent[DebugPath]()
