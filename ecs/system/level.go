package system

import (
	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// levelBoard returns the board of the level singleton, or nil before a level
// is loaded.
func levelBoard(w *ecs.World) *board.Board {
	e, ok := ecs.First(w, component.LevelComponent.Kind())
	if !ok {
		return nil
	}
	lvl, ok := ecs.Get(w, e, component.LevelComponent.Kind())
	if !ok || lvl == nil {
		return nil
	}
	return lvl.Board
}

// entityTile converts an entity's position to its board tile.
func entityTile(w *ecs.World, e ecs.Entity, b *board.Board) board.Tile {
	x, y := ecs.NewActor(w, e).Position()
	return b.ToTile(x, y)
}
