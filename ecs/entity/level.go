package entity

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
	"github.com/milk9111/gridhunt/levels"
)

// LoadLevelToWorld creates the level singleton and every spawn of lvl.
// Players are spawned before enemies so enemy ids stay above player ids.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) error {
	if w == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}
	b, err := lvl.Board()
	if err != nil {
		return err
	}

	levelEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, levelEntity, component.LevelComponent.Kind(), &component.Level{Name: lvl.Name, Board: b}); err != nil {
		return err
	}
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(b))

	for _, s := range lvl.Spawns {
		if s.Prefab != "player" {
			continue
		}
		if _, err := NewPlayer(w, b, s.Tile()); err != nil {
			return fmt.Errorf("load level %s: %w", lvl.Name, err)
		}
	}
	enemies := 0
	for _, s := range lvl.Spawns {
		if s.Prefab == "player" {
			continue
		}
		if _, err := NewEnemy(w, s.Prefab, b, s.Tile()); err != nil {
			return fmt.Errorf("load level %s: %w", lvl.Name, err)
		}
		enemies++
	}

	slog.Info("level loaded", "level", lvl.Name, "width", b.Width(), "height", b.Height(), "enemies", enemies)
	return nil
}
