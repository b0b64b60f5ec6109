package entity

import (
	"fmt"

	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// NewEnemy builds an enemy prefab. The prefab must carry both the enemy tag
// and an ai component.
func NewEnemy(w *ecs.World, prefab string, b *board.Board, at board.Tile) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab, b, at)
	if err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	if !ecs.Has(w, e, component.EnemyTagComponent.Kind()) || !ecs.Has(w, e, component.AIComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("enemy: prefab %q is not an enemy", prefab)
	}
	return e, nil
}
