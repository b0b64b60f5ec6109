package entity

import (
	"fmt"

	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

const PlayerPrefab = "player.yaml"

func NewPlayer(w *ecs.World, b *board.Board, at board.Tile) (ecs.Entity, error) {
	e, err := BuildEntity(w, PlayerPrefab, b, at)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: prefab %q has no player_tag", PlayerPrefab)
	}
	return e, nil
}
