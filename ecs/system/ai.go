package system

import (
	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/ai"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// AISystem runs every enemy controller once per frame, in ascending entity
// id order, and stores the resulting action on the AI component.
type AISystem struct {
	debugPaths bool
}

func NewAISystem() *AISystem { return &AISystem{} }

// SetDebugPaths makes the system store each enemy's traced path on a
// DebugPath component for the overlay.
func (s *AISystem) SetDebugPaths(enabled bool) {
	s.debugPaths = enabled
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	b := levelBoard(w)
	if b == nil {
		return
	}

	players := ecs.Query(w, component.PlayerTagComponent.Kind())
	candidates := make([]ai.Target, 0, len(players))
	for _, p := range players {
		candidates = append(candidates, ecs.NewActor(w, p))
	}

	for _, e := range ecs.Query(w, component.AIComponent.Kind()) {
		brain, ok := ecs.Get(w, e, component.AIComponent.Kind())
		if !ok || brain.Controller == nil {
			continue
		}
		ctrl := brain.Controller

		target := ai.SelectTarget(ctrl.ID(), ctrl.Tile(), ctrl.Target(), candidates, b.ToTile, false)
		ctrl.SetTarget(target)

		brain.Action = ctrl.Update()
		brain.TargetID = 0
		if t := ctrl.Target(); t != nil {
			brain.TargetID = t.ID()
		}

		if s.debugPaths {
			_ = ecs.Add(w, e, component.DebugPathComponent.Kind(), &component.DebugPath{Tiles: ctrl.DebugPath()})
		}
	}
}

// targetEntity resolves the entity an enemy is hunting.
func targetEntity(brain *component.AI) (*ecs.Actor, bool) {
	if brain == nil || brain.Controller == nil {
		return nil, false
	}
	actor, ok := brain.Controller.Target().(*ecs.Actor)
	if !ok || actor == nil || !actor.Active() {
		return nil, false
	}
	return actor, true
}

// actionFor is the action an entity requested this frame, whether it came
// from an AI controller or from player input.
func actionFor(w *ecs.World, e ecs.Entity) action.Action {
	if brain, ok := ecs.Get(w, e, component.AIComponent.Kind()); ok {
		return brain.Action
	}
	if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
		return in.Action
	}
	return action.NoAction
}
