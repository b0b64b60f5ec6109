package system

import (
	"log/slog"

	"github.com/milk9111/gridhunt/ai"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// ReloadSystem applies archetypes delivered by the prefab watcher to every
// live controller using them. It only drains what is already queued, so a
// frame never blocks on the watcher.
type ReloadSystem struct {
	updates <-chan ai.Archetype
	applied int
}

func NewReloadSystem(updates <-chan ai.Archetype) *ReloadSystem {
	return &ReloadSystem{updates: updates}
}

// Applied counts controllers updated since the system was created.
func (s *ReloadSystem) Applied() int { return s.applied }

func (s *ReloadSystem) Update(w *ecs.World) {
	if w == nil || s.updates == nil {
		return
	}
	for {
		select {
		case a, ok := <-s.updates:
			if !ok {
				s.updates = nil
				return
			}
			s.apply(w, a)
		default:
			return
		}
	}
}

func (s *ReloadSystem) apply(w *ecs.World, a ai.Archetype) {
	ecs.ForEach(w, component.AIComponent.Kind(), func(e ecs.Entity, brain *component.AI) {
		if brain.Controller == nil || brain.Archetype != a.Name {
			return
		}
		if err := brain.Controller.SetArchetype(a); err != nil {
			slog.Warn("reload: archetype rejected", "archetype", a.Name, "entity", e.String(), "error", err)
			return
		}
		s.applied++
	})
	slog.Info("reload: archetype applied", "archetype", a.Name)
}
