package system

import (
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// HazardSystem damages entities standing on hazard tiles: once on entry and
// then every IntervalFrames while they stay.
type HazardSystem struct{}

func NewHazardSystem() *HazardSystem { return &HazardSystem{} }

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	b := levelBoard(w)
	if b == nil {
		return
	}

	ecs.ForEach(w, component.HazardComponent.Kind(), func(e ecs.Entity, hz *component.Hazard) {
		if !ecs.IsAlive(w, e) {
			return
		}
		t := entityTile(w, e, b)
		if !b.IsHazard(t.X, t.Y) {
			hz.Frames = 0
			return
		}
		if hz.Frames == 0 {
			hit(w, e, hz.Damage)
		}
		hz.Frames++
		if hz.IntervalFrames <= 0 || hz.Frames >= hz.IntervalFrames {
			hz.Frames = 0
		}
	})
}
