package system

import (
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// DefaultStep is one frame at 60 ticks per second.
const DefaultStep = 1.0 / 60.0

// PhysicsSystem keeps the Chipmunk space in sync with the world: it builds
// the space from the level on first use, creates and drops bodies, steps the
// simulation and copies positions back to transforms.
type PhysicsSystem struct {
	dt float64
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	if dt <= 0 {
		dt = DefaultStep
	}
	return &PhysicsSystem{dt: dt}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		b := levelBoard(w)
		if b == nil {
			return
		}
		pw = ecs.NewPhysicsWorld(b)
		w.SetPhysicsWorld(pw)
	}

	for _, e := range pw.Bodies() {
		if !ecs.IsAlive(w, e) || !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			pw.RemoveBody(e)
		}
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
		pw.EnsureBody(e, t, body)
	})

	pw.Step(ps.dt)

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		pos := body.Body.Position()
		t.X, t.Y = pos.X, pos.Y
	})
}
