package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// MovementSystem turns the movement bits of each entity's action into a
// velocity. Entities without a physics body are moved directly.
type MovementSystem struct {
	dt float64
}

func NewMovementSystem(dt float64) *MovementSystem {
	if dt <= 0 {
		dt = DefaultStep
	}
	return &MovementSystem{dt: dt}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.MoverComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, mover *component.Mover, t *component.Transform) {
		vx, vy := velocity(actionFor(w, e), mover.Speed)

		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
			pb.Body.SetVelocity(vx, vy)
			return
		}
		t.X += vx * s.dt
		t.Y += vy * s.dt
	})
}

// velocity maps move bits to a y-up velocity. Opposing bits cancel.
func velocity(act action.Action, speed float64) (vx, vy float64) {
	v := cp.Vector{}
	if act.Has(action.MoveLeft) {
		v.X--
	}
	if act.Has(action.MoveRight) {
		v.X++
	}
	if act.Has(action.MoveUp) {
		v.Y++
	}
	if act.Has(action.MoveDown) {
		v.Y--
	}
	if v.X != 0 && v.Y != 0 {
		v = v.Normalize()
	}
	return v.X * speed, v.Y * speed
}
