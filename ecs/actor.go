package ecs

import (
	"github.com/milk9111/gridhunt/ecs/component"
)

// Actor adapts an entity to the AI's Agent and Target views. It holds the
// handle, not the components, so a destroyed entity reads as inactive.
type Actor struct {
	World  *World
	Entity Entity
}

func NewActor(w *World, e Entity) *Actor {
	return &Actor{World: w, Entity: e}
}

func (a *Actor) ID() int {
	if a == nil {
		return 0
	}
	return a.Entity.ID()
}

// Position prefers the live physics body, then the transform.
func (a *Actor) Position() (x, y float64) {
	if a == nil {
		return 0, 0
	}
	if pb, ok := Get(a.World, a.Entity, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pos := pb.Body.Position()
		return pos.X, pos.Y
	}
	if t, ok := Get(a.World, a.Entity, component.TransformComponent.Kind()); ok {
		return t.X, t.Y
	}
	return 0, 0
}

// CanAttack is true when the entity is armed and off cooldown.
func (a *Actor) CanAttack() bool {
	if a == nil || !IsAlive(a.World, a.Entity) {
		return false
	}
	if !Has(a.World, a.Entity, component.WeaponComponent.Kind()) {
		return false
	}
	return !Has(a.World, a.Entity, component.CooldownComponent.Kind())
}

// Active is true while the entity lives and, if it has health, is not
// defeated.
func (a *Actor) Active() bool {
	if a == nil || !IsAlive(a.World, a.Entity) {
		return false
	}
	if h, ok := Get(a.World, a.Entity, component.HealthComponent.Kind()); ok {
		return !h.Defeated()
	}
	return true
}
