package ecs

import (
	"testing"

	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/ecs/component"
)

func TestActorViews(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	a := NewActor(w, e)

	if a.Active() != true {
		t.Fatalf("live entity without health should be active")
	}
	if a.CanAttack() {
		t.Fatalf("unarmed entity cannot attack")
	}

	_ = Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 10, Y: 20})
	if x, y := a.Position(); x != 10 || y != 20 {
		t.Fatalf("expected transform position, got %v,%v", x, y)
	}

	_ = Add(w, e, component.WeaponComponent.Kind(), &component.Weapon{Damage: 1})
	if !a.CanAttack() {
		t.Fatalf("armed entity should be ready")
	}
	_ = Add(w, e, component.CooldownComponent.Kind(), &component.Cooldown{Frames: 3})
	if a.CanAttack() {
		t.Fatalf("cooldown should block attacks")
	}

	_ = Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: 0, Max: 3})
	if a.Active() {
		t.Fatalf("defeated entity should be inactive")
	}

	DestroyEntity(w, e)
	if a.Active() || a.CanAttack() {
		t.Fatalf("destroyed entity should be inactive")
	}
	if a.ID() != e.ID() {
		t.Fatalf("id should survive destroy")
	}
}

func TestActorPrefersPhysicsBody(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld(board.New(4, 4))
	e := CreateEntity(w)
	tr := &component.Transform{X: 48, Y: 48}
	body := &component.PhysicsBody{}
	_ = Add(w, e, component.TransformComponent.Kind(), tr)
	_ = Add(w, e, component.PhysicsBodyComponent.Kind(), body)
	pw.EnsureBody(e, tr, body)

	body.Body.SetPosition(body.Body.Position().Add(body.Body.Position()))
	if x, _ := NewActor(w, e).Position(); x != 96 {
		t.Fatalf("expected body position 96, got %v", x)
	}
}

func TestNilActor(t *testing.T) {
	var a *Actor
	if a.ID() != 0 || a.Active() || a.CanAttack() {
		t.Fatalf("nil actor should be inert")
	}
	if x, y := a.Position(); x != 0 || y != 0 {
		t.Fatalf("nil actor position should be zero")
	}
}
