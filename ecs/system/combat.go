package system

import (
	"log/slog"

	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// CombatSystem resolves attack bits. An enemy hits the target its controller
// is hunting; a player hits every enemy on or next to its tile. Each hit
// starts the attacker's weapon cooldown.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem { return &CombatSystem{} }

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.AIComponent.Kind(), component.WeaponComponent.Kind(), func(e ecs.Entity, brain *component.AI, weapon *component.Weapon) {
		if !brain.Action.Has(action.Attack) || !ecs.NewActor(w, e).CanAttack() {
			return
		}
		target, ok := targetEntity(brain)
		if !ok {
			return
		}
		hit(w, target.Entity, weapon.Damage)
		startCooldown(w, e, weapon)
	})

	b := levelBoard(w)
	if b == nil {
		return
	}
	ecs.ForEach3(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), component.WeaponComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, in *component.Input, weapon *component.Weapon) {
		if !in.Action.Has(action.Attack) || !ecs.NewActor(w, e).CanAttack() {
			return
		}
		from := entityTile(w, e, b)
		struck := 0
		for _, enemy := range ecs.Query(w, component.EnemyTagComponent.Kind()) {
			if !ecs.NewActor(w, enemy).Active() || entityTile(w, enemy, b).Manhattan(from) > 1 {
				continue
			}
			hit(w, enemy, weapon.Damage)
			struck++
		}
		if struck > 0 {
			startCooldown(w, e, weapon)
		}
	})
}

func startCooldown(w *ecs.World, e ecs.Entity, weapon *component.Weapon) {
	if weapon.CooldownFrames <= 0 {
		return
	}
	_ = ecs.Add(w, e, component.CooldownComponent.Kind(), &component.Cooldown{Frames: weapon.CooldownFrames})
}

// hit applies damage and retires the entity once its health runs out.
// Players stay in the world, defeated, so the host can notice.
func hit(w *ecs.World, e ecs.Entity, damage int) {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Defeated() {
		return
	}
	remaining := h.Damage(damage)
	if remaining > 0 {
		return
	}
	slog.Debug("combat: entity defeated", "entity", e.String())
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		return
	}
	ecs.DestroyEntity(w, e)
}
