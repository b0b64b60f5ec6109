package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/gridhunt/ai"
	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
	"github.com/milk9111/gridhunt/prefabs"
)

type buildContext struct {
	PrefabPath string
	Spec       prefabs.EntityBuildSpec
	Board      *board.Board
	Tile       board.Tile
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"enemy_tag":    addEnemyTag,
	"input":        addInput,
	"transform":    addTransform,
	"physics_body": addPhysicsBody,
	"mover":        addMover,
	"health":       addHealth,
	"weapon":       addWeapon,
	"hazard":       addHazard,
	"ai":           addAI,
}

// The controller reads its agent's position while it is built, so the
// transform goes first.
var componentBuildOrder = []string{
	"player_tag",
	"enemy_tag",
	"input",
	"transform",
	"physics_body",
	"mover",
	"health",
	"weapon",
	"hazard",
	"ai",
}

// BuildEntity creates an entity from a prefab, standing on tile at of b.
func BuildEntity(w *ecs.World, prefabPath string, b *board.Board, at board.Tile) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if b == nil {
		return 0, fmt.Errorf("build entity: board is nil")
	}
	if !b.IsSafeAt(at.X, at.Y) {
		return 0, fmt.Errorf("build entity: %q: spawn tile %s is not safe", prefabPath, at)
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Spec: spec, Board: b, Tile: at}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

// addTransform centres the entity on its spawn tile. Offsets in the spec are
// added on top.
func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	x, y := ctx.Board.TileCenter(ctx.Tile)
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X: x + spec.X,
		Y: y + spec.Y,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Width > ctx.Board.TileSize() || spec.Height > ctx.Board.TileSize() {
		return fmt.Errorf("physics body %gx%g does not fit a %g tile", spec.Width, spec.Height, ctx.Board.TileSize())
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Friction: spec.Friction,
	})
}

type moverSpec = prefabs.MoverComponentSpec

func addMover(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[moverSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mover spec: %w", err)
	}
	if spec.Speed < 0 {
		return fmt.Errorf("negative speed %g", spec.Speed)
	}
	return ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Speed: spec.Speed})
}

type healthSpec = prefabs.HealthComponentSpec

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[healthSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Max <= 0 {
		spec.Max = 1
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: spec.Max, Max: spec.Max})
}

type weaponSpec = prefabs.WeaponComponentSpec

func addWeapon(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[weaponSpec](raw)
	if err != nil {
		return fmt.Errorf("decode weapon spec: %w", err)
	}
	return ecs.Add(w, e, component.WeaponComponent.Kind(), &component.Weapon{
		Damage:         spec.Damage,
		CooldownFrames: spec.CooldownFrames,
	})
}

type hazardSpec = prefabs.HazardComponentSpec

func addHazard(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[hazardSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hazard spec: %w", err)
	}
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Damage:         spec.Damage,
		IntervalFrames: spec.IntervalFrames,
	})
}

func addAI(w *ecs.World, e ecs.Entity, _ any, ctx *buildContext) error {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return err
	}
	arch, err := prefabs.ArchetypeFromSpec(ctx.PrefabPath, ctx.Spec, tuning)
	if err != nil {
		return err
	}
	ctrl, err := ai.NewController(ecs.NewActor(w, e), ctx.Board, arch, ai.WithScriptLoader(prefabs.LoadScript))
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AIComponent.Kind(), &component.AI{
		Archetype:  arch.Name,
		Controller: ctrl,
	})
}
