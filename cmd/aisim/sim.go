package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/milk9111/gridhunt/ai"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
	"github.com/milk9111/gridhunt/ecs/entity"
	"github.com/milk9111/gridhunt/ecs/system"
	"github.com/milk9111/gridhunt/levels"
)

type outcome string

const (
	outcomeRunning  outcome = "running"
	outcomeCleared  outcome = "cleared"
	outcomeDefeated outcome = "defeated"
	outcomeTimeout  outcome = "timeout"
)

// sim is one headless run of a level: a bot-driven player against the
// level's enemies, stepped by the same systems the sandbox uses.
type sim struct {
	level     string
	world     *ecs.World
	scheduler *ecs.Scheduler
	reload    *system.ReloadSystem
	frame     int
}

func newSim(levelName string, reloads <-chan ai.Archetype) (*sim, error) {
	lvl, err := levels.LoadLevelFromFS(levelName)
	if err != nil {
		return nil, err
	}
	w := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return nil, err
	}
	reload := system.NewReloadSystem(reloads)
	scheduler := ecs.NewScheduler(
		system.NewBotSystem(),
		reload,
		system.NewAISystem(),
		system.NewMovementSystem(system.DefaultStep),
		system.NewPhysicsSystem(system.DefaultStep),
		system.NewCombatSystem(),
		system.NewHazardSystem(),
		system.NewCooldownSystem(),
	)
	return &sim{
		level:     lvl.Name,
		world:     w,
		scheduler: scheduler,
		reload:    reload,
	}, nil
}

func (s *sim) step() outcome {
	s.scheduler.Update(s.world)
	s.frame++
	return s.outcome()
}

func (s *sim) outcome() outcome {
	players := ecs.Query(s.world, component.PlayerTagComponent.Kind())
	alive := 0
	for _, p := range players {
		if ecs.NewActor(s.world, p).Active() {
			alive++
		}
	}
	if len(players) > 0 && alive == 0 {
		return outcomeDefeated
	}
	if len(ecs.Query(s.world, component.EnemyTagComponent.Kind())) == 0 {
		return outcomeCleared
	}
	return outcomeRunning
}

// run steps until the level ends, maxFrames pass or ctx is cancelled. A
// positive tps paces the loop in real time.
func (s *sim) run(ctx context.Context, maxFrames, tps, reportEvery int) (outcome, error) {
	var tick <-chan time.Time
	if tps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(tps))
		defer ticker.Stop()
		tick = ticker.C
	}

	for s.frame < maxFrames {
		if tick != nil {
			select {
			case <-ctx.Done():
				return outcomeRunning, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return outcomeRunning, err
		}

		if o := s.step(); o != outcomeRunning {
			return o, nil
		}
		if reportEvery > 0 && s.frame%reportEvery == 0 {
			s.report()
		}
	}
	return outcomeTimeout, nil
}

func (s *sim) report() {
	states := make(map[ai.State]int)
	ecs.ForEach(s.world, component.AIComponent.Kind(), func(_ ecs.Entity, brain *component.AI) {
		if brain.Controller != nil {
			states[brain.Controller.State()]++
		}
	})
	slog.Info("aisim: frame",
		"level", s.level,
		"frame", s.frame,
		"player_health", s.playerHealth(),
		"enemies", len(ecs.Query(s.world, component.EnemyTagComponent.Kind())),
		"wander", states[ai.StateWander],
		"chase", states[ai.StateChase],
		"attack", states[ai.StateAttack],
		"reloads", s.reload.Applied())
}

func (s *sim) playerHealth() int {
	p, ok := ecs.First(s.world, component.PlayerTagComponent.Kind())
	if !ok {
		return 0
	}
	if h, ok := ecs.Get(s.world, p, component.HealthComponent.Kind()); ok {
		return h.Current
	}
	return 0
}

// fingerprint summarises the world for determinism checks.
func (s *sim) fingerprint() string {
	out := fmt.Sprintf("frame=%d", s.frame)
	for _, e := range ecs.Entities(s.world) {
		if !ecs.Has(s.world, e, component.TransformComponent.Kind()) {
			continue
		}
		x, y := ecs.NewActor(s.world, e).Position()
		out += fmt.Sprintf(" %s@%.3f,%.3f", e, x, y)
		if h, ok := ecs.Get(s.world, e, component.HealthComponent.Kind()); ok {
			out += fmt.Sprintf("hp%d", h.Current)
		}
		if brain, ok := ecs.Get(s.world, e, component.AIComponent.Kind()); ok && brain.Controller != nil {
			out += ":" + brain.Controller.State().String()
		}
	}
	return out
}
