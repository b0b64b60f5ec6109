package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/gridhunt/ai"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
	"github.com/milk9111/gridhunt/ecs/entity"
	"github.com/milk9111/gridhunt/ecs/render"
	"github.com/milk9111/gridhunt/ecs/system"
	"github.com/milk9111/gridhunt/levels"
	"github.com/milk9111/gridhunt/prefabs"
)

type Game struct {
	frames    int
	levelName string
	paused    bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	aiSystem  *system.AISystem
	overlay   *render.Overlay
	pauseUI   *ebitenui.UI

	watcher       *prefabs.Watcher
	reloads       chan ai.Archetype
	stopForward   context.CancelFunc
	forwardDone   chan struct{}
	width, height int
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	g := &Game{
		levelName: levelName,
		overlay:   render.NewOverlay(),
		reloads:   make(chan ai.Archetype, 16),
	}
	g.overlay.ShowPhysics = debug
	g.pauseUI = NewPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			slog.Warn("prefab watcher disabled", "error", err)
		} else {
			g.watcher = w
			g.startForwarding()
		}
	}

	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadLevel() error {
	lvl, err := levels.LoadLevelFromFS(g.levelName)
	if err != nil {
		return err
	}
	world := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(world, lvl); err != nil {
		return err
	}
	le, _ := ecs.First(world, component.LevelComponent.Kind())
	if loaded, ok := ecs.Get(world, le, component.LevelComponent.Kind()); ok {
		g.width, g.height = render.ScreenSize(loaded.Board)
	}

	g.aiSystem = system.NewAISystem()
	g.aiSystem.SetDebugPaths(g.overlay.ShowPaths)
	g.world = world
	g.scheduler = ecs.NewScheduler(
		NewInputSystem(),
		system.NewReloadSystem(g.reloads),
		g.aiSystem,
		system.NewMovementSystem(system.DefaultStep),
		system.NewPhysicsSystem(system.DefaultStep),
		system.NewCombatSystem(),
		system.NewHazardSystem(),
		system.NewCooldownSystem(),
	)
	g.frames = 0
	return nil
}

// startForwarding feeds watcher changes to ReloadSystem until Close.
func (g *Game) startForwarding() {
	ctx, cancel := context.WithCancel(context.Background())
	g.stopForward = cancel
	g.forwardDone = make(chan struct{})
	go func() {
		defer close(g.forwardDone)
		_ = g.watcher.Forward(ctx, g.reloads)
	}()
}

// Restart reloads the current level from scratch.
func (g *Game) Restart() {
	if err := g.loadLevel(); err != nil {
		slog.Error("restart failed", "level", g.levelName, "error", err)
		return
	}
	g.paused = false
}

func (g *Game) TogglePaths() {
	g.overlay.ShowPaths = !g.overlay.ShowPaths
	g.aiSystem.SetDebugPaths(g.overlay.ShowPaths)
}

func (g *Game) TogglePhysics() {
	g.overlay.ShowPhysics = !g.overlay.ShowPhysics
}

func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func (g *Game) Close() {
	if g.stopForward != nil {
		g.stopForward()
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if g.forwardDone != nil {
		<-g.forwardDone
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.TogglePaths()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.TogglePhysics()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Restart()
	}

	g.frames++
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.overlay.Draw(g.world, screen)

	status := fmt.Sprintf("%s  frame %d  FPS %.0f", g.levelName, g.frames, ebiten.ActualFPS())
	if p, ok := ecs.First(g.world, component.PlayerTagComponent.Kind()); ok && !ecs.NewActor(g.world, p).Active() {
		status += "  DEFEATED (R to restart)"
	} else if len(ecs.Query(g.world, component.EnemyTagComponent.Kind())) == 0 {
		status += "  CLEARED (R to restart)"
	}
	ebitenutil.DebugPrint(screen, status)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
