package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/gridhunt/ai"
	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// Overlay draws the board, each enemy's goal and path, and every actor.
// The world is y-up; the screen is y-down, so rows are flipped on draw.
type Overlay struct {
	ShowPaths   bool
	ShowPhysics bool
	ShowStates  bool
}

func NewOverlay() *Overlay {
	return &Overlay{ShowPaths: true, ShowStates: true}
}

// ScreenSize is the pixel size the overlay needs for b.
func ScreenSize(b *board.Board) (int, int) {
	if b == nil {
		return 0, 0
	}
	size := b.TileSize()
	return int(float64(b.Width()) * size), int(float64(b.Height()) * size)
}

func (o *Overlay) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	e, ok := ecs.First(w, component.LevelComponent.Kind())
	if !ok {
		return
	}
	lvl, _ := ecs.Get(w, e, component.LevelComponent.Kind())
	if lvl == nil || lvl.Board == nil {
		return
	}
	b := lvl.Board
	v := view{height: float64(b.Height()) * b.TileSize()}

	screen.Fill(colornames.Black)
	o.drawTiles(screen, b, v)
	if o.ShowPaths {
		o.drawPaths(w, screen, b, v)
	}
	o.drawActors(w, screen, b, v)
	if o.ShowPhysics {
		DrawPhysicsDebug(w.PhysicsWorld(), screen, v.height)
	}
}

type view struct {
	height float64
}

func (v view) point(x, y float64) (float32, float32) {
	return float32(x), float32(v.height - y)
}

// tileRect returns the screen rectangle of t, top-left first.
func (v view) tileRect(b *board.Board, t board.Tile) (x, y, w, h float32) {
	size := b.TileSize()
	sx, sy := v.point(float64(t.X)*size, float64(t.Y+1)*size)
	return sx, sy, float32(size), float32(size)
}

func tileColor(b *board.Board, x, y int) color.Color {
	switch {
	case b.IsBlocked(x, y):
		return colornames.Darkslategray
	case b.IsHazard(x, y):
		return colornames.Darkred
	case b.IsPower(x, y):
		return colornames.Goldenrod
	}
	return colornames.Dimgray
}

func (o *Overlay) drawTiles(screen *ebiten.Image, b *board.Board, v view) {
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			rx, ry, rw, rh := v.tileRect(b, board.Tile{X: x, Y: y})
			vector.FillRect(screen, rx, ry, rw, rh, tileColor(b, x, y), false)
			vector.StrokeRect(screen, rx, ry, rw, rh, 1, colornames.Black, false)
		}
	}
}

func (o *Overlay) drawPaths(w *ecs.World, screen *ebiten.Image, b *board.Board, v view) {
	ecs.ForEach(w, component.AIComponent.Kind(), func(e ecs.Entity, brain *component.AI) {
		if brain.Controller == nil {
			return
		}
		if goal, ok := brain.Controller.Marks().Goal(); ok {
			rx, ry, rw, rh := v.tileRect(b, goal)
			vector.StrokeRect(screen, rx+2, ry+2, rw-4, rh-4, 2, StateColor(brain.Controller.State()), false)
		}

		dp, ok := ecs.Get(w, e, component.DebugPathComponent.Kind())
		if !ok || len(dp.Tiles) < 2 {
			return
		}
		for i := 1; i < len(dp.Tiles); i++ {
			x1, y1 := v.point(b.TileCenter(dp.Tiles[i-1]))
			x2, y2 := v.point(b.TileCenter(dp.Tiles[i]))
			vector.StrokeLine(screen, x1, y1, x2, y2, 2, colornames.Lightgrey, true)
		}
	})
}

func (o *Overlay) drawActors(w *ecs.World, screen *ebiten.Image, b *board.Board, v view) {
	size := float32(b.TileSize() * 0.6)

	ecs.ForEach(w, component.PlayerTagComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag) {
		actor := ecs.NewActor(w, e)
		c := color.Color(colornames.Royalblue)
		if !actor.Active() {
			c = colornames.Gray
		}
		x, y := v.point(actor.Position())
		vector.FillRect(screen, x-size/2, y-size/2, size, size, c, false)
		o.drawHealth(w, e, screen, x, y-size/2-8)
	})

	ecs.ForEach(w, component.AIComponent.Kind(), func(e ecs.Entity, brain *component.AI) {
		actor := ecs.NewActor(w, e)
		x, y := v.point(actor.Position())
		state := ai.StateSpawn
		if brain.Controller != nil {
			state = brain.Controller.State()
		}
		vector.FillCircle(screen, x, y, size/2, StateColor(state), true)
		o.drawHealth(w, e, screen, x, y-size/2-8)
		if o.ShowStates {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s", brain.Archetype, state), int(x)-int(size), int(y)+int(size/2))
		}
	})
}

func (o *Overlay) drawHealth(w *ecs.World, e ecs.Entity, screen *ebiten.Image, cx, top float32) {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Max <= 0 {
		return
	}
	const width, height = 24, 3
	frac := float32(h.Current) / float32(h.Max)
	vector.FillRect(screen, cx-width/2, top, width, height, colornames.Darkred, false)
	vector.FillRect(screen, cx-width/2, top, width*frac, height, colornames.Limegreen, false)
}

// StateColor is the overlay colour of an FSM state.
func StateColor(s ai.State) color.Color {
	switch s {
	case ai.StateWander:
		return colornames.Mediumseagreen
	case ai.StateChase:
		return colornames.Orange
	case ai.StateAttack:
		return colornames.Crimson
	}
	return colornames.White
}
