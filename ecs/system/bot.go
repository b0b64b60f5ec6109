package system

import (
	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
	"github.com/milk9111/gridhunt/pathfind"
)

// BotSystem drives players when nobody is at the keyboard: walk toward the
// nearest enemy and attack once next to it.
type BotSystem struct {
	engine pathfind.Engine
	marks  *board.Marks
}

func NewBotSystem() *BotSystem {
	return &BotSystem{engine: pathfind.NewBFS()}
}

func (s *BotSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	b := levelBoard(w)
	if b == nil {
		return
	}
	if s.marks == nil || s.marks.Board() != b {
		s.marks = b.NewMarks()
	}

	enemies := ecs.Query(w, component.EnemyTagComponent.Kind())
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, in *component.Input) {
		in.Action = action.NoAction
		if !ecs.NewActor(w, e).Active() {
			return
		}
		from := entityTile(w, e, b)

		var target board.Tile
		best := -1
		for _, enemy := range enemies {
			if !ecs.NewActor(w, enemy).Active() {
				continue
			}
			t := entityTile(w, enemy, b)
			if d := t.Manhattan(from); best < 0 || d < best {
				target, best = t, d
			}
		}
		switch {
		case best < 0:
			return
		case best <= 1:
			in.Action = action.Attack
		default:
			s.marks.ClearMarks()
			s.marks.SetGoal(target.X, target.Y)
			in.Action = s.engine.FirstStep(b, s.marks, from)
		}
	})
}
