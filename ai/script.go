package ai

import (
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/gridhunt/board"
)

// ScriptedGoals runs a tengo script to pick the goal tile. The script reads
// state, self_x, self_y, target_x, target_y, has_target, range, width and
// height, may call is_safe(x, y), and assigns goal_x and goal_y. A result
// that is not a safe tile hands the decision to the fallback marker.
type ScriptedGoals struct {
	name     string
	compiled *tengo.Compiled
	fallback GoalMarker
	board    *board.Board
}

// NewScriptedGoals compiles src once. Each controller needs its own value
// because the compiled globals are per-run state.
func NewScriptedGoals(name string, src []byte, fallback GoalMarker) (*ScriptedGoals, error) {
	sg := &ScriptedGoals{name: name, fallback: fallback}

	script := tengo.NewScript(src)
	_ = script.Add("state", "")
	for _, v := range []string{"self_x", "self_y", "target_x", "target_y", "range", "width", "height", "goal_x", "goal_y"} {
		_ = script.Add(v, 0)
	}
	_ = script.Add("has_target", false)
	_ = script.Add("is_safe", &tengo.UserFunction{Name: "is_safe", Value: sg.isSafe})
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile goal script %s: %w", name, err)
	}
	sg.compiled = compiled
	return sg, nil
}

func (s *ScriptedGoals) isSafe(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	x, ok := tengo.ToInt(args[0])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "x", Expected: "int", Found: args[0].TypeName()}
	}
	y, ok := tengo.ToInt(args[1])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "y", Expected: "int", Found: args[1].TypeName()}
	}
	if s.board.IsSafeAt(x, y) {
		return tengo.TrueValue, nil
	}
	return tengo.FalseValue, nil
}

func (s *ScriptedGoals) MarkGoals(m *board.Marks, in GoalInput) {
	if m == nil {
		return
	}
	if in.Immobile {
		m.SetGoal(in.Self.X, in.Self.Y)
		EnsureGoal(m, in.Self)
		return
	}
	if goal, ok := s.run(m.Board(), in); ok {
		m.SetGoal(goal.X, goal.Y)
		return
	}
	if s.fallback != nil {
		s.fallback.MarkGoals(m, in)
		return
	}
	EnsureGoal(m, in.Self)
}

func (s *ScriptedGoals) run(b *board.Board, in GoalInput) (board.Tile, bool) {
	s.board = b
	values := map[string]any{
		"state":      in.State.String(),
		"self_x":     in.Self.X,
		"self_y":     in.Self.Y,
		"target_x":   in.Target.X,
		"target_y":   in.Target.Y,
		"has_target": in.HasTarget,
		"range":      in.Range,
		"width":      b.Width(),
		"height":     b.Height(),
		"goal_x":     -1,
		"goal_y":     -1,
	}
	for k, v := range values {
		if err := s.compiled.Set(k, v); err != nil {
			slog.Warn("ai: goal script set", "script", s.name, "var", k, "err", err)
			return board.Tile{}, false
		}
	}
	if err := s.compiled.Run(); err != nil {
		slog.Warn("ai: goal script run", "script", s.name, "err", err)
		return board.Tile{}, false
	}

	goal := board.Tile{X: s.compiled.Get("goal_x").Int(), Y: s.compiled.Get("goal_y").Int()}
	if !b.IsSafeAt(goal.X, goal.Y) {
		return board.Tile{}, false
	}
	return goal, true
}

func (s *ScriptedGoals) Advance() {
	if a, ok := s.fallback.(Advancer); ok {
		a.Advance()
	}
}
