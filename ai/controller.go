package ai

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/board"
	"github.com/milk9111/gridhunt/pathfind"
)

// ScriptLoader resolves a goal script name to its source.
type ScriptLoader func(name string) ([]byte, error)

// Controller runs the behaviour FSM for one enemy and turns each decision
// into a single action.
type Controller struct {
	id    int
	agent Agent
	board *board.Board
	marks *board.Marks
	rng   *rand.Rand

	arch     Archetype
	trans    Transitions
	interval int
	hit      HitPolicy
	goals    GoalMarker
	engine   pathfind.Engine
	scripts  ScriptLoader

	fixedGoals  bool
	fixedEngine bool

	state  State
	tick   int
	cached action.Action
	target Target
}

type Option func(*Controller)

// WithRand injects the random source. The default is a PCG seeded from the
// archetype seed and the enemy id.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithGoalMarker replaces the archetype's goal strategy.
func WithGoalMarker(g GoalMarker) Option {
	return func(c *Controller) {
		c.goals = g
		c.fixedGoals = g != nil
	}
}

// WithEngine replaces the archetype's search engine.
func WithEngine(e pathfind.Engine) Option {
	return func(c *Controller) {
		c.engine = e
		c.fixedEngine = e != nil
	}
}

// WithScriptLoader lets archetypes with a goal_script compile it.
func WithScriptLoader(l ScriptLoader) Option {
	return func(c *Controller) { c.scripts = l }
}

// WithSharedMarks makes the controller use the board's own Marks. Callers
// must then run controllers strictly one at a time.
func WithSharedMarks() Option {
	return func(c *Controller) { c.marks = c.board.Marks() }
}

func NewController(agent Agent, b *board.Board, a Archetype, opts ...Option) (*Controller, error) {
	if agent == nil {
		return nil, fmt.Errorf("ai: nil agent")
	}
	if b == nil {
		return nil, fmt.Errorf("ai: nil board")
	}
	c := &Controller{
		id:    agent.ID(),
		agent: agent,
		board: b,
		state: StateSpawn,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.marks == nil {
		c.marks = b.NewMarks()
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(a.Seed, uint64(c.id)))
	}
	if err := c.SetArchetype(a); err != nil {
		return nil, err
	}
	return c, nil
}

// SetArchetype swaps capabilities on a live controller. FSM state, tick and
// the cached action are kept.
func (c *Controller) SetArchetype(a Archetype) error {
	if err := a.Validate(); err != nil {
		return err
	}
	hit, err := NewHitPolicy(a.Hit)
	if err != nil {
		return err
	}

	engine := c.engine
	if !c.fixedEngine {
		if engine, err = pathfind.New(a.Search); err != nil {
			return fmt.Errorf("ai: archetype %s: %w", a.Name, err)
		}
	}

	goals := c.goals
	if !c.fixedGoals {
		var marker GoalMarker = NewGoals(a, c.rng)
		if a.GoalScript != "" {
			if c.scripts == nil {
				return fmt.Errorf("ai: archetype %s: goal script %s: no script loader", a.Name, a.GoalScript)
			}
			src, err := c.scripts(a.GoalScript)
			if err != nil {
				return fmt.Errorf("ai: archetype %s: %w", a.Name, err)
			}
			if marker, err = NewScriptedGoals(a.GoalScript, src, marker); err != nil {
				return err
			}
		}
		goals = marker
	}

	c.arch = a
	c.trans = a.Transitions()
	c.interval = a.Interval()
	c.hit = hit
	c.engine = engine
	c.goals = goals
	return nil
}

// Update advances one frame. The FSM, goal marking and search only run on
// decision ticks, (id + tick) mod K == 0; other frames reuse the cached
// move. The attack bit is evaluated on every call.
func (c *Controller) Update() action.Action {
	if !c.state.Valid() {
		c.state = StateSpawn
	}
	tile := c.Tile()

	if (c.id+c.tick)%c.interval == 0 {
		c.decide(tile)
	}
	c.tick++

	act := c.cached
	if c.state == StateAttack && c.canShootFrom(tile) {
		act |= action.Attack
	}
	return act
}

func (c *Controller) decide(tile board.Tile) {
	if !Alive(c.target) {
		c.target = nil
	}
	p, targetTile := c.perceive(tile)

	next := c.trans.Next(c.state, p, c.rng)
	if next != c.state && IsDebugEnabled() {
		slog.Debug("ai: state change",
			"enemy", c.id,
			"archetype", c.arch.Name,
			"from", c.state,
			"to", next,
			"tile", tile,
			"has_target", p.HasTarget,
			"distance", p.Distance,
			"can_hit", p.CanHit)
	}
	c.state = next

	c.marks.ClearMarks()
	c.goals.MarkGoals(c.marks, GoalInput{
		State:     c.state,
		Self:      tile,
		Target:    targetTile,
		HasTarget: p.HasTarget,
		Range:     c.arch.Range,
		Hit:       c.hit,
		Immobile:  c.arch.Immobile,
	})
	if ca, ok := c.engine.(pathfind.ChaseAware); ok {
		ca.SetChasing(c.state == StateChase || c.state == StateAttack)
	}
	c.cached = c.engine.FirstStep(c.board, c.marks, tile)

	if c.cached == action.NoAction && c.state == StateWander {
		if goal, ok := c.marks.Goal(); ok && goal != tile {
			if adv, ok := c.goals.(Advancer); ok {
				adv.Advance()
			}
		}
	}
}

func (c *Controller) perceive(tile board.Tile) (Perception, board.Tile) {
	if !Alive(c.target) {
		return Perception{}, board.Tile{}
	}
	tt := c.board.ToTile(c.target.Position())
	return Perception{
		HasTarget: true,
		Distance:  tile.Manhattan(tt),
		CanHit:    c.hit.CanHit(c.board, tile, tt, c.arch.Range),
	}, tt
}

// CanShootTarget reports a ready weapon and a target hittable from the
// enemy's current tile.
func (c *Controller) CanShootTarget() bool {
	return c.canShootFrom(c.Tile())
}

func (c *Controller) canShootFrom(tile board.Tile) bool {
	if !c.agent.CanAttack() || !Alive(c.target) {
		return false
	}
	tt := c.board.ToTile(c.target.Position())
	return c.hit.CanHit(c.board, tile, tt, c.arch.Range)
}

// Tile is the enemy's current board tile.
func (c *Controller) Tile() board.Tile {
	return c.board.ToTile(c.agent.Position())
}

func (c *Controller) ID() int { return c.id }

// State is the current FSM mode.
func (c *Controller) State() State { return c.state }

// Tick counts completed Update calls.
func (c *Controller) Tick() int { return c.tick }

// Cached is the movement chosen at the last decision tick.
func (c *Controller) Cached() action.Action { return c.cached }

func (c *Controller) Target() Target { return c.target }

func (c *Controller) Marks() *board.Marks { return c.marks }

func (c *Controller) Archetype() Archetype { return c.arch }

func (c *Controller) Engine() pathfind.Engine { return c.engine }

// SetTarget replaces the weak target link. nil clears it.
func (c *Controller) SetTarget(t Target) {
	c.target = t
}

// DecisionDue reports whether the next Update recomputes.
func (c *Controller) DecisionDue() bool {
	return (c.id+c.tick)%c.interval == 0
}

// DebugPath traces the full path to the last marked goal. It rewrites the
// visited marks, so only call it after Update for drawing.
func (c *Controller) DebugPath() []board.Tile {
	goal, ok := c.marks.Goal()
	if !ok {
		return nil
	}
	c.marks.ClearMarks()
	c.marks.SetGoal(goal.X, goal.Y)
	return c.engine.Trace(c.board, c.marks, c.Tile())
}
