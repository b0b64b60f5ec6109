package ai

import (
	"errors"
	"fmt"

	"github.com/milk9111/gridhunt/pathfind"
)

const (
	defaultDecisionInterval  = 10
	defaultChaseDistance     = 9
	defaultSpawnWanderChance = 0.25
	defaultGiveUpChance      = 0.02
	defaultContinueChance    = 0.8
	defaultPatrolSize        = 3
)

// Tuning is the level-wide AI configuration every archetype starts from.
type Tuning struct {
	DecisionInterval  int     `yaml:"decision_interval"`
	ChaseDistance     int     `yaml:"chase_distance"`
	SpawnWanderChance float64 `yaml:"spawn_wander_chance"`
	GiveUpChance      float64 `yaml:"give_up_chance"`
	ContinueChance    float64 `yaml:"continue_chance"`
	PatrolSize        int     `yaml:"patrol_size"`
	Debug             bool    `yaml:"debug"`
}

func DefaultTuning() Tuning {
	return Tuning{
		DecisionInterval:  defaultDecisionInterval,
		ChaseDistance:     defaultChaseDistance,
		SpawnWanderChance: defaultSpawnWanderChance,
		GiveUpChance:      defaultGiveUpChance,
		ContinueChance:    defaultContinueChance,
		PatrolSize:        defaultPatrolSize,
	}
}

// Archetype is the capability descriptor that selects search, hit and
// patrol behaviour for one kind of enemy.
type Archetype struct {
	Name     string     `yaml:"name"`
	Search   string     `yaml:"search"`
	Hit      string     `yaml:"hit"`
	Range    int        `yaml:"range"`
	Immobile bool       `yaml:"immobile"`
	Patrol   PatrolKind `yaml:"patrol"`

	PatrolSize        int     `yaml:"patrol_size"`
	ContinueChance    float64 `yaml:"continue_chance"`
	DecisionInterval  int     `yaml:"decision_interval"`
	ChaseDistance     int     `yaml:"chase_distance"`
	SpawnWanderChance float64 `yaml:"spawn_wander_chance"`
	GiveUpChance      float64 `yaml:"give_up_chance"`

	// GoalScript names a tengo script that marks goals before the built-in
	// strategy gets a turn.
	GoalScript string `yaml:"goal_script"`
	Seed       uint64 `yaml:"seed"`
}

// NewArchetype returns a melee archetype seeded with t. Loaders unmarshal on
// top of it so absent YAML keys keep the tuning value.
func NewArchetype(name string, t Tuning) Archetype {
	return Archetype{
		Name:              name,
		Search:            pathfind.KindBFS,
		Hit:               HitMelee,
		Range:             1,
		Patrol:            PatrolSquare,
		PatrolSize:        t.PatrolSize,
		ContinueChance:    t.ContinueChance,
		DecisionInterval:  t.DecisionInterval,
		ChaseDistance:     t.ChaseDistance,
		SpawnWanderChance: t.SpawnWanderChance,
		GiveUpChance:      t.GiveUpChance,
	}
}

// Transitions extracts the FSM thresholds.
func (a Archetype) Transitions() Transitions {
	return Transitions{
		SpawnWanderChance: a.SpawnWanderChance,
		ChaseDistance:     a.ChaseDistance,
		GiveUpChance:      a.GiveUpChance,
	}
}

// Interval returns the decision cadence K, never less than 1.
func (a Archetype) Interval() int {
	if a.DecisionInterval <= 0 {
		return defaultDecisionInterval
	}
	return a.DecisionInterval
}

var errChance = errors.New("chance must be within [0, 1]")

// Validate checks names and ranges without building anything.
func (a Archetype) Validate() error {
	if a.Range < 0 {
		return fmt.Errorf("ai: archetype %s: negative range %d", a.Name, a.Range)
	}
	if _, err := pathfind.New(a.Search); err != nil {
		return fmt.Errorf("ai: archetype %s: %w", a.Name, err)
	}
	if _, err := NewHitPolicy(a.Hit); err != nil {
		return fmt.Errorf("ai: archetype %s: %w", a.Name, err)
	}
	if !a.Patrol.Valid() {
		return fmt.Errorf("ai: archetype %s: unknown patrol %q", a.Name, a.Patrol)
	}
	chances := []struct {
		name  string
		value float64
	}{
		{"continue_chance", a.ContinueChance},
		{"spawn_wander_chance", a.SpawnWanderChance},
		{"give_up_chance", a.GiveUpChance},
	}
	for _, c := range chances {
		if c.value < 0 || c.value > 1 {
			return fmt.Errorf("ai: archetype %s: %s: %w", a.Name, c.name, errChance)
		}
	}
	return nil
}
