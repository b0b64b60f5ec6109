package ai

import "math/rand/v2"

// State is the behavioural mode of one enemy.
type State uint8

const (
	StateSpawn State = iota
	StateWander
	StateChase
	StateAttack

	stateCount
)

var stateNames = [...]string{
	StateSpawn:  "spawn",
	StateWander: "wander",
	StateChase:  "chase",
	StateAttack: "attack",
}

// Valid reports whether s is one of the four modes.
func (s State) Valid() bool {
	return s < stateCount
}

func (s State) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return stateNames[s]
}

// ParseState maps a lower-case name back to a State.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return StateSpawn, false
}

// Perception is everything the transition function looks at. Distance is the
// Manhattan tile distance to the target and is ignored without a target.
type Perception struct {
	HasTarget bool
	Distance  int
	CanHit    bool
}

// Transitions holds the tunable thresholds of the behaviour FSM.
type Transitions struct {
	SpawnWanderChance float64
	ChaseDistance     int
	GiveUpChance      float64
}

// DefaultTransitions returns the stock thresholds.
func DefaultTransitions() Transitions {
	return Transitions{
		SpawnWanderChance: defaultSpawnWanderChance,
		ChaseDistance:     defaultChaseDistance,
		GiveUpChance:      defaultGiveUpChance,
	}
}

// NextState applies DefaultTransitions.
func NextState(state State, p Perception, rng *rand.Rand) State {
	return DefaultTransitions().Next(state, p, rng)
}

// Next is total: every input yields one of the four valid states. A nil rng
// never fires a probabilistic transition.
func (t Transitions) Next(state State, p Perception, rng *rand.Rand) State {
	if !state.Valid() {
		state = StateSpawn
	}
	engage := StateChase
	if p.CanHit {
		engage = StateAttack
	}

	switch state {
	case StateSpawn:
		if !p.HasTarget || roll(rng, t.SpawnWanderChance) {
			return StateWander
		}
		return engage
	case StateWander:
		if p.HasTarget && (p.Distance <= t.ChaseDistance || p.CanHit) {
			return engage
		}
		return StateWander
	case StateChase:
		if !p.HasTarget {
			return StateWander
		}
		return engage
	case StateAttack:
		if !p.HasTarget || roll(rng, t.GiveUpChance) {
			return StateWander
		}
		return engage
	}
	return StateWander
}

func roll(rng *rand.Rand, chance float64) bool {
	if rng == nil || chance <= 0 {
		return false
	}
	return rng.Float64() < chance
}
