package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "spawn", StateSpawn.String())
	assert.Equal(t, "attack", StateAttack.String())
	assert.Equal(t, "invalid", State(42).String())
	assert.False(t, State(4).Valid())

	s, ok := ParseState("chase")
	require.True(t, ok)
	assert.Equal(t, StateChase, s)
	_, ok = ParseState("flee")
	assert.False(t, ok)
}

func TestNextStateIsTotal(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tr := Transitions{SpawnWanderChance: 0.5, ChaseDistance: 9, GiveUpChance: 0.5}

	for s := State(0); s < 8; s++ {
		for _, has := range []bool{false, true} {
			for _, hit := range []bool{false, true} {
				for _, dist := range []int{0, 1, 9, 10, 100} {
					p := Perception{HasTarget: has, Distance: dist, CanHit: hit}
					for i := 0; i < 20; i++ {
						got := tr.Next(s, p, rng)
						require.True(t, got.Valid(), "%v %+v -> %v", s, p, got)
						if !has {
							require.Equal(t, StateWander, got, "%v %+v", s, p)
						}
					}
					require.True(t, tr.Next(s, p, nil).Valid())
				}
			}
		}
	}
}

func TestNextStateTable(t *testing.T) {
	tr := Transitions{ChaseDistance: 9}
	target := func(dist int, hit bool) Perception {
		return Perception{HasTarget: true, Distance: dist, CanHit: hit}
	}

	cases := []struct {
		name string
		from State
		p    Perception
		want State
	}{
		{"spawn_no_target", StateSpawn, Perception{}, StateWander},
		{"spawn_hittable", StateSpawn, target(0, true), StateAttack},
		{"spawn_far", StateSpawn, target(30, false), StateChase},
		{"wander_near", StateWander, target(9, false), StateChase},
		{"wander_far", StateWander, target(10, false), StateWander},
		{"wander_far_but_hittable", StateWander, target(12, true), StateAttack},
		{"chase_lost", StateChase, Perception{HasTarget: false, Distance: 1}, StateWander},
		{"chase_to_attack", StateChase, target(1, true), StateAttack},
		{"chase_stays", StateChase, target(20, false), StateChase},
		{"attack_lost", StateAttack, Perception{}, StateWander},
		{"attack_out_of_reach", StateAttack, target(3, false), StateChase},
		{"attack_holds", StateAttack, target(1, true), StateAttack},
		{"invalid_treated_as_spawn", State(200), target(1, true), StateAttack},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tr.Next(tc.from, tc.p, nil))
		})
	}
}

func TestProbabilisticTransitions(t *testing.T) {
	p := Perception{HasTarget: true, Distance: 1, CanHit: true}

	always := Transitions{SpawnWanderChance: 1, ChaseDistance: 9, GiveUpChance: 1}
	rng := rand.New(rand.NewPCG(3, 4))
	assert.Equal(t, StateWander, always.Next(StateSpawn, p, rng))
	assert.Equal(t, StateWander, always.Next(StateAttack, p, rng))

	never := Transitions{ChaseDistance: 9}
	assert.Equal(t, StateAttack, never.Next(StateSpawn, p, rng))
	assert.Equal(t, StateAttack, never.Next(StateAttack, p, rng))
}

func TestNextStateSeededIsReproducible(t *testing.T) {
	p := Perception{HasTarget: true, Distance: 2, CanHit: true}
	run := func() []State {
		rng := rand.New(rand.NewPCG(99, 7))
		out := make([]State, 0, 50)
		s := StateSpawn
		for i := 0; i < 50; i++ {
			s = NextState(s, p, rng)
			out = append(out, s)
		}
		return out
	}
	assert.Equal(t, run(), run())
}
