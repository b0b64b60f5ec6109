package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/gridhunt/ai"
	"github.com/milk9111/gridhunt/prefabs"
)

func TestSimIsDeterministic(t *testing.T) {
	run := func() string {
		s, err := newSim("arena", nil)
		require.NoError(t, err)
		for i := 0; i < 300; i++ {
			if s.step() != outcomeRunning {
				break
			}
		}
		return s.fingerprint()
	}
	assert.Equal(t, run(), run())
}

func TestSimRunStopsAtFrameLimit(t *testing.T) {
	s, err := newSim("corridors", nil)
	require.NoError(t, err)

	got, err := s.run(context.Background(), 5, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, outcomeTimeout, got)
	assert.Equal(t, 5, s.frame)
}

func TestSimRunHonoursCancel(t *testing.T) {
	s, err := newSim("corridors", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.run(ctx, 100, 0, 0)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.frame)
}

func TestSimAppliesReloads(t *testing.T) {
	reloads := make(chan ai.Archetype, 1)
	s, err := newSim("arena", reloads)
	require.NoError(t, err)

	melee, err := prefabs.LoadArchetype("melee")
	require.NoError(t, err)
	melee.Range = 2
	reloads <- melee

	s.step()
	assert.Equal(t, 1, s.reload.Applied())
}

func TestSimUnknownLevel(t *testing.T) {
	_, err := newSim("nowhere", nil)
	require.Error(t, err)
}
