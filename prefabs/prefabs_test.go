package prefabs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/gridhunt/ai"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestLoadTuning(t *testing.T) {
	got, err := LoadTuning()
	require.NoError(t, err)
	assert.Equal(t, ai.DefaultTuning(), got)
}

func TestEnemyPrefabs(t *testing.T) {
	names := EnemyPrefabs()
	assert.Equal(t, []string{"flanker.yaml", "melee.yaml", "ranged.yaml", "sniper.yaml", "turret.yaml"}, names)

	for _, name := range names {
		a, err := LoadArchetype(name)
		require.NoError(t, err, name)
		assert.Equal(t, PrefabName(name), a.Name)
		assert.NoError(t, a.Validate())
	}
}

func TestArchetypeOverridesTuning(t *testing.T) {
	turret, err := LoadArchetype("turret")
	require.NoError(t, err)
	assert.True(t, turret.Immobile)
	assert.Equal(t, 5, turret.Interval())
	assert.Equal(t, 6, turret.Range)

	ranged, err := LoadArchetype("prefabs/ranged.yaml")
	require.NoError(t, err)
	assert.Equal(t, 9, ranged.ChaseDistance, "inherited from ai.yaml")
	assert.Equal(t, 4, ranged.PatrolSize)
	assert.Equal(t, ai.PatrolHorizontal, ranged.Patrol)
}

func TestLoadArchetypeRequiresAI(t *testing.T) {
	_, err := LoadArchetype("player")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ai component")
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)

	override := []byte("name: melee\ncomponents:\n  ai:\n    archetype:\n      range: 2\n      search: best_first\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "melee.yaml"), override, 0o644))

	a, err := LoadArchetype("melee")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Range)
	assert.Equal(t, "best_first", a.Search)

	_, ok := ModTime("melee")
	assert.True(t, ok)
	_, ok = ModTime("ranged")
	assert.False(t, ok)
}

func TestInvalidArchetypeRejected(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)

	bad := []byte("components:\n  ai:\n    archetype:\n      search: dijkstra\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "melee.yaml"), bad, 0o644))

	_, err := LoadArchetype("melee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: melee")
}

func TestFlankScriptCompiles(t *testing.T) {
	src, err := LoadScript("flank")
	require.NoError(t, err)
	_, err = ai.NewScriptedGoals("flank", src, nil)
	require.NoError(t, err)

	_, err = LoadScript("missing")
	require.Error(t, err)
}

func TestReload(t *testing.T) {
	cases := []struct {
		path string
		want []string
	}{
		{"prefabs/scripts/flank.tengo", []string{"flanker"}},
		{"prefabs/ai.yaml", []string{"flanker", "melee", "ranged", "sniper", "turret"}},
		{"prefabs/melee.yaml", []string{"melee"}},
		{"prefabs/player.yaml", nil},
		{"prefabs/readme.txt", nil},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			got, err := Reload(c.path)
			require.NoError(t, err)
			var names []string
			for _, a := range got {
				names = append(names, a.Name)
			}
			assert.Equal(t, c.want, names)
		})
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "melee.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: melee\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no watcher event")
	}

	require.NoError(t, w.Close())
	_, open := <-w.Events
	for open {
		_, open = <-w.Events
	}
}

func TestWatcherForwardsReloadedArchetypes(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan ai.Archetype)
	done := make(chan error, 1)
	go func() { done <- w.Forward(ctx, out) }()

	data, err := PrefabsFS.ReadFile("melee.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "melee.yaml"), data, 0o644))

	select {
	case a := <-out:
		assert.Equal(t, "melee", a.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("no archetype forwarded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("forward did not stop")
	}
}

func TestWatcherForwardStopsWhileBlockedOnSend(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan ai.Archetype)
	done := make(chan error, 1)
	go func() { done <- w.Forward(ctx, out) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte("decision_interval: 5\n"), 0o644))
	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("forward stayed blocked on an undrained channel")
	}
}
