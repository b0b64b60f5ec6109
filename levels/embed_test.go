package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/gridhunt/board"
)

func TestEmbeddedLevelsBuild(t *testing.T) {
	names := Names()
	require.Equal(t, []string{"arena", "corridors"}, names)

	for _, name := range names {
		lvl, err := LoadLevelFromFS(name)
		require.NoError(t, err, name)
		b, err := lvl.Board()
		require.NoError(t, err, name)
		assert.Equal(t, lvl.Width, b.Width())
		assert.Equal(t, lvl.Height, b.Height())
		assert.Equal(t, lvl.TileSize, b.TileSize())
		assert.NotEmpty(t, lvl.Spawns)
	}
}

func TestArenaLayout(t *testing.T) {
	lvl, err := LoadLevelFromFS("arena.json")
	require.NoError(t, err)
	b, err := lvl.Board()
	require.NoError(t, err)

	assert.True(t, b.IsBlocked(0, 0))
	assert.True(t, b.IsPower(1, 1), "bottom-left power tile")
	assert.True(t, b.IsPower(12, 8), "top-right power tile")
	assert.True(t, b.IsHazard(3, 6))
	assert.True(t, b.IsSafeAt(3, 6), "hazards are walkable")

	assert.Equal(t, "player", lvl.Spawns[0].Prefab)
	assert.Equal(t, board.Tile{X: 6, Y: 4}, lvl.Spawns[0].Tile())
}

func TestLevelErrors(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{"bad_json", `{"rows": [`, "levels: unmarshal"},
		{"no_rows", `{"rows": []}`, "board: no rows"},
		{"size_mismatch", `{"width": 4, "height": 1, "rows": ["..."]}`, "declared 4x1"},
		{"spawn_in_wall", `{"rows": ["#."], "spawns": [{"prefab": "melee", "x": 0, "y": 0}]}`, "not a safe tile"},
		{"spawn_off_board", `{"rows": [".."], "spawns": [{"prefab": "melee", "x": 5, "y": 0}]}`, "not a safe tile"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lvl, err := Parse(c.name+".json", []byte(c.json))
			if err == nil {
				_, err = lvl.Board()
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestMissingLevel(t *testing.T) {
	_, err := LoadLevelFromFS("nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "levels: read nowhere.json")
}
