package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/milk9111/gridhunt/board"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a top-down arena stored as JSON. Rows are drawn top to bottom:
// '#' blocked, '~' hazard, '*' power tile, anything else open floor.
type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	TileSize float64  `json:"tile_size"`
	Rows     []string `json:"rows"`
	Spawns   []Spawn  `json:"spawns"`
}

// Spawn places one prefab on a board tile. Y grows upward, so y=0 is the
// bottom row.
type Spawn struct {
	Prefab string `json:"prefab"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

func (s Spawn) Tile() board.Tile {
	return board.Tile{X: s.X, Y: s.Y}
}

func LoadLevelFromFS(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(name, data)
}

func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, ".json")
	}
	return &lvl, nil
}

// Names lists the embedded levels without extension.
func Names() []string {
	files, _ := fs.Glob(LevelsFS, "*.json")
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(f, ".json"))
	}
	sort.Strings(names)
	return names
}

// Board builds the navigation board and checks that the declared size
// matches the rows and that every spawn stands on a safe tile.
func (l *Level) Board() (*board.Board, error) {
	b, err := board.FromRows(l.Rows)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.Name, err)
	}
	if (l.Width != 0 && l.Width != b.Width()) || (l.Height != 0 && l.Height != b.Height()) {
		return nil, fmt.Errorf("levels: %s: declared %dx%d, rows are %dx%d", l.Name, l.Width, l.Height, b.Width(), b.Height())
	}
	b.SetTileSize(l.TileSize)
	for _, s := range l.Spawns {
		if !b.IsSafeAt(s.X, s.Y) {
			return nil, fmt.Errorf("levels: %s: spawn %s at %s is not a safe tile", l.Name, s.Prefab, s.Tile())
		}
	}
	return b, nil
}
