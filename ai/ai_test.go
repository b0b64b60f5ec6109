package ai

import (
	"github.com/milk9111/gridhunt/board"
)

// fakeActor is a test double for both Agent and Target. Positions are tile
// centres on a board with the default tile size.
type fakeActor struct {
	id     int
	x, y   float64
	ready  bool
	active bool
}

func newActor(id int, t board.Tile) *fakeActor {
	a := &fakeActor{id: id, ready: true, active: true}
	a.moveTo(t)
	return a
}

func (a *fakeActor) moveTo(t board.Tile) {
	a.x = (float64(t.X) + 0.5) * board.DefaultTileSize
	a.y = (float64(t.Y) + 0.5) * board.DefaultTileSize
}

func (a *fakeActor) ID() int                  { return a.id }
func (a *fakeActor) Position() (x, y float64) { return a.x, a.y }
func (a *fakeActor) CanAttack() bool          { return a.ready }
func (a *fakeActor) Active() bool             { return a.active }

// calmArchetype never fires probabilistic transitions.
func calmArchetype() Archetype {
	a := NewArchetype("calm", DefaultTuning())
	a.SpawnWanderChance = 0
	a.GiveUpChance = 0
	return a
}
