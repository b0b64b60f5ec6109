package component

import (
	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/ai"
)

// AI links an enemy entity to its behaviour controller. Action holds the
// last decision for movement and combat to consume this frame.
type AI struct {
	Archetype  string
	Controller *ai.Controller
	Action     action.Action
	TargetID   int
}

var AIComponent = NewComponent[AI]()
