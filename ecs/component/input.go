package component

import "github.com/milk9111/gridhunt/action"

// Input is the player's requested action for this frame, written by
// whatever drives the player: keyboard in the sandbox, a bot in aisim.
type Input struct {
	Action action.Action
}

var InputComponent = NewComponent[Input]()
