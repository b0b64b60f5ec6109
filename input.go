package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/gridhunt/action"
	"github.com/milk9111/gridhunt/ecs"
	"github.com/milk9111/gridhunt/ecs/component"
)

// InputSystem maps keyboard and the first gamepad onto the player's action.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	const stickDeadzone = 0.3

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	attack := inpututil.IsKeyJustPressed(ebiten.KeySpace)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(x) > stickDeadzone {
			left, right = left || x < 0, right || x > 0
		}
		// Stick y is screen-down; the world is y-up.
		if math.Abs(y) > stickDeadzone {
			up, down = up || y < 0, down || y > 0
		}
		attack = attack || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	act := action.NoAction
	if left {
		act |= action.MoveLeft
	}
	if right {
		act |= action.MoveRight
	}
	if up {
		act |= action.MoveUp
	}
	if down {
		act |= action.MoveDown
	}
	if attack {
		act |= action.Attack
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, in *component.Input) {
		in.Action = act
	})
}
