package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/princeguard/sequence"
)

const stickDeadzone = 0.25

// pollInput reads keyboard and gamepads into one snapshot. Space is passed
// through held; the sequencer edge-triggers it.
func pollInput() sequence.Keys {
	keys := sequence.Keys{}

	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX++
	}
	spawn := ebiten.IsKeyPressed(ebiten.KeySpace)

	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		axis := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(axis) > stickDeadzone {
			moveX += math.Copysign(1, axis)
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			moveX--
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			moveX++
		}
		spawn = spawn || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	keys[sequence.KeyLeft] = moveX < 0
	keys[sequence.KeyRight] = moveX > 0
	keys[sequence.KeySpace] = spawn
	keys[sequence.KeyReset] = inpututil.IsKeyJustPressed(ebiten.KeyR)
	keys[sequence.KeyCopyLog] = inpututil.IsKeyJustPressed(ebiten.KeyF2)
	return keys
}
