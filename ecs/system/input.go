package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
)

// InputState is one frame of raw input. Cursor coordinates are in screen
// pixels.
type InputState struct {
	MoveX, MoveY      float64
	CursorX, CursorY  float64
	Fire, FirePressed bool
	Reset, HardReset  bool
}

type InputSystem struct {
	read func() InputState
}

// NewInputSystem reads the keyboard, mouse and first gamepad.
func NewInputSystem() *InputSystem {
	return &InputSystem{read: readEbitenInput}
}

// NewInputSystemFrom reads input from fn; tests feed scripted frames.
func NewInputSystemFrom(fn func() InputState) *InputSystem {
	return &InputSystem{read: fn}
}

func readEbitenInput() InputState {
	const stickDeadzone = 0.2

	var s InputState
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		s.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		s.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		s.MoveY += 1
	}
	cx, cy := ebiten.CursorPosition()
	s.CursorX, s.CursorY = float64(cx), float64(cy)
	s.Fire = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.FirePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
		alt := ebiten.IsKeyPressed(ebiten.KeyAlt)
		s.Reset = true
		s.HardReset = ctrl && alt
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			s.MoveX, s.MoveY = lx, ly
		}
		s.Fire = s.Fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		s.FirePressed = s.FirePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		s.Reset = s.Reset || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}
	return s
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.read == nil {
		return
	}
	s := i.read()

	moveX, moveY := s.MoveX, s.MoveY
	if l := math.Hypot(moveX, moveY); l > 1 {
		moveX, moveY = moveX/l, moveY/l
	}

	aimX, aimY := s.CursorX, s.CursorY
	if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
		cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
		zoom := 1.0
		if cam != nil && cam.Zoom > 0 {
			zoom = cam.Zoom
		}
		if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
			aimX = t.X + s.CursorX/zoom
			aimY = t.Y + s.CursorY/zoom
		}
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
		input.AimX = aimX
		input.AimY = aimY
		input.Fire = s.Fire
		input.FirePressed = s.FirePressed
		input.Reset = s.Reset
		input.HardReset = s.HardReset
	})
}
