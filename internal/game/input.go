package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"wolfcast/internal/config"
	"wolfcast/internal/game/keytracker"
	"wolfcast/internal/player"
)

// mouseMaxRel caps the per-tick mouse movement used for looking around.
const mouseMaxRel = 40

// KeyState reports whether a key is held.
type KeyState func(ebiten.Key) bool

// InputHandler samples the keyboard and mouse once per tick.
type InputHandler struct {
	cfg     config.MovementConfig
	pressed KeyState
	keys    *keytracker.KeyStateTracker

	mouseX, mouseY int
	mouseReady     bool
}

// NewInputHandler creates an input handler reading ebiten's input state.
func NewInputHandler(cfg config.MovementConfig) *InputHandler {
	return newInputHandler(cfg, ebiten.IsKeyPressed)
}

func newInputHandler(cfg config.MovementConfig, pressed KeyState) *InputHandler {
	return &InputHandler{
		cfg:     cfg,
		pressed: pressed,
		keys: keytracker.NewWithSource(keytracker.PressedFunc(pressed),
			ebiten.KeyF12, ebiten.KeyTab, ebiten.KeyEscape),
	}
}

// Sample reads the held movement keys. W/S or Up/Down move, A/D strafe,
// Left/Right (or Q/E) turn.
func (ih *InputHandler) Sample() player.Input {
	ih.keys.Update()

	var in player.Input
	if ih.anyPressed(ebiten.KeyW, ebiten.KeyUp) {
		in.Forward++
	}
	if ih.anyPressed(ebiten.KeyS, ebiten.KeyDown) {
		in.Forward--
	}
	if ih.anyPressed(ebiten.KeyD) {
		in.Strafe++
	}
	if ih.anyPressed(ebiten.KeyA) {
		in.Strafe--
	}
	if ih.anyPressed(ebiten.KeyRight, ebiten.KeyE) {
		in.Turn++
	}
	if ih.anyPressed(ebiten.KeyLeft, ebiten.KeyQ) {
		in.Turn--
	}
	return in
}

// MouseLook converts the cursor movement since the last call into a turn,
// in radians, for a tick of dt seconds.
func (ih *InputHandler) MouseLook(x, y int, dt float64) float64 {
	if !ih.cfg.MouseLook {
		return 0
	}
	if !ih.mouseReady {
		ih.mouseX, ih.mouseY, ih.mouseReady = x, y, true
		return 0
	}
	rel := x - ih.mouseX
	ih.mouseX, ih.mouseY = x, y
	if rel > mouseMaxRel {
		rel = mouseMaxRel
	} else if rel < -mouseMaxRel {
		rel = -mouseMaxRel
	}
	// Sensitivity is per pixel per millisecond
	return float64(rel) * ih.cfg.MouseSensitivity * dt * 1000
}

// ScreenshotRequested reports an F12 press in the last Sample.
func (ih *InputHandler) ScreenshotRequested() bool {
	return ih.keys.IsKeyJustPressed(ebiten.KeyF12)
}

// MinimapToggled reports a Tab press in the last Sample.
func (ih *InputHandler) MinimapToggled() bool {
	return ih.keys.IsKeyJustPressed(ebiten.KeyTab)
}

// QuitRequested reports an Escape press in the last Sample.
func (ih *InputHandler) QuitRequested() bool {
	return ih.keys.IsKeyJustPressed(ebiten.KeyEscape)
}

func (ih *InputHandler) anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ih.pressed(k) {
			return true
		}
	}
	return false
}
