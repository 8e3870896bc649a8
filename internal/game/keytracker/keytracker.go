// Package keytracker turns held-key polling into edge-triggered presses.
package keytracker

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PressedFunc reports whether a key is held down.
type PressedFunc func(ebiten.Key) bool

// KeyStateTracker tracks the previous state of a set of keys.
type KeyStateTracker struct {
	pressed     PressedFunc
	prevPressed map[ebiten.Key]bool
	justPressed map[ebiten.Key]bool
}

// New tracks keys using ebiten's keyboard state.
func New(keys ...ebiten.Key) *KeyStateTracker {
	return NewWithSource(ebiten.IsKeyPressed, keys...)
}

// NewWithSource tracks keys using a custom key state source.
func NewWithSource(pressed PressedFunc, keys ...ebiten.Key) *KeyStateTracker {
	k := &KeyStateTracker{
		pressed:     pressed,
		prevPressed: make(map[ebiten.Key]bool, len(keys)),
		justPressed: make(map[ebiten.Key]bool, len(keys)),
	}
	for _, key := range keys {
		k.prevPressed[key] = false
	}
	return k
}

// Update samples every tracked key. Call once per tick.
func (k *KeyStateTracker) Update() {
	for key, prev := range k.prevPressed {
		pressed := k.pressed(key)
		k.justPressed[key] = pressed && !prev
		k.prevPressed[key] = pressed
	}
}

// IsKeyJustPressed returns true if the key was not pressed on the previous
// Update but is pressed now.
func (k *KeyStateTracker) IsKeyJustPressed(key ebiten.Key) bool {
	return k.justPressed[key]
}
