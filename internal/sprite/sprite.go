// Package sprite holds billboard objects placed in the level and projects
// them onto the screen.
package sprite

import (
	"image"
	"time"
)

// Object is anything that can be drawn as a billboard.
type Object interface {
	Billboard() Entity
}

// Updater is implemented by objects that change over time.
type Updater interface {
	Update(dt time.Duration)
}

// Entity is a static billboard. Scale is relative to a wall's height; Shift
// moves the sprite down by that fraction of its projected height.
type Entity struct {
	X, Y  float64
	Scale float64
	Shift float64
	Image image.Image
}

// Billboard returns the entity itself.
func (e *Entity) Billboard() Entity {
	return *e
}

// Animated is a billboard cycling through a fixed set of frames.
type Animated struct {
	Entity
	frames    []image.Image
	frame     int
	frameTime time.Duration
	elapsed   time.Duration
}

// NewAnimated creates an animated sprite showing frames[0] first.
// The frame slice is owned by the sprite.
func NewAnimated(base Entity, frames []image.Image, frameTime time.Duration) *Animated {
	a := &Animated{
		Entity:    base,
		frames:    frames,
		frameTime: frameTime,
	}
	if len(frames) > 0 {
		a.Image = frames[0]
	}
	return a
}

// Update advances at most one frame, once more than frameTime has passed
// since the last advance.
func (a *Animated) Update(dt time.Duration) {
	if len(a.frames) < 2 {
		return
	}
	a.elapsed += dt
	if a.elapsed > a.frameTime {
		a.elapsed = 0
		a.frame = (a.frame + 1) % len(a.frames)
		a.Image = a.frames[a.frame]
	}
}

// Frame returns the index of the frame currently shown.
func (a *Animated) Frame() int {
	return a.frame
}

// Billboard returns the entity with the current frame.
func (a *Animated) Billboard() Entity {
	return a.Entity
}
