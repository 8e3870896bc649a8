package config

import "math"

// Projection holds the screen-space constants shared by the ray caster, the
// sprite projector and the compositor. It is derived once at start-up.
type Projection struct {
	Width, Height         int
	HalfWidth, HalfHeight int

	FOV     float64
	HalfFOV float64

	// Scale is the width in pixels of one ray column.
	Scale       int
	NumRays     int
	HalfNumRays int
	DeltaAngle  float64

	// ScreenDist is the distance from the eye to the projection plane, in pixels.
	ScreenDist float64

	MaxDepth    int
	TextureSize int
}

// NewProjection derives the projection constants from raw values.
func NewProjection(width, height, scale int, fov float64, maxDepth, textureSize int) Projection {
	if scale < 1 {
		scale = 1
	}
	numRays := width / scale
	if numRays < 1 {
		numRays = 1
	}
	halfFOV := fov / 2
	halfWidth := width / 2

	return Projection{
		Width:       width,
		Height:      height,
		HalfWidth:   halfWidth,
		HalfHeight:  height / 2,
		FOV:         fov,
		HalfFOV:     halfFOV,
		Scale:       scale,
		NumRays:     numRays,
		HalfNumRays: numRays / 2,
		DeltaAngle:  fov / float64(numRays),
		ScreenDist:  float64(halfWidth) / math.Tan(halfFOV),
		MaxDepth:    maxDepth,
		TextureSize: textureSize,
	}
}

// Projection returns the projection constants for this configuration.
func (c *Config) Projection() Projection {
	return NewProjection(
		c.Display.ScreenWidth,
		c.Display.ScreenHeight,
		c.Graphics.RaysPerScreenWidth,
		c.Camera.FieldOfView,
		c.Camera.MaxDepth,
		c.Graphics.TextureSize,
	)
}

// HalfTextureSize is used when cropping the texture of walls taller than the screen.
func (p Projection) HalfTextureSize() int {
	return p.TextureSize / 2
}
