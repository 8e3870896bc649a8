package render

import (
	"image"

	"wolfcast/internal/world"
)

// Drawable is anything the compositor orders by depth: a WallSlice or a
// SpriteDrawable. The set is closed.
type Drawable interface {
	Depth() float64
	drawable()
}

// WallSlice is one textured wall column. Src is in the coordinates of the
// texture, which is TextureSize pixels square.
type WallSlice struct {
	Column  int
	Dist    float64
	Texture world.TextureID
	Src     image.Rectangle
	Dst     image.Rectangle
}

func (w WallSlice) Depth() float64 { return w.Dist }
func (WallSlice) drawable()        {}

// SpriteDrawable is a billboard scaled into Dst.
type SpriteDrawable struct {
	Dist  float64
	Image image.Image
	Dst   image.Rectangle
}

func (s SpriteDrawable) Depth() float64 { return s.Dist }
func (SpriteDrawable) drawable()        {}
