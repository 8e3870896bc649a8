// Package render turns ray hits and projected sprites into draw calls.
//
// The package never touches a window: everything is drawn through a Sink,
// so a frame can be rendered into a plain image for screenshots and tests
// or onto an ebiten screen by the game loop.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Sink receives the draw calls of one frame.
type Sink interface {
	// Blit scales the src sub-rectangle of src onto dst. dst may extend
	// past the frame edges; sinks clip.
	Blit(src image.Image, srcRect, dstRect image.Rectangle)
	// Fill paints a rectangle with a solid colour.
	Fill(rect image.Rectangle, c color.Color)
}

// ImageSink draws into an in-memory RGBA image.
type ImageSink struct {
	img *image.RGBA
}

// NewImageSink creates a software sink with a fresh width x height frame.
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the frame drawn so far.
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}

// Blit scales with nearest-neighbour sampling, the look of the classic
// column renderers.
func (s *ImageSink) Blit(src image.Image, srcRect, dstRect image.Rectangle) {
	if src == nil || srcRect.Empty() || dstRect.Empty() {
		return
	}
	srcRect = srcRect.Intersect(src.Bounds())
	if srcRect.Empty() {
		return
	}
	// Clipping dst is left to the scaler, which keeps the mapping of the
	// unclipped rectangle.
	draw.NearestNeighbor.Scale(s.img, dstRect, src, srcRect, draw.Over, nil)
}

// Fill paints rect, clipped to the frame.
func (s *ImageSink) Fill(rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(s.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(s.img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}
