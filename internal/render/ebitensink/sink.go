// Package ebitensink draws render.Sink calls onto an ebiten screen.
package ebitensink

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Sink draws onto an *ebiten.Image. Set the target with Begin each frame.
type Sink struct {
	dst   *ebiten.Image
	cache *ImageCache
}

// New creates a sink sharing the given image cache.
func New(cache *ImageCache) *Sink {
	if cache == nil {
		cache = NewImageCache()
	}
	return &Sink{cache: cache}
}

// Begin sets the frame target.
func (s *Sink) Begin(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Sink) Blit(src image.Image, srcRect, dstRect image.Rectangle) {
	if s.dst == nil || src == nil || srcRect.Empty() || dstRect.Empty() {
		return
	}
	srcRect = srcRect.Intersect(src.Bounds())
	if srcRect.Empty() {
		return
	}

	img := s.cache.GetOrCreate(src, toEbiten)
	sub, ok := img.SubImage(srcRect).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(dstRect.Dx())/float64(srcRect.Dx()),
		float64(dstRect.Dy())/float64(srcRect.Dy()),
	)
	op.GeoM.Translate(float64(dstRect.Min.X), float64(dstRect.Min.Y))
	op.Filter = ebiten.FilterNearest
	s.dst.DrawImage(sub, op)
}

func (s *Sink) Fill(rect image.Rectangle, c color.Color) {
	if s.dst == nil || rect.Empty() {
		return
	}
	vector.DrawFilledRect(s.dst, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), c, false)
}

func toEbiten(src image.Image) *ebiten.Image {
	if img, ok := src.(*ebiten.Image); ok {
		return img
	}
	return ebiten.NewImageFromImage(src)
}
