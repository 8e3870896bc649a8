package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"wolfcast/internal/config"
	"wolfcast/internal/world"
)

// TextureProvider resolves wall texture ids to TextureSize square images.
type TextureProvider interface {
	ImageFor(id world.TextureID) image.Image
}

// Compositor draws a frame back to front.
type Compositor struct {
	proj       config.Projection
	textures   TextureProvider
	skyColor   color.Color
	floorColor color.Color
}

// NewCompositor creates a compositor. The colours are used for the floor and,
// when no sky image is given, for the sky.
func NewCompositor(proj config.Projection, textures TextureProvider, sky, floor color.Color) *Compositor {
	return &Compositor{
		proj:       proj,
		textures:   textures,
		skyColor:   sky,
		floorColor: floor,
	}
}

// DrawBackground paints the sky across the top half, scrolled left by
// skyOffset pixels and wrapped, and the floor colour across the bottom half.
func (c *Compositor) DrawBackground(sink Sink, sky image.Image, skyOffset float64) {
	w, hh := c.proj.Width, c.proj.HalfHeight

	if sky == nil {
		sink.Fill(image.Rect(0, 0, w, hh), c.skyColor)
	} else {
		off := int(math.Mod(skyOffset, float64(w)))
		if off < 0 {
			off += w
		}
		sink.Blit(sky, sky.Bounds(), image.Rect(-off, 0, w-off, hh))
		sink.Blit(sky, sky.Bounds(), image.Rect(w-off, 0, 2*w-off, hh))
	}

	sink.Fill(image.Rect(0, hh, w, c.proj.Height), c.floorColor)
}

// Compose draws walls and sprites with the painter's algorithm: farthest
// first, equal depths in submission order (walls before sprites).
func (c *Compositor) Compose(sink Sink, walls []WallSlice, sprites []SpriteDrawable) {
	drawables := make([]Drawable, 0, len(walls)+len(sprites))
	for _, w := range walls {
		drawables = append(drawables, w)
	}
	for _, s := range sprites {
		drawables = append(drawables, s)
	}

	sort.SliceStable(drawables, func(i, j int) bool {
		return drawables[i].Depth() > drawables[j].Depth()
	})

	for _, d := range drawables {
		switch d := d.(type) {
		case WallSlice:
			tex := c.textures.ImageFor(d.Texture)
			if tex == nil {
				continue
			}
			sink.Blit(tex, d.Src.Add(tex.Bounds().Min), d.Dst)
		case SpriteDrawable:
			if d.Image == nil {
				continue
			}
			sink.Blit(d.Image, d.Image.Bounds(), d.Dst)
		}
	}
}
