package graphics

import (
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"

	"wolfcast/internal/world"
)

// Noise wraps a seeded perlin generator.
type Noise struct {
	p *perlin.Perlin
}

// NewNoise creates a generator with the usual 3-octave settings.
func NewNoise(seed int64) *Noise {
	alpha := 2.0  // smoothing
	beta := 2.0   // frequency
	n := int32(3) // octaves
	return &Noise{p: perlin.NewPerlin(alpha, beta, n, seed)}
}

// At returns the noise value at (x, y) mapped to [0, 1].
func (n *Noise) At(x, y float64) float64 {
	v := (n.p.Noise2D(x, y) + 1.0) / 2.0
	return math.Max(0, math.Min(1, v))
}

// basePalette gives the built-in wall ids a recognisable colour.
var basePalette = map[world.TextureID]color.RGBA{
	1: {R: 150, G: 62, B: 48, A: 255},   // brick
	2: {R: 112, G: 112, B: 122, A: 255}, // stone
	3: {R: 122, G: 82, B: 42, A: 255},   // wood
	4: {R: 64, G: 104, B: 60, A: 255},   // moss
	5: {R: 52, G: 72, B: 140, A: 255},   // tile
}

func baseColor(id world.TextureID) color.RGBA {
	if c, ok := basePalette[id]; ok {
		return c
	}
	// Spread unknown ids over the colour wheel
	h := uint8(int(id) * 47)
	return color.RGBA{R: 80 + h/3, G: 80 + (h*3)/5, B: 80 + (h*7)/9, A: 255}
}

// ProceduralTexture draws a size x size brick texture for a wall id. It is
// used when a texture file cannot be loaded.
func ProceduralTexture(size int, id world.TextureID, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	noise := NewNoise(seed + int64(id))
	base := baseColor(id)

	brickH := size / 4
	if brickH < 2 {
		brickH = 2
	}
	brickW := size / 2
	if brickW < 2 {
		brickW = 2
	}
	mortar := size / 64
	if mortar < 1 {
		mortar = 1
	}
	mortarColor := color.RGBA{R: 40, G: 36, B: 32, A: 255}

	for y := 0; y < size; y++ {
		row := y / brickH
		shift := 0
		if row%2 == 1 {
			shift = brickW / 2
		}
		for x := 0; x < size; x++ {
			if y%brickH < mortar || (x+shift)%brickW < mortar {
				img.SetRGBA(x, y, mortarColor)
				continue
			}
			v := noise.At(float64(x)/float64(size)*4, float64(y)/float64(size)*4)
			img.SetRGBA(x, y, shade(base, 0.7+0.6*v))
		}
	}
	return img
}

// SkyImage draws a width x height sky: a vertical gradient from base with
// perlin clouds. The image tiles horizontally so it can scroll.
func SkyImage(width, height int, base color.RGBA, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	noise := NewNoise(seed)
	cloud := color.RGBA{R: 235, G: 238, B: 245, A: 255}

	for y := 0; y < height; y++ {
		t := float64(y) / float64(height)
		sky := shade(base, 0.75+0.35*t)
		for x := 0; x < width; x++ {
			// Sample on a circle so the left and right edges meet
			a := float64(x) / float64(width) * 2 * math.Pi
			v := noise.At(2+math.Cos(a)*1.5, 2+math.Sin(a)*1.5+t*3)
			c := sky
			if v > 0.55 {
				c = blend(sky, cloud, math.Min(1, (v-0.55)*4))
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{R: clamp8(float64(c.R) * f), G: clamp8(float64(c.G) * f), B: clamp8(float64(c.B) * f), A: c.A}
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return clamp8(float64(x)*(1-t) + float64(y)*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
