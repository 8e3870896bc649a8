package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wolfcast/internal/config"
	"wolfcast/internal/raycast"
	"wolfcast/internal/world"
)

func testProjection() config.Projection {
	return config.NewProjection(320, 200, 2, math.Pi/3, 20, 64)
}

type call struct {
	kind string // "blit" or "fill"
	src  image.Image
	sr   image.Rectangle
	dr   image.Rectangle
	c    color.Color
}

// recordingSink remembers every draw call in order.
type recordingSink struct {
	calls []call
}

func (r *recordingSink) Blit(src image.Image, srcRect, dstRect image.Rectangle) {
	r.calls = append(r.calls, call{kind: "blit", src: src, sr: srcRect, dr: dstRect})
}

func (r *recordingSink) Fill(rect image.Rectangle, c color.Color) {
	r.calls = append(r.calls, call{kind: "fill", dr: rect, c: c})
}

// textures maps every id to its own solid image.
type textures map[world.TextureID]image.Image

func (t textures) ImageFor(id world.TextureID) image.Image {
	return t[id]
}

func solid(size int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestProjectWalls(t *testing.T) {
	proj := testProjection()

	testCases := []struct {
		name    string
		hit     raycast.Hit
		wantSrc image.Rectangle
		wantDst image.Rectangle
	}{
		{
			name:    "fits on screen",
			hit:     raycast.Hit{Column: 10, Depth: 2, Offset: 0.5, Texture: 1, OK: true},
			wantSrc: image.Rect(32, 0, 34, 64),
			wantDst: image.Rect(20, 31, 22, 169),
		},
		{
			name:    "taller than screen is cropped",
			hit:     raycast.Hit{Column: 3, Depth: 0.5, Offset: 0.25, Texture: 1, OK: true},
			wantSrc: image.Rect(16, 21, 18, 44),
			wantDst: image.Rect(6, 0, 8, 200),
		},
		{
			name:    "strip clamped at texture edge",
			hit:     raycast.Hit{Column: 0, Depth: 2, Offset: 0.999, Texture: 1, OK: true},
			wantSrc: image.Rect(62, 0, 64, 64),
			wantDst: image.Rect(0, 31, 2, 169),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slices := ProjectWalls([]raycast.Hit{tc.hit}, proj)
			require.Len(t, slices, 1)
			assert.Equal(t, tc.wantSrc, slices[0].Src)
			assert.Equal(t, tc.wantDst, slices[0].Dst)
			assert.Equal(t, tc.hit.Depth, slices[0].Depth())
			assert.True(t, slices[0].Src.In(image.Rect(0, 0, 64, 64)), "src %v outside texture", slices[0].Src)
		})
	}
}

func TestProjectWallsSkipsMisses(t *testing.T) {
	hits := []raycast.Hit{
		{Column: 0, Depth: 3, OK: true, Texture: 1},
		{Column: 1},
		{Column: 2, Depth: 4, OK: true, Texture: 2},
	}
	slices := ProjectWalls(hits, testProjection())
	require.Len(t, slices, 2)
	assert.Equal(t, 0, slices[0].Column)
	assert.Equal(t, 2, slices[1].Column)
}

func TestProjectedHeightAtUnitDepth(t *testing.T) {
	proj := testProjection()
	assert.InDelta(t, proj.ScreenDist, ProjectedHeight(proj, 1), proj.ScreenDist*1e-3)
	assert.False(t, math.IsInf(ProjectedHeight(proj, 0), 0))
}

func TestComposeDrawsFarthestFirst(t *testing.T) {
	red := solid(64, color.RGBA{R: 255, A: 255})
	blue := solid(64, color.RGBA{B: 255, A: 255})
	spriteImg := solid(8, color.RGBA{G: 255, A: 255})

	comp := NewCompositor(testProjection(), textures{1: red, 2: blue}, color.Black, color.White)
	walls := []WallSlice{
		{Column: 0, Dist: 2, Texture: 1, Dst: image.Rect(0, 0, 2, 10)},
		{Column: 1, Dist: 5, Texture: 2, Dst: image.Rect(2, 0, 4, 10)},
		{Column: 2, Dist: 3, Texture: 1, Dst: image.Rect(4, 0, 6, 10)},
	}
	sprites := []SpriteDrawable{
		{Dist: 3, Image: spriteImg, Dst: image.Rect(0, 0, 8, 8)},
		{Dist: 9, Image: spriteImg, Dst: image.Rect(8, 0, 16, 8)},
	}

	sink := &recordingSink{}
	comp.Compose(sink, walls, sprites)

	require.Len(t, sink.calls, 5)
	wantDst := []image.Rectangle{
		image.Rect(8, 0, 16, 8), // sprite at 9
		image.Rect(2, 0, 4, 10), // wall at 5
		image.Rect(4, 0, 6, 10), // wall at 3, before the sprite at 3
		image.Rect(0, 0, 8, 8),  // sprite at 3
		image.Rect(0, 0, 2, 10), // wall at 2
	}
	for i, want := range wantDst {
		assert.Equal(t, want, sink.calls[i].dr, "call %d", i)
	}
	assert.Equal(t, image.Image(blue), sink.calls[1].src)
}

func TestComposeSkipsMissingTexture(t *testing.T) {
	comp := NewCompositor(testProjection(), textures{}, color.Black, color.White)
	sink := &recordingSink{}
	comp.Compose(sink, []WallSlice{{Dist: 1, Texture: 7}}, nil)
	assert.Empty(t, sink.calls)
}

func TestDrawBackground(t *testing.T) {
	proj := testProjection()
	floor := color.RGBA{R: 30, G: 30, B: 30, A: 255}
	sky := color.RGBA{R: 10, G: 20, B: 200, A: 255}
	comp := NewCompositor(proj, textures{}, sky, floor)

	t.Run("flat sky", func(t *testing.T) {
		sink := &recordingSink{}
		comp.DrawBackground(sink, nil, 0)
		require.Len(t, sink.calls, 2)
		assert.Equal(t, image.Rect(0, 0, 320, 100), sink.calls[0].dr)
		assert.Equal(t, sky, sink.calls[0].c)
		assert.Equal(t, image.Rect(0, 100, 320, 200), sink.calls[1].dr)
		assert.Equal(t, floor, sink.calls[1].c)
	})

	t.Run("scrolled sky wraps", func(t *testing.T) {
		skyImg := solid(16, sky)
		testCases := []struct {
			offset float64
			first  int
		}{
			{0, 0},
			{100, -100},
			{420, -100},
			{-20, -300},
		}
		for _, tc := range testCases {
			sink := &recordingSink{}
			comp.DrawBackground(sink, skyImg, tc.offset)
			require.Len(t, sink.calls, 3)
			assert.Equal(t, image.Rect(tc.first, 0, tc.first+320, 100), sink.calls[0].dr, "offset %v", tc.offset)
			assert.Equal(t, image.Rect(tc.first+320, 0, tc.first+640, 100), sink.calls[1].dr, "offset %v", tc.offset)
			assert.Equal(t, "fill", sink.calls[2].kind)
		}
	})
}

func TestImageSink(t *testing.T) {
	sink := NewImageSink(40, 20)
	green := color.RGBA{G: 255, A: 255}
	sink.Fill(image.Rect(0, 0, 40, 20), color.RGBA{A: 255})
	sink.Blit(solid(4, green), image.Rect(0, 0, 4, 4), image.Rect(10, 5, 30, 15))

	img := sink.Image()
	assert.Equal(t, green, img.RGBAAt(10, 5))
	assert.Equal(t, green, img.RGBAAt(29, 14))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(9, 5))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(30, 14))

	// Off-frame and degenerate calls are clipped or ignored.
	sink.Blit(solid(4, green), image.Rect(0, 0, 4, 4), image.Rect(-50, -50, -10, -10))
	sink.Blit(nil, image.Rect(0, 0, 1, 1), image.Rect(0, 0, 1, 1))
	sink.Fill(image.Rect(35, 15, 100, 100), green)
	assert.Equal(t, green, img.RGBAAt(39, 19))
}

func TestRenderedWallColumn(t *testing.T) {
	proj := testProjection()
	red := color.RGBA{R: 255, A: 255}
	comp := NewCompositor(proj, textures{1: solid(64, red)}, color.Black, color.Black)

	hits := []raycast.Hit{{Column: 80, Depth: 1, Offset: 0.5, Texture: 1, OK: true}}
	sink := NewImageSink(proj.Width, proj.Height)
	comp.DrawBackground(sink, nil, 0)
	comp.Compose(sink, ProjectWalls(hits, proj), nil)

	img := sink.Image()
	assert.Equal(t, red, img.RGBAAt(160, proj.HalfHeight))
	assert.Equal(t, red, img.RGBAAt(161, 0))
	assert.NotEqual(t, red, img.RGBAAt(162, proj.HalfHeight))
}
