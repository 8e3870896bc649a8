package game

import (
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wolfcast/internal/config"
	"wolfcast/internal/graphics"
	"wolfcast/internal/player"
	"wolfcast/internal/render"
	"wolfcast/internal/sprite"
	"wolfcast/internal/world"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Display.ScreenWidth = 320
	cfg.Display.ScreenHeight = 200
	cfg.Graphics.TextureSize = 64
	return cfg
}

func testTextures(cfg *config.Config) *graphics.TextureManager {
	paths := map[int]string{}
	for id := 1; id <= 5; id++ {
		paths[id] = filepath.Join("no", "such", "texture.png")
	}
	return graphics.NewTextureManager(cfg.Graphics.TextureSize, paths, 1)
}

func testFrame(t *testing.T) *Frame {
	t.Helper()
	cfg := testConfig()
	assets := Assets{
		Textures: testTextures(cfg),
		Sprites:  graphics.NewSpriteManager(t.TempDir()),
	}
	return NewFrame(cfg, world.DefaultLevel(), assets, nil)
}

func TestFrameStartsAtLevelStart(t *testing.T) {
	f := testFrame(t)
	start := world.DefaultLevel().Start
	pose := f.Pose()
	assert.Equal(t, start.X, pose.X)
	assert.Equal(t, start.Y, pose.Y)
	assert.Len(t, f.Objects(), len(world.DefaultLevel().Sprites))
}

func TestFrameUpdateMovesAndScrollsSky(t *testing.T) {
	f := testFrame(t)
	before := f.Pose()

	f.Update(player.Input{Forward: 1}, 0.05)
	after := f.Pose()
	assert.Greater(t, after.X, before.X, "facing east, forward should increase x")
	assert.Equal(t, 0.0, f.SkyOffset(), "no rotation, no scroll")

	f.Update(player.Input{Turn: 1}, 0.1)
	assert.InDelta(t, 270*0.2, f.SkyOffset(), 1e-9)

	f.Update(player.Input{Turn: -1}, 0.2)
	assert.InDelta(t, float64(320)-270*0.2, f.SkyOffset(), 1e-9, "offset wraps below zero")
}

func TestFrameRender(t *testing.T) {
	f := testFrame(t)
	proj := f.Projection()
	sink := render.NewImageSink(proj.Width, proj.Height)
	f.Render(sink)

	require.Len(t, f.Hits(), proj.NumRays)
	for _, h := range f.Hits() {
		assert.True(t, h.OK, "the default level is closed, column %d should hit", h.Column)
	}

	// The horizon row is covered by walls, the top and bottom rows are
	// background for walls further than one cell.
	img := sink.Image()
	floor := testConfig().FloorColor()
	assert.Equal(t, floor, img.RGBAAt(proj.Width/2, proj.Height-1))
	assert.NotEqual(t, floor, img.RGBAAt(proj.Width/2, proj.HalfHeight))
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, 0.3, angleBetween(1.0, 1.3), 1e-9)
	assert.InDelta(t, 0.1, angleBetween(2*math.Pi-0.05, 0.05), 1e-9)
	assert.InDelta(t, -0.1, angleBetween(0.05, 2*math.Pi-0.05), 1e-9)
}

type stubSprites struct{}

func (stubSprites) GetSprite(kind string) image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 8))
}

func (stubSprites) GetFrames(kind string) []image.Image {
	return []image.Image{image.NewRGBA(image.Rect(0, 0, 1, 1)), image.NewRGBA(image.Rect(0, 0, 2, 2))}
}

func TestBuildSprites(t *testing.T) {
	placements := []world.SpritePlacement{
		{Kind: "candlebra", X: 1.5, Y: 2.5, Scale: 0.7, Shift: 0.27},
		{Kind: "green_light", X: 3.5, Y: 4.5, Scale: 0.8, Animated: true, AnimationMS: 120},
	}
	objects := BuildSprites(placements, stubSprites{})
	require.Len(t, objects, 2)

	static := objects[0].Billboard()
	assert.Equal(t, 1.5, static.X)
	assert.Equal(t, 0.27, static.Shift)
	assert.Equal(t, 4, static.Image.Bounds().Dx())

	anim, ok := objects[1].(*sprite.Animated)
	require.True(t, ok, "animated placement should build an animated sprite")
	assert.Equal(t, 1, anim.Billboard().Image.Bounds().Dx())
}

func TestInputSample(t *testing.T) {
	held := map[ebiten.Key]bool{}
	ih := newInputHandler(config.MovementConfig{}, func(k ebiten.Key) bool { return held[k] })

	held[ebiten.KeyW] = true
	held[ebiten.KeyA] = true
	held[ebiten.KeyRight] = true
	in := ih.Sample()
	assert.Equal(t, player.Input{Forward: 1, Strafe: -1, Turn: 1}, in)

	held[ebiten.KeyS] = true
	held[ebiten.KeyTab] = true
	in = ih.Sample()
	assert.Equal(t, 0.0, in.Forward, "opposite keys cancel")
	assert.True(t, ih.MinimapToggled())
	assert.False(t, ih.ScreenshotRequested())

	ih.Sample()
	assert.False(t, ih.MinimapToggled(), "held Tab toggles once")
}

func TestMouseLook(t *testing.T) {
	ih := newInputHandler(config.MovementConfig{MouseLook: true, MouseSensitivity: 0.001}, func(ebiten.Key) bool { return false })

	assert.Equal(t, 0.0, ih.MouseLook(100, 100, 0.016), "first sample only records the position")
	assert.InDelta(t, 10*0.001*16, ih.MouseLook(110, 100, 0.016), 1e-9)
	assert.InDelta(t, -mouseMaxRel*0.001*16, ih.MouseLook(-500, 100, 0.016), 1e-9, "movement is capped")

	off := newInputHandler(config.MovementConfig{MouseSensitivity: 0.001}, func(ebiten.Key) bool { return false })
	off.MouseLook(0, 0, 0.016)
	assert.Equal(t, 0.0, off.MouseLook(50, 0, 0.016))
}

func TestRenderToFile(t *testing.T) {
	f := testFrame(t)
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, RenderToFile(f, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	img, _, err := image.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 200), img.Bounds())
}

func TestScreenshotCaptureFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "wolfcast")
	name := sc.GenerateFilename()
	assert.Equal(t, "shots", filepath.Dir(name))
	assert.Equal(t, ".png", filepath.Ext(name))

	dir := t.TempDir()
	sc = NewScreenshotCapture(filepath.Join(dir, "nested"), "shot")
	path, err := sc.CaptureFrame(testFrame(t))
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
