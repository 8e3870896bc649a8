package game

import (
	"image"
	"math"
	"time"

	"wolfcast/internal/config"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/monitoring"
	"wolfcast/internal/player"
	"wolfcast/internal/raycast"
	"wolfcast/internal/render"
	"wolfcast/internal/sprite"
	"wolfcast/internal/world"
)

// Assets are the images a frame draws with.
type Assets struct {
	Textures render.TextureProvider
	Sky      image.Image // optional; nil paints the sky colour
	Sprites  SpriteSource
}

// Frame runs one level: it advances the player and sprites and renders a
// view of them. Each step runs to completion on the calling goroutine; the
// grid is never written while a frame renders.
type Frame struct {
	proj       config.Projection
	level      *world.Level
	player     *player.Player
	caster     *raycast.Caster
	projector  *sprite.Projector
	compositor *render.Compositor
	monitor    *monitoring.PerformanceMonitor

	objects []sprite.Object
	sky     image.Image

	skyScroll float64 // pixels per radian of rotation
	skyOffset float64
	hits      []raycast.Hit // rays of the last rendered frame
}

// NewFrame wires the render pipeline for a level.
func NewFrame(cfg *config.Config, level *world.Level, assets Assets, monitor *monitoring.PerformanceMonitor) *Frame {
	proj := cfg.Projection()
	if monitor == nil {
		monitor = monitoring.NewPerformanceMonitor(0)
	}

	f := &Frame{
		proj:       proj,
		level:      level,
		player:     player.NewPlayer(level.Grid, level.Start, cfg.Movement),
		caster:     raycast.NewCaster(level.Grid, proj),
		projector:  sprite.NewProjector(proj),
		compositor: render.NewCompositor(proj, assets.Textures, cfg.SkyColor(), cfg.FloorColor()),
		monitor:    monitor,
		sky:        assets.Sky,
		skyScroll:  cfg.Graphics.SkyScroll,
	}
	if assets.Sprites != nil {
		f.objects = BuildSprites(level.Sprites, assets.Sprites)
	}
	return f
}

// Update advances the frame by dt seconds.
func (f *Frame) Update(in player.Input, dt float64) {
	before := f.player.Pose().Angle
	f.player.Integrate(in, dt)
	turned := angleBetween(before, f.player.Pose().Angle)

	f.skyOffset = math.Mod(f.skyOffset+f.skyScroll*turned, float64(f.proj.Width))
	if f.skyOffset < 0 {
		f.skyOffset += float64(f.proj.Width)
	}

	if dt > 0 {
		step := time.Duration(dt * float64(time.Second))
		for _, o := range f.objects {
			if u, ok := o.(sprite.Updater); ok {
				u.Update(step)
			}
		}
	}
}

// angleBetween returns the signed rotation from a to b in [-π, π).
func angleBetween(a, b float64) float64 {
	return mathutil.NormalizeAngle(b-a+math.Pi) - math.Pi
}

// Render draws the current view: background, walls and sprites.
func (f *Frame) Render(sink render.Sink) {
	pose := f.player.Pose()
	f.compositor.DrawBackground(sink, f.sky, f.skyOffset)

	rt := f.monitor.StartRaycast()
	f.hits = f.caster.Cast(pose)
	rt.EndRaycast()

	walls := render.ProjectWalls(f.hits, f.proj)

	var sprites []render.SpriteDrawable
	f.monitor.ProfiledFunction("sprites", func() {
		sprites = f.projector.ProjectAll(pose, f.objects)
	})

	f.monitor.ProfiledFunction("compose", func() {
		f.compositor.Compose(sink, walls, sprites)
	})
}

// Pose returns the camera pose.
func (f *Frame) Pose() player.Pose {
	return f.player.Pose()
}

// Hits returns the rays cast by the last Render.
func (f *Frame) Hits() []raycast.Hit {
	return f.hits
}

// Level returns the level being played.
func (f *Frame) Level() *world.Level {
	return f.level
}

// Objects returns the sprites placed in the level.
func (f *Frame) Objects() []sprite.Object {
	return f.objects
}

// SkyOffset returns the current horizontal sky scroll in pixels.
func (f *Frame) SkyOffset() float64 {
	return f.skyOffset
}

// Projection returns the screen constants the frame renders with.
func (f *Frame) Projection() config.Projection {
	return f.proj
}
