package sprite

import (
	"image"
	"math"

	"wolfcast/internal/config"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/player"
	"wolfcast/internal/render"
)

// minNormDist culls sprites too close to the camera plane.
const minNormDist = 0.5

// Projector turns sprite positions into screen rectangles.
type Projector struct {
	proj config.Projection
}

// NewProjector creates a projector.
func NewProjector(proj config.Projection) *Projector {
	return &Projector{proj: proj}
}

// relativeAngle is the bearing of (x, y) relative to the heading, in
// [-π/2, 3π/2). The range keeps the value continuous through the direction
// straight behind the camera, so wrap-around never flips a sprite across the
// screen.
func relativeAngle(pose player.Pose, x, y float64) float64 {
	theta := math.Atan2(y-pose.Y, x-pose.X)
	return mathutil.NormalizeAngle(theta-pose.Angle+math.Pi/2) - math.Pi/2
}

// Project returns the drawable for e, or false when it is culled.
func (p *Projector) Project(pose player.Pose, e Entity) (render.SpriteDrawable, bool) {
	if e.Image == nil {
		return render.SpriteDrawable{}, false
	}
	b := e.Image.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return render.SpriteDrawable{}, false
	}

	delta := relativeAngle(pose, e.X, e.Y)
	screenX := (float64(p.proj.HalfNumRays) + delta/p.proj.DeltaAngle) * float64(p.proj.Scale)

	dist := math.Hypot(e.X-pose.X, e.Y-pose.Y)
	normDist := dist * math.Cos(delta)
	if normDist <= minNormDist {
		return render.SpriteDrawable{}, false
	}

	height := p.proj.ScreenDist / normDist * e.Scale
	width := height * float64(b.Dx()) / float64(b.Dy())
	halfWidth := width / 2
	if screenX <= -halfWidth || screenX >= float64(p.proj.Width)+halfWidth {
		return render.SpriteDrawable{}, false
	}

	left := screenX - halfWidth
	top := float64(p.proj.HalfHeight) - height/2 + height*e.Shift
	dst := image.Rect(
		int(math.Round(left)),
		int(math.Round(top)),
		int(math.Round(left+width)),
		int(math.Round(top+height)),
	)
	return render.SpriteDrawable{Dist: normDist, Image: e.Image, Dst: dst}, true
}

// ProjectAll projects every object and keeps the visible ones.
func (p *Projector) ProjectAll(pose player.Pose, objects []Object) []render.SpriteDrawable {
	out := make([]render.SpriteDrawable, 0, len(objects))
	for _, o := range objects {
		if d, ok := p.Project(pose, o.Billboard()); ok {
			out = append(out, d)
		}
	}
	return out
}
