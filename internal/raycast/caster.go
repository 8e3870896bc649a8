// Package raycast casts one ray per screen column against the wall grid.
//
// Each ray is searched twice: once against the vertical grid lines (x = k)
// and once against the horizontal ones (y = k). The nearer of the two hits
// wins, and its distance is corrected for the fish-eye effect.
package raycast

import (
	"math"

	"wolfcast/internal/config"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/player"
	"wolfcast/internal/world"
)

// Axis tells which family of grid lines a ray hit.
type Axis int

const (
	AxisVertical   Axis = iota // hit a line x = k (an east or west face)
	AxisHorizontal             // hit a line y = k (a north or south face)
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

const (
	// boundaryNudge pushes a negative-direction start just across the
	// boundary so that flooring lands in the neighbouring cell.
	boundaryNudge = 1e-6
	// trigEpsilon replaces sin/cos values closer to zero than itself.
	trigEpsilon = 1e-6
)

// Grid is the read-only view of the level a caster needs.
type Grid interface {
	TextureAt(c world.Cell) (world.TextureID, bool)
}

// Hit is the result of one ray.
type Hit struct {
	Column   int
	Angle    float64
	RawDepth float64 // euclidean distance along the ray
	Depth    float64 // perpendicular distance to the camera plane
	Texture  world.TextureID
	Offset   float64 // horizontal texel coordinate in [0, 1)
	Axis     Axis
	OK       bool // false when nothing was hit within MaxDepth steps
}

// Caster casts the per-column rays of one frame.
type Caster struct {
	grid Grid
	proj config.Projection
}

// NewCaster creates a caster over a grid.
func NewCaster(grid Grid, proj config.Projection) *Caster {
	return &Caster{grid: grid, proj: proj}
}

// Cast returns exactly NumRays hits, one per column, left to right.
func (c *Caster) Cast(pose player.Pose) []Hit {
	hits := make([]Hit, c.proj.NumRays)
	start := pose.Angle - c.proj.HalfFOV
	for i := range hits {
		angle := start + float64(i)*c.proj.DeltaAngle
		hits[i] = c.CastRay(pose, angle)
		hits[i].Column = i
	}
	return hits
}

// axisHit is the outcome of a search along one family of grid lines.
type axisHit struct {
	depth   float64
	x, y    float64
	texture world.TextureID
	ok      bool
}

// CastRay casts a single ray at an absolute angle from the pose. Column is
// left zero; Depth is corrected against the pose heading.
func (c *Caster) CastRay(pose player.Pose, angle float64) Hit {
	sin := nonZero(math.Sin(angle))
	cos := nonZero(math.Cos(angle))
	cell := pose.MapCell()

	vert := c.searchVertical(pose.X, pose.Y, cell, sin, cos)
	hor := c.searchHorizontal(pose.X, pose.Y, cell, sin, cos)

	hit := pick(vert, hor, sin, cos)
	hit.Angle = angle
	if hit.OK {
		hit.Depth = hit.RawDepth * math.Cos(pose.Angle-angle)
	}
	return hit
}

// searchVertical walks the lines x = k, starting at the boundary of the
// camera's cell in the direction of travel.
func (c *Caster) searchVertical(ox, oy float64, cell world.Cell, sin, cos float64) axisHit {
	x, dx := float64(cell.X+1), 1.0
	if cos < 0 {
		x, dx = float64(cell.X)-boundaryNudge, -1.0
	}

	depth := (x - ox) / cos
	y := oy + depth*sin
	deltaDepth := dx / cos
	dy := deltaDepth * sin

	for i := 0; i < c.proj.MaxDepth; i++ {
		if id, ok := c.grid.TextureAt(world.CellAt(x, y)); ok {
			return axisHit{depth: depth, x: x, y: y, texture: id, ok: true}
		}
		x += dx
		y += dy
		depth += deltaDepth
	}
	return axisHit{depth: math.Inf(1)}
}

// searchHorizontal walks the lines y = k.
func (c *Caster) searchHorizontal(ox, oy float64, cell world.Cell, sin, cos float64) axisHit {
	y, dy := float64(cell.Y+1), 1.0
	if sin < 0 {
		y, dy = float64(cell.Y)-boundaryNudge, -1.0
	}

	depth := (y - oy) / sin
	x := ox + depth*cos
	deltaDepth := dy / sin
	dx := deltaDepth * cos

	for i := 0; i < c.proj.MaxDepth; i++ {
		if id, ok := c.grid.TextureAt(world.CellAt(x, y)); ok {
			return axisHit{depth: depth, x: x, y: y, texture: id, ok: true}
		}
		x += dx
		y += dy
		depth += deltaDepth
	}
	return axisHit{depth: math.Inf(1)}
}

// pick selects the nearer axis hit. Ties go to the horizontal hit.
func pick(vert, hor axisHit, sin, cos float64) Hit {
	switch {
	case !vert.ok && !hor.ok:
		return Hit{}
	case vert.depth < hor.depth:
		y := mathutil.Frac(vert.y)
		offset := y
		if cos < 0 {
			offset = 1 - y
		}
		return Hit{
			RawDepth: vert.depth,
			Texture:  vert.texture,
			Offset:   wrapUnit(offset),
			Axis:     AxisVertical,
			OK:       true,
		}
	default:
		x := mathutil.Frac(hor.x)
		offset := x
		if sin > 0 {
			offset = 1 - x
		}
		return Hit{
			RawDepth: hor.depth,
			Texture:  hor.texture,
			Offset:   wrapUnit(offset),
			Axis:     AxisHorizontal,
			OK:       true,
		}
	}
}

// nonZero keeps v away from zero, preserving its sign (zero counts as positive).
func nonZero(v float64) float64 {
	if math.Abs(v) >= trigEpsilon {
		return v
	}
	if v < 0 {
		return -trigEpsilon
	}
	return trigEpsilon
}

// wrapUnit folds 1 back to 0 so offsets stay in [0, 1).
func wrapUnit(v float64) float64 {
	if v >= 1 {
		return v - 1
	}
	return v
}
