package collision

import (
	"math"

	"wolfcast/internal/world"
)

// TileChecker reports whether the grid cell containing a point is free.
// *world.GridMap satisfies it.
type TileChecker interface {
	IsOpen(c world.Cell) bool
}

// Slide moves (x, y) by (dx, dy) one axis at a time. Each axis is committed
// only if the cell at the probe point, dx (or dy) scaled by probeScale ahead
// of the player, is open. Blocking one axis leaves the other free, so a
// diagonal move into a wall slides along it.
func Slide(checker TileChecker, x, y, dx, dy, probeScale float64) (float64, float64) {
	if checker.IsOpen(world.CellAt(x+dx*probeScale, y)) {
		x += dx
	}
	if checker.IsOpen(world.CellAt(x, y+dy*probeScale)) {
		y += dy
	}
	return x, y
}

// RayHit describes where a segment cast first entered an occupied cell.
type RayHit struct {
	Cell world.Cell
	Dist float64 // distance along the segment, in cells
}

// CastRay walks the cells crossed by the segment (x1, y1)-(x2, y2) with a grid
// DDA and returns the first occupied one. Starting inside an occupied cell is
// an immediate hit at distance 0.
func CastRay(checker TileChecker, x1, y1, x2, y2 float64) (RayHit, bool) {
	cell := world.CellAt(x1, y1)
	if !checker.IsOpen(cell) {
		return RayHit{Cell: cell}, true
	}

	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return RayHit{}, false
	}
	dirX := dx / length
	dirY := dy / length

	// Distance along the ray to cross one cell on each axis
	deltaX := math.Inf(1)
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	deltaY := math.Inf(1)
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	stepX, stepY := 1, 1
	sideX := (float64(cell.X+1) - x1) * deltaX
	sideY := (float64(cell.Y+1) - y1) * deltaY
	if dirX < 0 {
		stepX = -1
		sideX = (x1 - float64(cell.X)) * deltaX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (y1 - float64(cell.Y)) * deltaY
	}

	for {
		var dist float64
		if sideX < sideY {
			dist = sideX
			sideX += deltaX
			cell.X += stepX
		} else {
			dist = sideY
			sideY += deltaY
			cell.Y += stepY
		}

		if dist > length {
			return RayHit{}, false
		}
		if !checker.IsOpen(cell) {
			return RayHit{Cell: cell, Dist: dist}, true
		}
	}
}

// LineOfSight reports whether nothing occupied lies between two points.
// This is the geometric query sprite-based enemies need to decide whether
// they can see the camera.
func LineOfSight(checker TileChecker, x1, y1, x2, y2 float64) bool {
	_, blocked := CastRay(checker, x1, y1, x2, y2)
	return !blocked
}
