package player

import (
	"math"

	"wolfcast/internal/world"
)

// Pose is the camera position in grid units and its heading in radians.
// The heading is kept in [0, 2π).
type Pose struct {
	X, Y  float64
	Angle float64
}

// Camera helper methods for the Pose
// These provide cleaner movement calculations

// GetForwardX returns the X component of the forward direction vector
func (p Pose) GetForwardX() float64 {
	return math.Cos(p.Angle)
}

// GetForwardY returns the Y component of the forward direction vector
func (p Pose) GetForwardY() float64 {
	return math.Sin(p.Angle)
}

// GetRightX returns the X component of the right direction vector
func (p Pose) GetRightX() float64 {
	return -math.Sin(p.Angle)
}

// GetRightY returns the Y component of the right direction vector
func (p Pose) GetRightY() float64 {
	return math.Cos(p.Angle)
}

// GetPosition returns the camera's current position
func (p Pose) GetPosition() (float64, float64) {
	return p.X, p.Y
}

// MapCell returns the grid cell the camera stands in
func (p Pose) MapCell() world.Cell {
	return world.CellAt(p.X, p.Y)
}
