package player

import (
	"wolfcast/internal/collision"
	"wolfcast/internal/config"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/world"
)

// Input is one frame of sampled movement intent. Forward and Strafe are in
// [-1, 1] (positive strafe moves right); Turn is in [-1, 1] and is scaled by
// the rotation speed. Look is an extra raw angular delta, e.g. from the mouse.
type Input struct {
	Forward float64
	Strafe  float64
	Turn    float64
	Look    float64
}

// Player owns the camera pose and moves it through the grid.
type Player struct {
	pose Pose
	grid collision.TileChecker

	moveSpeed      float64
	rotationSpeed  float64
	collisionScale float64
}

// NewPlayer places a player on the grid. The start angle is normalized.
func NewPlayer(grid collision.TileChecker, start world.PlayerStart, cfg config.MovementConfig) *Player {
	return &Player{
		pose: Pose{
			X:     start.X,
			Y:     start.Y,
			Angle: mathutil.NormalizeAngle(start.Angle),
		},
		grid:           grid,
		moveSpeed:      cfg.MoveSpeed,
		rotationSpeed:  cfg.RotationSpeed,
		collisionScale: cfg.CollisionScale,
	}
}

// Pose returns a copy of the current pose. Renderers only ever read it.
func (p *Player) Pose() Pose {
	return p.pose
}

// Integrate advances the player by dt seconds: movement along the heading
// basis with axis-separated wall collision, then rotation.
func (p *Player) Integrate(in Input, dt float64) {
	if dt > 0 {
		p.move(in, dt)
		p.Rotate(in.Turn * p.rotationSpeed * dt)
	}
	if in.Look != 0 {
		p.Rotate(in.Look)
	}
}

func (p *Player) move(in Input, dt float64) {
	if in.Forward == 0 && in.Strafe == 0 {
		return
	}

	speed := p.moveSpeed * dt
	dx := speed * (in.Forward*p.pose.GetForwardX() + in.Strafe*p.pose.GetRightX())
	dy := speed * (in.Forward*p.pose.GetForwardY() + in.Strafe*p.pose.GetRightY())

	// Probe distance stays constant in grid units whatever the frame time
	probeScale := p.collisionScale / dt
	p.pose.X, p.pose.Y = collision.Slide(p.grid, p.pose.X, p.pose.Y, dx, dy, probeScale)
}

// Rotate turns the camera by delta radians, keeping the heading in [0, 2π).
func (p *Player) Rotate(delta float64) {
	p.pose.Angle = mathutil.NormalizeAngle(p.pose.Angle + delta)
}

// SetPose teleports the player. Used when a level is (re)loaded.
func (p *Player) SetPose(pose Pose) {
	pose.Angle = mathutil.NormalizeAngle(pose.Angle)
	p.pose = pose
}
