package game

import (
	"image"
	"time"

	"wolfcast/internal/sprite"
	"wolfcast/internal/world"
)

// SpriteSource resolves sprite kinds to images.
type SpriteSource interface {
	GetSprite(kind string) image.Image
	GetFrames(kind string) []image.Image
}

// BuildSprites turns level placements into sprite objects.
func BuildSprites(placements []world.SpritePlacement, src SpriteSource) []sprite.Object {
	objects := make([]sprite.Object, 0, len(placements))
	for _, p := range placements {
		base := sprite.Entity{X: p.X, Y: p.Y, Scale: p.Scale, Shift: p.Shift}
		if p.Animated {
			frames := src.GetFrames(p.Kind)
			objects = append(objects, sprite.NewAnimated(base, frames, time.Duration(p.AnimationMS)*time.Millisecond))
			continue
		}
		base.Image = src.GetSprite(p.Kind)
		e := base
		objects = append(objects, &e)
	}
	return objects
}
