package render

import (
	"image"
	"math"

	"wolfcast/internal/config"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/raycast"
)

// depthEpsilon keeps the projected height finite at zero depth.
const depthEpsilon = 1e-4

// ProjectedHeight is the on-screen height of a wall at the given depth.
func ProjectedHeight(proj config.Projection, depth float64) float64 {
	return proj.ScreenDist / (depth + depthEpsilon)
}

// ProjectWalls converts ray hits into wall slices. Misses produce no slice.
func ProjectWalls(hits []raycast.Hit, proj config.Projection) []WallSlice {
	slices := make([]WallSlice, 0, len(hits))
	for _, hit := range hits {
		if !hit.OK {
			continue
		}
		slices = append(slices, projectWall(hit, proj))
	}
	return slices
}

func projectWall(hit raycast.Hit, proj config.Projection) WallSlice {
	height := ProjectedHeight(proj, hit.Depth)
	texSize := proj.TextureSize
	stripWidth := mathutil.IntMin(proj.Scale, texSize)

	// The strip must stay inside the texture at the right edge
	x0 := int(hit.Offset * float64(texSize))
	x0 = mathutil.IntClamp(x0, 0, texSize-stripWidth)

	left := hit.Column * proj.Scale
	slice := WallSlice{
		Column:  hit.Column,
		Dist:    hit.Depth,
		Texture: hit.Texture,
	}

	if height < float64(proj.Height) {
		h := int(height)
		top := proj.HalfHeight - h/2
		slice.Src = image.Rect(x0, 0, x0+stripWidth, texSize)
		slice.Dst = image.Rect(left, top, left+proj.Scale, top+h)
		return slice
	}

	// Taller than the screen: sample only the visible middle of the texture
	texHeight := float64(texSize) * float64(proj.Height) / height
	th := mathutil.IntMax(1, int(math.Round(texHeight)))
	y0 := proj.HalfTextureSize() - th/2
	slice.Src = image.Rect(x0, y0, x0+stripWidth, y0+th)
	slice.Dst = image.Rect(left, 0, left+proj.Scale, proj.Height)
	return slice
}
