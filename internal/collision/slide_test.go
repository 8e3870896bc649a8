package collision

import (
	"testing"

	"wolfcast/internal/world"
)

func TestSlide(t *testing.T) {
	// Wall column at x = 3
	grid := world.NewGridMap([][]world.TextureID{
		{0, 0, 0, 1},
		{0, 0, 0, 1},
		{0, 0, 0, 1},
	})

	testCases := []struct {
		name         string
		x, y, dx, dy float64
		wantX, wantY float64
	}{
		{"free move", 1.5, 1.5, 0.1, 0.1, 1.6, 1.6},
		{"blocked x slides on y", 2.9, 1.5, 0.05, 0.05, 2.9, 1.55},
		{"blocked only axis", 2.9, 1.5, 0.05, 0, 2.9, 1.5},
		{"moving away from wall", 2.9, 1.5, -0.05, 0.05, 2.85, 1.55},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := Slide(grid, tc.x, tc.y, tc.dx, tc.dy, 3)
			if !approx(x, tc.wantX) || !approx(y, tc.wantY) {
				t.Errorf("Slide = (%.4f, %.4f), want (%.4f, %.4f)", x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestSlideProbeLooksAhead(t *testing.T) {
	grid := world.NewGridMap([][]world.TextureID{
		{0, 0, 1},
	})

	// The step itself stays in cell 1, but the probe (step * 10) reaches cell 2.
	x, _ := Slide(grid, 1.5, 0.5, 0.06, 0, 10)
	if x != 1.5 {
		t.Errorf("Expected the probe to stop the move, got x=%f", x)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
