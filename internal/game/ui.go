package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"wolfcast/internal/monitoring"
	"wolfcast/internal/world"
)

const (
	minimapMargin  = 12
	minimapMaxCell = 16
	minimapMaxSize = 0.4 // of the screen width
)

// UISystem draws the debug overlay on top of the 3D view.
type UISystem struct {
	frame   *Frame
	monitor *monitoring.PerformanceMonitor
}

// NewUISystem creates the overlay for a frame.
func NewUISystem(frame *Frame, monitor *monitoring.PerformanceMonitor) *UISystem {
	return &UISystem{frame: frame, monitor: monitor}
}

// Draw draws the minimap with the cast rays and a status line.
func (ui *UISystem) Draw(screen *ebiten.Image) {
	cell := ui.minimapCellSize(screen.Bounds().Dx())
	ui.drawMinimap(screen, minimapMargin, minimapMargin, cell)

	grid := ui.frame.Level().Grid
	statusY := minimapMargin*2 + grid.Height()*cell
	pose := ui.frame.Pose()
	drawColoredTextSegments(screen, minimapMargin, statusY, []coloredTextSegment{
		{text: "pos ", color: color.RGBA{180, 180, 190, 255}},
		{text: fmt.Sprintf("%.2f, %.2f", pose.X, pose.Y), color: color.RGBA{120, 220, 255, 255}},
		{text: "  heading ", color: color.RGBA{180, 180, 190, 255}},
		{text: fmt.Sprintf("%.0f deg", pose.Angle*180/math.Pi), color: color.RGBA{255, 200, 80, 255}},
	})

	m := ui.monitor.GetCurrentMetrics()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f  TPS %.0f  cast %v", ebiten.ActualFPS(), ebiten.ActualTPS(), m.AvgRaycastTime), minimapMargin, statusY+16)
}

// minimapCellSize fits the whole level into a corner of the screen.
func (ui *UISystem) minimapCellSize(screenW int) int {
	grid := ui.frame.Level().Grid
	if grid.Width() == 0 {
		return minimapMaxCell
	}
	cell := int(float64(screenW)*minimapMaxSize) / grid.Width()
	if cell > minimapMaxCell {
		cell = minimapMaxCell
	}
	if cell < 2 {
		cell = 2
	}
	return cell
}

func (ui *UISystem) drawMinimap(screen *ebiten.Image, originX, originY, cell int) {
	grid := ui.frame.Level().Grid
	w, h := grid.Width()*cell, grid.Height()*cell
	vector.DrawFilledRect(screen, float32(originX), float32(originY), float32(w), float32(h), color.RGBA{20, 20, 30, 180}, false)

	for _, c := range grid.Cells() {
		id, _ := grid.TextureAt(c)
		x := float32(originX + c.X*cell)
		y := float32(originY + c.Y*cell)
		vector.DrawFilledRect(screen, x, y, float32(cell), float32(cell), getMinimapTileColor(id), false)
		vector.StrokeRect(screen, x, y, float32(cell), float32(cell), 1, color.RGBA{20, 20, 30, 200}, false)
	}

	toScreen := func(wx, wy float64) (float32, float32) {
		return float32(float64(originX) + wx*float64(cell)), float32(float64(originY) + wy*float64(cell))
	}

	pose := ui.frame.Pose()
	px, py := toScreen(pose.X, pose.Y)

	// Rays of the last frame, thinned out to keep the overlay readable
	hits := ui.frame.Hits()
	step := len(hits)/40 + 1
	for i := 0; i < len(hits); i += step {
		hit := hits[i]
		if !hit.OK {
			continue
		}
		ex, ey := toScreen(pose.X+hit.RawDepth*math.Cos(hit.Angle), pose.Y+hit.RawDepth*math.Sin(hit.Angle))
		vector.StrokeLine(screen, px, py, ex, ey, 1, color.RGBA{230, 210, 60, 160}, true)
	}

	for _, o := range ui.frame.Objects() {
		e := o.Billboard()
		sx, sy := toScreen(e.X, e.Y)
		vector.DrawFilledCircle(screen, sx, sy, float32(cell)/4+1, color.RGBA{255, 220, 0, 255}, true)
	}

	hx, hy := toScreen(pose.X+math.Cos(pose.Angle), pose.Y+math.Sin(pose.Angle))
	vector.StrokeLine(screen, px, py, hx, hy, 2, color.RGBA{255, 80, 80, 255}, true)
	vector.DrawFilledCircle(screen, px, py, float32(cell)/3+1, color.RGBA{50, 200, 255, 255}, true)
}

// getMinimapTileColor returns the color for a wall texture on the minimap
func getMinimapTileColor(id world.TextureID) color.RGBA {
	switch id {
	case 1:
		return color.RGBA{150, 70, 60, 220}
	case 2:
		return color.RGBA{110, 110, 125, 220}
	case 3:
		return color.RGBA{130, 90, 50, 220}
	case 4:
		return color.RGBA{70, 110, 70, 220}
	case 5:
		return color.RGBA{60, 80, 150, 220}
	default:
		return color.RGBA{90, 90, 100, 220}
	}
}

type coloredTextSegment struct {
	text  string
	color color.Color
}

func drawColoredTextSegments(screen *ebiten.Image, x, y int, segments []coloredTextSegment) {
	face := basicfont.Face7x13
	baseline := y + face.Ascent
	curX := x
	for _, seg := range segments {
		ebitext.Draw(screen, seg.text, face, curX, baseline, seg.color)
		curX += font.MeasureString(face, seg.text).Round()
	}
}
