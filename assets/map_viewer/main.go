package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wolfcast/internal/world"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type levelInfo struct {
	Key   string
	Level *world.Level
	Err   error
}

type viewer struct {
	levels     []levelInfo
	levelIndex int
	sidebarTab int
	lastErr    string
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	dir := flag.String("dir", "assets/levels", "Directory of level YAML files")
	flag.Parse()

	ensureRuntimeCWD()

	v := &viewer{
		levels:     loadLevels(*dir),
		sidebarTab: tabInfo,
	}
	if len(v.levels) == 0 {
		v.lastErr = "no levels loaded"
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("wolfcast level viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if len(v.levels) > 0 {
			v.levelIndex = (v.levelIndex + 1) % len(v.levels)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if len(v.levels) > 0 {
			v.levelIndex--
			if v.levelIndex < 0 {
				v.levelIndex = len(v.levels) - 1
			}
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.levels) == 0 {
		ebitenutil.DebugPrintAt(screen, v.lastErr, 16, 16)
		return
	}

	l := v.levels[v.levelIndex]
	if l.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("level %s failed to load: %v", l.Key, l.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	mapAreaX := padding
	mapAreaY := padding
	sidebarX := mapAreaX + mapAreaW + padding

	drawMapPanel(screen, l, mapAreaX, mapAreaY, mapAreaW, mapAreaH)
	drawSidebar(screen, l, sidebarX, padding, sidebarWidth, mapAreaH, v.sidebarTab)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawMapPanel(screen *ebiten.Image, l levelInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	grid := l.Level.Grid
	worldW, worldH := grid.Width(), grid.Height()
	if worldW <= 0 || worldH <= 0 {
		ebitenutil.DebugPrintAt(screen, "empty level", x+12, y+12)
		return
	}

	tileSize := w / worldW
	if alt := h / worldH; alt < tileSize {
		tileSize = alt
	}
	if tileSize < 2 {
		tileSize = 2
	}

	originX := x + (w-worldW*tileSize)/2
	originY := y + (h-worldH*tileSize)/2
	floorColor := color.RGBA{45, 45, 50, 255}

	for ty := 0; ty < worldH; ty++ {
		for tx := 0; tx < worldW; tx++ {
			cellColor := floorColor
			if id, ok := grid.TextureAt(world.Cell{X: tx, Y: ty}); ok {
				cellColor = textureColor(id)
			}
			drawX := originX + tx*tileSize
			drawY := originY + ty*tileSize
			vector.DrawFilledRect(screen, float32(drawX), float32(drawY), float32(tileSize), float32(tileSize), cellColor, false)
		}
	}

	drawOverlays(screen, l.Level, originX, originY, tileSize)
	drawMapHeader(screen, l, x, y)
}

func drawMapHeader(screen *ebiten.Image, l levelInfo, x, y int) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%s)", l.Level.Name, l.Key), x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch levels, Esc to quit", x+12, y+24)
}

func drawOverlays(screen *ebiten.Image, level *world.Level, originX, originY, tileSize int) {
	for _, sp := range level.Sprites {
		clr := color.RGBA{255, 220, 0, 255}
		if sp.Animated {
			clr = color.RGBA{120, 255, 120, 255}
		}
		drawMarkerCircle(screen, originX, originY, tileSize, sp.X, sp.Y, clr, false)
	}

	start := level.Start
	drawMarkerCircle(screen, originX, originY, tileSize, start.X, start.Y, color.RGBA{50, 200, 255, 255}, true)
}

func drawSidebar(screen *ebiten.Image, l levelInfo, x, y, w, h int, tab int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	var lines []string
	if tab == tabLegend {
		lines = legendLines(l.Level.Grid)
	} else {
		animated := 0
		for _, sp := range l.Level.Sprites {
			if sp.Animated {
				animated++
			}
		}
		lines = []string{
			fmt.Sprintf("Cells: %dx%d", l.Level.Grid.Width(), l.Level.Grid.Height()),
			fmt.Sprintf("Walls: %d", l.Level.Grid.Len()),
			fmt.Sprintf("Sprites: %d (%d animated)", len(l.Level.Sprites), animated),
			fmt.Sprintf("Start: %.2f, %.2f", l.Level.Start.X, l.Level.Start.Y),
			"",
			"Markers:",
			"Cyan: start  Yellow: sprites",
			"Green: animated sprites",
		}
	}
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

// legendLines lists the wall textures a grid uses with their cell counts.
func legendLines(grid *world.GridMap) []string {
	counts := map[world.TextureID]int{}
	for _, c := range grid.Cells() {
		id, _ := grid.TextureAt(c)
		counts[id]++
	}
	lines := []string{"Texture -> cells", "----------------"}
	for _, id := range grid.TextureIDs() {
		lines = append(lines, fmt.Sprintf("%d -> %d", id, counts[id]))
	}
	return lines
}

func drawMarkerCircle(screen *ebiten.Image, originX, originY, tileSize int, wx, wy float64, clr color.RGBA, stroke bool) {
	if tileSize < 2 {
		return
	}
	centerX := float32(float64(originX) + wx*float64(tileSize))
	centerY := float32(float64(originY) + wy*float64(tileSize))
	radius := float32(tileSize) * 0.35
	vector.DrawFilledCircle(screen, centerX, centerY, radius, clr, true)
	if stroke {
		vector.StrokeCircle(screen, centerX, centerY, radius, 1, color.RGBA{255, 255, 255, 255}, true)
	}
}

func textureColor(id world.TextureID) color.RGBA {
	palette := []color.RGBA{
		{90, 90, 100, 255},
		{150, 70, 60, 255},
		{110, 110, 125, 255},
		{130, 90, 50, 255},
		{70, 110, 70, 255},
		{60, 80, 150, 255},
	}
	if int(id) < len(palette) {
		return palette[id]
	}
	return palette[0]
}

// loadLevels returns the built-in level followed by every level file in dir.
func loadLevels(dir string) []levelInfo {
	levels := []levelInfo{{Key: "default", Level: world.DefaultLevel()}}

	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		log.Printf("Warning: %v", err)
		return levels
	}
	sort.Strings(paths)
	for _, path := range paths {
		level, err := world.LoadLevel(path)
		levels = append(levels, levelInfo{
			Key:   filepath.Base(path),
			Level: level,
			Err:   err,
		})
	}
	return levels
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}
