package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"wolfcast/internal/config"
	"wolfcast/internal/logger"
	"wolfcast/internal/monitoring"
	"wolfcast/internal/render/ebitensink"
)

// Game adapts a Frame to ebiten's game loop.
type Game struct {
	cfg         *config.Config
	frame       *Frame
	input       *InputHandler
	ui          *UISystem
	sink        *ebitensink.Sink
	monitor     *monitoring.PerformanceMonitor
	screenshots *ScreenshotCapture

	showMinimap bool
	takeShot    bool
	lastUpdate  time.Time
	now         func() time.Time
}

// NewGame creates the ebiten game for a frame.
func NewGame(cfg *config.Config, frame *Frame, monitor *monitoring.PerformanceMonitor) *Game {
	if monitor == nil {
		monitor = monitoring.NewPerformanceMonitor(0)
	}
	return &Game{
		cfg:         cfg,
		frame:       frame,
		input:       NewInputHandler(cfg.Movement),
		ui:          NewUISystem(frame, monitor),
		sink:        ebitensink.New(nil),
		monitor:     monitor,
		screenshots: NewScreenshotCapture("screenshots", "wolfcast"),
		showMinimap: cfg.Graphics.ShowMinimap,
		now:         time.Now,
	}
}

// Update samples input and advances the frame by the wall-clock time since
// the previous tick.
func (g *Game) Update() error {
	now := g.now()
	dt := 1.0 / float64(ebiten.TPS())
	if !g.lastUpdate.IsZero() {
		dt = now.Sub(g.lastUpdate).Seconds()
	}
	g.lastUpdate = now

	in := g.input.Sample()
	if g.input.QuitRequested() {
		return ebiten.Termination
	}
	if g.input.MinimapToggled() {
		g.showMinimap = !g.showMinimap
	}
	if g.input.ScreenshotRequested() {
		g.takeShot = true
	}
	x, y := ebiten.CursorPosition()
	in.Look = g.input.MouseLook(x, y, dt)

	g.frame.Update(in, dt)
	g.report(now)
	return nil
}

func (g *Game) report(now time.Time) {
	if !g.monitor.ShouldReport(now) {
		return
	}
	m := g.monitor.GetCurrentMetrics()
	logger.Info("Frame timings", m.Fields()...)
	for _, alert := range monitoring.CheckPerformanceAlerts(m) {
		logger.Warn(alert.Message,
			zap.String("type", alert.Type),
			zap.Float64("value", alert.Value),
			zap.Float64("threshold", alert.Threshold))
	}
}

// Draw renders the frame onto the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	frameTimer := g.monitor.StartFrame()
	defer frameTimer.EndFrame()

	g.sink.Begin(screen)
	g.frame.Render(g.sink)

	if g.showMinimap {
		g.ui.Draw(screen)
	}

	if g.takeShot {
		g.takeShot = false
		path, err := g.screenshots.CaptureFrame(g.frame)
		if err != nil {
			logger.Error("Screenshot failed", zap.Error(err))
			return
		}
		logger.Info("Screenshot saved", zap.String("path", path))
	}
}

// Layout returns the screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.cfg.GetScreenWidth(), g.cfg.GetScreenHeight()
}
