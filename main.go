package main

import (
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"wolfcast/internal/config"
	"wolfcast/internal/game"
	"wolfcast/internal/graphics"
	"wolfcast/internal/logger"
	"wolfcast/internal/monitoring"
	"wolfcast/internal/world"
)

// assetSeed fixes the procedural textures so every run looks the same.
const assetSeed = 1993

func main() {
	ensureRuntimeCWD()
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet
		logger.Init("info", "")
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		logger.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()

	level, err := loadLevel(cfg)
	if err != nil {
		logger.Fatal("Failed to load level", zap.Error(err))
	}
	logger.Info("Level loaded",
		zap.String("name", level.Name),
		zap.Int("width", level.Grid.Width()),
		zap.Int("height", level.Grid.Height()),
		zap.Int("walls", level.Grid.Len()),
		zap.Int("sprites", len(level.Sprites)))

	textures := graphics.NewTextureManager(cfg.Graphics.TextureSize, cfg.Graphics.Textures, assetSeed)
	if err := textures.Validate(level.Grid.TextureIDs()); err != nil {
		logger.Fatal("Level uses textures that are not configured", zap.Error(err))
	}

	proj := cfg.Projection()
	assets := game.Assets{
		Textures: textures,
		Sky:      loadSky(cfg, proj.Width, proj.HalfHeight),
		Sprites:  graphics.NewSpriteManager(cfg.Graphics.SpriteDir),
	}

	monitor := monitoring.NewPerformanceMonitor(5 * time.Second)
	frame := game.NewFrame(cfg, level, assets, monitor)

	if path := config.ScreenshotPath(); path != "" {
		if err := game.RenderToFile(frame, path); err != nil {
			logger.Fatal("Failed to render screenshot", zap.Error(err))
		}
		logger.Info("Screenshot saved", zap.String("path", path))
		return
	}

	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Display.TargetTPS > 0 {
		ebiten.SetTPS(cfg.Display.TargetTPS)
	}
	if cfg.Movement.MouseLook {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	logger.Info("Starting",
		zap.Int("width", proj.Width),
		zap.Int("height", proj.Height),
		zap.Int("rays", proj.NumRays),
		zap.Float64("fov", proj.FOV))

	g := game.NewGame(cfg, frame, monitor)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("Game exited with error", zap.Error(err))
	}
}

func loadLevel(cfg *config.Config) (*world.Level, error) {
	if cfg.World.MapFile == "" {
		return world.DefaultLevel(), nil
	}
	return world.LoadLevel(cfg.World.MapFile)
}

// loadSky loads the sky image scaled to the upper half of the screen, or
// generates one when the file is missing.
func loadSky(cfg *config.Config, width, height int) *image.RGBA {
	if cfg.Graphics.SkyTexture != "" {
		img, err := graphics.LoadImage(cfg.Graphics.SkyTexture)
		if err == nil {
			return graphics.ScaleTo(img, width, height)
		}
		logger.Warn("Sky not loaded, generating one", zap.String("path", cfg.Graphics.SkyTexture), zap.Error(err))
	}
	return graphics.SkyImage(width, height, cfg.SkyColor(), assetSeed)
}

// ensureRuntimeCWD switches to the binary's directory when started
// elsewhere, so relative asset paths in config.yaml resolve.
func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	if exe, err := os.Executable(); err == nil {
		_ = os.Chdir(filepath.Dir(exe))
	}
}
