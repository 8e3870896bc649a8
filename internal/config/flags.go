package config

import (
	"flag"
	"fmt"
	"os"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagMap        = flag.String("map", "", "Path to a level YAML file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and the minimap")
	flagWidth      = flag.Int("width", 0, "Screen width")
	flagHeight     = flag.Int("height", 0, "Screen height")
	flagScreenshot = flag.String("screenshot", "", "Render one frame to this PNG file and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// ScreenshotPath returns the headless screenshot target, if any.
func ScreenshotPath() string {
	return *flagScreenshot
}

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	cfg := Default()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
		cfg = loaded
	}

	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	GlobalConfig = cfg
	return cfg, nil
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowMinimap = true
	}
	if *flagMap != "" {
		cfg.World.MapFile = *flagMap
	}
	if *flagWidth > 0 {
		cfg.Display.ScreenWidth = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.ScreenHeight = *flagHeight
	}
}
