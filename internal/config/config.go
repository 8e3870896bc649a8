package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Graphics GraphicsConfig `yaml:"graphics"`
	World    WorldConfig    `yaml:"world"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TargetTPS    int    `yaml:"target_tps"`
}

type CameraConfig struct {
	FieldOfView float64 `yaml:"field_of_view"` // radians
	MaxDepth    int     `yaml:"max_depth"`     // grid cells
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`     // cells per second
	RotationSpeed    float64 `yaml:"rotation_speed"` // radians per second
	CollisionScale   float64 `yaml:"collision_scale"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	MouseLook        bool    `yaml:"mouse_look"`
}

type GraphicsConfig struct {
	RaysPerScreenWidth int            `yaml:"rays_per_screen_width"` // columns per ray
	TextureSize        int            `yaml:"texture_size"`
	Textures           map[int]string `yaml:"textures"`
	SkyTexture         string         `yaml:"sky_texture"`
	SkyScroll          float64        `yaml:"sky_scroll"` // pixels per radian of rotation
	SpriteDir          string         `yaml:"sprite_dir"`
	Colors             ColorsConfig   `yaml:"colors"`
	ShowMinimap        bool           `yaml:"show_minimap"`
}

type ColorsConfig struct {
	Sky   [3]int `yaml:"sky"`
	Floor [3]int `yaml:"floor"`
}

type WorldConfig struct {
	MapFile string `yaml:"map_file"` // empty means the embedded default level
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

var GlobalConfig *Config

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1600,
			ScreenHeight: 900,
			WindowTitle:  "wolfcast",
			Resizable:    false,
			TargetTPS:    60,
		},
		Camera: CameraConfig{
			FieldOfView: math.Pi / 3,
			MaxDepth:    20,
		},
		Movement: MovementConfig{
			MoveSpeed:        4.0,
			RotationSpeed:    2.0,
			CollisionScale:   0.06,
			MouseSensitivity: 0.0003,
		},
		Graphics: GraphicsConfig{
			RaysPerScreenWidth: 2,
			TextureSize:        256,
			Textures: map[int]string{
				1: "assets/textures/1.png",
				2: "assets/textures/2.png",
				3: "assets/textures/3.png",
				4: "assets/textures/4.png",
				5: "assets/textures/5.png",
			},
			SkyTexture: "assets/textures/sky.png",
			SkyScroll:  4.5 * 60,
			SpriteDir:  "assets/sprites",
			Colors: ColorsConfig{
				Sky:   [3]int{90, 140, 200},
				Floor: [3]int{30, 30, 30},
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", filename, err)
	}

	// Set global config for easy access
	GlobalConfig = cfg

	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

var (
	ErrInvalidScreen = errors.New("screen size must be positive")
	ErrInvalidFOV    = errors.New("field of view must be in (0, pi)")
	ErrInvalidScale  = errors.New("rays_per_screen_width must be in [1, screen_width]")
)

// Validate checks the values the projection math depends on.
func (c *Config) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidScreen, c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= math.Pi {
		return fmt.Errorf("%w: %.4f", ErrInvalidFOV, c.Camera.FieldOfView)
	}
	if c.Graphics.RaysPerScreenWidth < 1 || c.Graphics.RaysPerScreenWidth > c.Display.ScreenWidth {
		return fmt.Errorf("%w: %d", ErrInvalidScale, c.Graphics.RaysPerScreenWidth)
	}
	if c.Camera.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.Camera.MaxDepth)
	}
	if c.Graphics.TextureSize < c.Graphics.RaysPerScreenWidth {
		return fmt.Errorf("texture_size %d smaller than ray width %d", c.Graphics.TextureSize, c.Graphics.RaysPerScreenWidth)
	}
	if c.Movement.MoveSpeed < 0 || c.Movement.RotationSpeed < 0 {
		return errors.New("movement speeds must not be negative")
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetCameraFOV() float64 {
	return c.Camera.FieldOfView
}

// SkyColor returns the configured sky fallback colour.
func (c *Config) SkyColor() color.RGBA {
	return rgb(c.Graphics.Colors.Sky)
}

// FloorColor returns the configured floor colour.
func (c *Config) FloorColor() color.RGBA {
	return rgb(c.Graphics.Colors.Floor)
}

func rgb(v [3]int) color.RGBA {
	clamp := func(x int) uint8 {
		if x < 0 {
			return 0
		}
		if x > 255 {
			return 255
		}
		return uint8(x)
	}
	return color.RGBA{R: clamp(v[0]), G: clamp(v[1]), B: clamp(v[2]), A: 255}
}
