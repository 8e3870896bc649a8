package world

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed levels/default.yaml
var defaultLevel []byte

// PlayerStart is the pose the player spawns with.
type PlayerStart struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// SpritePlacement places a billboard sprite in the level. Kind names the
// image (or frame directory) the sprite is resolved to at load time.
type SpritePlacement struct {
	Kind        string  `yaml:"kind"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Scale       float64 `yaml:"scale"`
	Shift       float64 `yaml:"shift"`
	Animated    bool    `yaml:"animated"`
	AnimationMS int     `yaml:"animation_ms"`
}

// levelFile is the on-disk level layout.
type levelFile struct {
	Name    string            `yaml:"name"`
	Player  PlayerStart       `yaml:"player"`
	Layout  []string          `yaml:"layout"`
	Sprites []SpritePlacement `yaml:"sprites"`
}

// Level is a loaded level: the grid plus everything placed on it.
type Level struct {
	Name    string
	Grid    *GridMap
	Start   PlayerStart
	Sprites []SpritePlacement
}

var (
	ErrEmptyLayout  = errors.New("level layout is empty")
	ErrRaggedLayout = errors.New("level layout rows differ in width")
	ErrBadCell      = errors.New("unknown layout character")
	ErrStartInWall  = errors.New("player start is inside a wall")
	ErrSpriteInWall = errors.New("sprite is inside a wall")
	ErrSpriteNoKind = errors.New("sprite has no kind")
)

// Sprite defaults match the classic candlebra placement
const (
	defaultSpriteScale = 0.7
	defaultAnimationMS = 120
)

// LoadLevel loads a level from the specified YAML file path
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level file %s: %w", path, err)
	}
	level, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return level, nil
}

// DefaultLevel returns the level compiled into the binary.
func DefaultLevel() *Level {
	level, err := ParseLevel(defaultLevel)
	if err != nil {
		panic("embedded level is invalid: " + err.Error())
	}
	return level
}

// ParseLevel decodes and validates a level document.
func ParseLevel(data []byte) (*Level, error) {
	var lf levelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}

	rows, err := parseLayout(lf.Layout)
	if err != nil {
		return nil, err
	}
	grid := NewGridMap(rows)

	if !grid.IsOpenAt(lf.Player.X, lf.Player.Y) {
		return nil, fmt.Errorf("%w: (%.2f, %.2f)", ErrStartInWall, lf.Player.X, lf.Player.Y)
	}

	sprites := make([]SpritePlacement, 0, len(lf.Sprites))
	for i, sp := range lf.Sprites {
		if sp.Kind == "" {
			return nil, fmt.Errorf("sprite %d: %w", i, ErrSpriteNoKind)
		}
		if !grid.IsOpenAt(sp.X, sp.Y) {
			return nil, fmt.Errorf("sprite %d (%s): %w", i, sp.Kind, ErrSpriteInWall)
		}
		if sp.Scale == 0 {
			sp.Scale = defaultSpriteScale
		}
		if sp.Animated && sp.AnimationMS <= 0 {
			sp.AnimationMS = defaultAnimationMS
		}
		sprites = append(sprites, sp)
	}

	return &Level{
		Name:    lf.Name,
		Grid:    grid,
		Start:   lf.Player,
		Sprites: sprites,
	}, nil
}

// parseLayout turns layout strings into texture id rows. '.', '_' and ' '
// are open cells, '1'..'9' are wall textures.
func parseLayout(lines []string) ([][]TextureID, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyLayout
	}

	width := len(lines[0])
	rows := make([][]TextureID, len(lines))
	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("%w: line %d has width %d, expected %d", ErrRaggedLayout, y+1, len(line), width)
		}
		row := make([]TextureID, width)
		for x, ch := range []byte(line) {
			switch {
			case ch == '.' || ch == '_' || ch == ' ':
				row[x] = 0
			case ch >= '1' && ch <= '9':
				row[x] = TextureID(ch - '0')
			default:
				return nil, fmt.Errorf("%w %q at (%d, %d)", ErrBadCell, ch, x, y)
			}
		}
		rows[y] = row
	}
	return rows, nil
}

// Layout renders the grid back into layout strings, mainly for debugging.
func (g *GridMap) Layout() []string {
	lines := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var b strings.Builder
		for x := 0; x < g.width; x++ {
			if id, ok := g.TextureAt(Cell{X: x, Y: y}); ok && id < 10 {
				b.WriteByte(byte('0' + id))
			} else {
				b.WriteByte('.')
			}
		}
		lines[y] = b.String()
	}
	return lines
}
