package graphics

import (
	"hash/fnv"
	"image"
	"image/color"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"wolfcast/internal/logger"
)

const (
	placeholderWidth  = 64
	placeholderHeight = 128
	placeholderFrames = 3
)

// SpriteManager resolves sprite kinds to images. Static sprites live in
// <dir>/static_sprites/<kind>.png and animated ones in
// <dir>/animated_sprites/<kind>/<n>.png. Missing files get a placeholder.
type SpriteManager struct {
	dir     string
	sprites map[string]image.Image
	frames  map[string][]image.Image
}

func NewSpriteManager(dir string) *SpriteManager {
	return &SpriteManager{
		dir:     dir,
		sprites: make(map[string]image.Image),
		frames:  make(map[string][]image.Image),
	}
}

// GetSprite returns the static image for a kind.
func (sm *SpriteManager) GetSprite(kind string) image.Image {
	if sprite, exists := sm.sprites[kind]; exists {
		return sprite
	}

	searchPaths := []string{
		filepath.Join(sm.dir, "static_sprites", kind+".png"),
		filepath.Join(sm.dir, kind+".png"),
	}
	for _, path := range searchPaths {
		img, err := LoadImage(path)
		if err == nil {
			sm.sprites[kind] = img
			return img
		}
	}

	logger.Debug("Sprite not found, using placeholder", zap.String("kind", kind))
	img := createPlaceholder(kind, 1)
	sm.sprites[kind] = img
	return img
}

// GetFrames returns the animation frames for a kind in numeric file order.
func (sm *SpriteManager) GetFrames(kind string) []image.Image {
	if frames, exists := sm.frames[kind]; exists {
		return frames
	}

	paths, _ := filepath.Glob(filepath.Join(sm.dir, "animated_sprites", kind, "*.png"))
	sortFramePaths(paths)

	var frames []image.Image
	for _, path := range paths {
		img, err := LoadImage(path)
		if err != nil {
			logger.Warn("Skipping unreadable frame", zap.String("path", path), zap.Error(err))
			continue
		}
		frames = append(frames, img)
	}

	if len(frames) == 0 {
		logger.Debug("Animation not found, using placeholder frames", zap.String("kind", kind))
		for i := 0; i < placeholderFrames; i++ {
			frames = append(frames, createPlaceholder(kind, 0.6+0.2*float64(i)))
		}
	}

	sm.frames[kind] = frames
	return frames
}

// sortFramePaths orders 0.png, 1.png, ..., 10.png numerically; names that
// are not numbers sort after, alphabetically.
func sortFramePaths(paths []string) {
	num := func(p string) (int, bool) {
		n, err := strconv.Atoi(strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)))
		return n, err == nil
	}
	sort.SliceStable(paths, func(i, j int) bool {
		a, aok := num(paths[i])
		b, bok := num(paths[j])
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return paths[i] < paths[j]
		}
	})
}

// createPlaceholder draws a lamp-like post: a thin stem with a glowing head
// coloured from the kind name, on a transparent background.
func createPlaceholder(kind string, brightness float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, placeholderWidth, placeholderHeight))

	h := fnv.New32a()
	h.Write([]byte(kind))
	sum := h.Sum32()
	head := shade(color.RGBA{
		R: 96 + uint8(sum%160),
		G: 96 + uint8((sum>>8)%160),
		B: 96 + uint8((sum>>16)%160),
		A: 255,
	}, brightness)
	stem := color.RGBA{R: 70, G: 60, B: 50, A: 255}

	cx := placeholderWidth / 2
	headR := placeholderWidth / 4
	headY := placeholderHeight / 4
	for y := 0; y < placeholderHeight; y++ {
		for x := 0; x < placeholderWidth; x++ {
			dx, dy := x-cx, y-headY
			switch {
			case dx*dx+dy*dy <= headR*headR:
				img.SetRGBA(x, y, head)
			case y > headY && x >= cx-3 && x <= cx+3:
				img.SetRGBA(x, y, stem)
			case y >= placeholderHeight-6 && x >= cx-12 && x <= cx+12:
				img.SetRGBA(x, y, stem)
			}
		}
	}
	return img
}
