package graphics

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"wolfcast/internal/logger"
	"wolfcast/internal/world"
)

// ErrMissingTexture is returned when the grid uses a wall id that has no texture.
var ErrMissingTexture = errors.New("no texture for wall id")

// TextureManager owns the wall textures, all pre-scaled to size x size.
type TextureManager struct {
	size     int
	textures map[world.TextureID]image.Image
}

// NewTextureManager loads the configured textures. A file that cannot be
// read is replaced by a procedural texture and logged; ids that are not
// configured at all stay missing and fail Validate.
func NewTextureManager(size int, paths map[int]string, seed int64) *TextureManager {
	tm := &TextureManager{
		size:     size,
		textures: make(map[world.TextureID]image.Image, len(paths)),
	}

	ids := make([]int, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		tid := world.TextureID(id)
		img, err := LoadImage(paths[id])
		if err != nil {
			logger.Warn("Texture not loaded, using procedural fallback",
				zap.Int("id", id),
				zap.String("path", paths[id]),
				zap.Error(err))
			tm.textures[tid] = ProceduralTexture(size, tid, seed)
			continue
		}
		tm.textures[tid] = ScaleTo(img, size, size)
		logger.Debug("Texture loaded", zap.Int("id", id), zap.String("path", paths[id]))
	}
	return tm
}

// Set installs a texture for an id, scaling it to the texture size.
func (tm *TextureManager) Set(id world.TextureID, img image.Image) {
	tm.textures[id] = ScaleTo(img, tm.size, tm.size)
}

// ImageFor returns the texture for an id, or nil.
func (tm *TextureManager) ImageFor(id world.TextureID) image.Image {
	img, ok := tm.textures[id]
	if !ok {
		return nil
	}
	return img
}

// Size returns the edge length of every texture.
func (tm *TextureManager) Size() int {
	return tm.size
}

// Validate checks that every id the grid uses has a texture.
func (tm *TextureManager) Validate(ids []world.TextureID) error {
	var missing []error
	for _, id := range ids {
		if _, ok := tm.textures[id]; !ok {
			missing = append(missing, fmt.Errorf("%w %d", ErrMissingTexture, id))
		}
	}
	return errors.Join(missing...)
}

// LoadImage decodes an image file.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// ScaleTo resamples src to w x h. Images already at that size are copied
// into RGBA unchanged.
func ScaleTo(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
