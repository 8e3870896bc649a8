package game

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"wolfcast/internal/render"
)

// ScreenshotCapture writes rendered frames to PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// CaptureFrame renders the frame in software and saves it under a
// timestamped name.
func (sc *ScreenshotCapture) CaptureFrame(f *Frame) (string, error) {
	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	filename := sc.GenerateFilename()
	if err := RenderToFile(f, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// RenderToFile renders one frame headless and writes it as a PNG.
func RenderToFile(f *Frame, path string) error {
	proj := f.Projection()
	sink := render.NewImageSink(proj.Width, proj.Height)
	f.Render(sink)
	return SavePNG(sink.Image(), path)
}

// SavePNG encodes img to path.
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
