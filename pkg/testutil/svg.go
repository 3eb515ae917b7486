package testutil

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"testing"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// SVG returns a minimal document with the given root width, height and
// viewBox attributes. Empty attributes are omitted.
func SVG(width, height, viewBox string) string {
	attrs := ""
	if width != "" {
		attrs += fmt.Sprintf(` width=%q`, width)
	}
	if height != "" {
		attrs += fmt.Sprintf(` height=%q`, height)
	}
	if viewBox != "" {
		attrs += fmt.Sprintf(` viewBox=%q`, viewBox)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg"%s>
  <rect x="0" y="0" width="16" height="16" fill="#3366cc"/>
  <circle cx="8" cy="8" r="4" fill="#ffcc00" fill-opacity="0.5"/>
</svg>
`, attrs)
}

// SquareSVG is SVG with equal px width and height and a matching viewBox
func SquareSVG(size int) string {
	s := fmt.Sprintf("%d", size)
	return SVG(s, s, fmt.Sprintf("0 0 %d %d", size, size))
}

// ImageSize decodes the image at path and returns its format and
// dimensions.
func ImageSize(t *testing.T, path string) (string, int, int) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}
	return format, cfg.Width, cfg.Height
}
