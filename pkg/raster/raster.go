// Package raster maps raster type names to image encoders.
//
// The registry is a static table; lookups are case-insensitive and an
// unknown name is a configuration error reported before any file is read.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/drawables/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Encoder writes an image in one raster format
type Encoder interface {
	// Extension is the canonical file extension, without the dot
	Extension() string
	Encode(w io.Writer, img image.Image) error
}

// Options tunes encoders that need it
type Options struct {
	// Background fills transparent areas for formats without alpha
	Background color.Color
	// Quality is the JPEG quality, 1-100; zero means jpeg.DefaultQuality
	Quality int
}

// Factory builds an encoder
type Factory func(opts Options) Encoder

var registry = map[string]Factory{
	"png":  func(Options) Encoder { return pngEncoder{} },
	"jpg":  newJPEG,
	"jpeg": newJPEG,
	"gif":  func(Options) Encoder { return gifEncoder{} },
	"bmp":  func(Options) Encoder { return bmpEncoder{} },
	"tiff": func(Options) Encoder { return tiffEncoder{} },
	"tif":  func(Options) Encoder { return tiffEncoder{} },
}

// Lookup returns the encoder registered for name
func Lookup(name string, opts Options) (Encoder, error) {
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Newf(errors.ErrRasterTypeUnknown,
			"unknown raster type %q (supported: %s)", name, strings.Join(Types(), ", ")).
			WithDetail("type", name)
	}
	return factory(opts), nil
}

// Types lists the registered names in sorted order
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseColor reads #rgb, #rrggbb or #rrggbbaa
func ParseColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

type pngEncoder struct{}

func (pngEncoder) Extension() string { return "png" }

func (pngEncoder) Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

type jpegEncoder struct {
	background color.Color
	quality    int
}

func newJPEG(opts Options) Encoder {
	e := jpegEncoder{background: opts.Background, quality: opts.Quality}
	if e.background == nil {
		e.background = color.White
	}
	if e.quality <= 0 || e.quality > 100 {
		e.quality = jpeg.DefaultQuality
	}
	return e
}

func (jpegEncoder) Extension() string { return "jpg" }

func (e jpegEncoder) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, flatten(img, e.background), &jpeg.Options{Quality: e.quality})
}

type gifEncoder struct{}

func (gifEncoder) Extension() string { return "gif" }

func (gifEncoder) Encode(w io.Writer, img image.Image) error {
	return gif.Encode(w, img, &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg})
}

type bmpEncoder struct{}

func (bmpEncoder) Extension() string { return "bmp" }

func (bmpEncoder) Encode(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

type tiffEncoder struct{}

func (tiffEncoder) Extension() string { return "tiff" }

func (tiffEncoder) Encode(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// flatten composites img over an opaque background
func flatten(img image.Image, bg color.Color) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, &image.Uniform{C: bg}, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}
