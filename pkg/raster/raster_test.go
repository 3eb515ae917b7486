// Test Type: Unit Test
// Description: Tests for the raster type registry and encoders

package raster_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func sample() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	return img
}

func TestLookup_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		ext    string
		format string
	}{
		{"png", "png", "png"},
		{"PNG", "png", "png"},
		{"jpg", "jpg", "jpeg"},
		{"jpeg", "jpg", "jpeg"},
		{"gif", "gif", "gif"},
		{"bmp", "bmp", "bmp"},
		{"tiff", "tiff", "tiff"},
		{"tif", "tiff", "tiff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := raster.Lookup(tt.name, raster.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.ext, enc.Extension())

			var buf bytes.Buffer
			require.NoError(t, enc.Encode(&buf, sample()))

			cfg, format, err := image.DecodeConfig(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, 32, cfg.Width)
			assert.Equal(t, 16, cfg.Height)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := raster.Lookup("webp", raster.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRasterTypeUnknown))
	assert.True(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "webp")
}

func TestJPEG_Background(t *testing.T) {
	bg, err := raster.ParseColor("#00ff00")
	require.NoError(t, err)
	enc, err := raster.Lookup("jpg", raster.Options{Background: bg, Quality: 100})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, sample()))
	img, err := jpeg.Decode(&buf)
	require.NoError(t, err)

	// transparent right half picks up the background
	r, g, b, _ := img.At(28, 8).RGBA()
	assert.Less(t, r>>8, uint32(40))
	assert.Greater(t, g>>8, uint32(215))
	assert.Less(t, b>>8, uint32(40))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"10203080", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, false},
		{"#12345", nil, true},
		{"#zzzzzz", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := raster.ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypes(t *testing.T) {
	assert.Equal(t, []string{"bmp", "gif", "jpeg", "jpg", "png", "tif", "tiff"}, raster.Types())
}
