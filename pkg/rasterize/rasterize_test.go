// Test Type: Unit Test
// Description: Tests for the rasterize goal

package rasterize_test

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/filesystem"
	"github.com/arthur-debert/drawables/pkg/rasterize"
	"github.com/arthur-debert/drawables/pkg/testutil"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/arthur-debert/drawables/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeParser reports fixed sizes without reading the file
type fakeParser struct {
	sizes map[string][2]float64
	loads []string
}

func (p *fakeParser) Load(path string) (*vector.Document, error) {
	p.loads = append(p.loads, path)
	size, ok := p.sizes[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("cannot parse")
	}
	return vector.NewDocument(path, size[0], size[1]), nil
}

type render struct {
	source        string
	width, height int
}

type fakeTranscoder struct {
	renders []render
	fail    bool
}

func (tr *fakeTranscoder) Transcode(doc *vector.Document, width, height int, w io.Writer) error {
	if tr.fail {
		return fmt.Errorf("renderer exploded")
	}
	tr.renders = append(tr.renders, render{doc.Source, width, height})
	_, err := fmt.Fprintf(w, "%dx%d", width, height)
	return err
}

func TestRun_UnknownTypeBeforeIO(t *testing.T) {
	parser := &fakeParser{}
	_, err := rasterize.Run(context.Background(), rasterize.Options{
		Source:     "/does/not/exist",
		Output:     "/out",
		Type:       "webp",
		FileSystem: testutil.NewTestFS(),
		Parser:     parser,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRasterTypeUnknown))
	assert.Empty(t, parser.loads)
}

func TestRun_ConfigErrors(t *testing.T) {
	fs := testutil.NewTestFS()
	tests := []struct {
		name string
		opts rasterize.Options
	}{
		{"missing source", rasterize.Options{Output: "/out"}},
		{"missing output", rasterize.Options{Source: "/svg"}},
		{"source not a directory", rasterize.Options{Source: "/nope", Output: "/out"}},
		{"bad density", rasterize.Options{Source: "/svg", Output: "/out", Densities: []types.Density{{Name: "x", Scale: 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.FileSystem = fs
			_, err := rasterize.Run(context.Background(), tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err), err.Error())
		})
	}
}

func TestRun_WidthsPerDensity(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/svg", testutil.FileTree{
		"logo.svg":  "",
		"odd.svg":   "",
		"Nav":       testutil.FileTree{"Back.SVG": ""},
		"readme.md": "not a vector",
	})
	parser := &fakeParser{sizes: map[string][2]float64{
		"logo.svg": {100, 50},
		"odd.svg":  {101, 0},
		"Back.SVG": {24, 24},
	}}
	tr := &fakeTranscoder{}

	result, err := rasterize.Run(context.Background(), rasterize.Options{
		Source:     "/svg",
		Output:     "/res",
		FileSystem: fs,
		Parser:     parser,
		Transcoder: tr,
	})
	require.NoError(t, err)

	// each document is parsed once
	assert.Len(t, parser.loads, 3)
	assert.Len(t, result.Outputs, 12)

	assert.Equal(t, "75x38", testutil.ReadFS(t, fs, "/res/drawable-ldpi/logo.png"))
	assert.Equal(t, "100x50", testutil.ReadFS(t, fs, "/res/drawable-mdpi/logo.png"))
	assert.Equal(t, "150x75", testutil.ReadFS(t, fs, "/res/drawable-hdpi/logo.png"))
	assert.Equal(t, "200x100", testutil.ReadFS(t, fs, "/res/drawable-xhdpi/logo.png"))
	assert.Equal(t, "76x76", testutil.ReadFS(t, fs, "/res/drawable-ldpi/odd.png"))
	assert.Equal(t, "36x36", testutil.ReadFS(t, fs, "/res/drawable-hdpi/Nav_back.png"))
	assert.False(t, filesystem.Exists(fs, "/res/drawable-mdpi/readme.png"))
}

func TestRun_CustomDensitiesAndType(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/svg", testutil.FileTree{"a.svg": ""})
	tr := &fakeTranscoder{}

	result, err := rasterize.Run(context.Background(), rasterize.Options{
		Source:     "/svg",
		Output:     "/res",
		Type:       "JPEG",
		Densities:  []types.Density{{Name: "mipmap-xxhdpi", Scale: 3}},
		FileSystem: fs,
		Parser:     &fakeParser{sizes: map[string][2]float64{"a.svg": {48, 48}}},
		Transcoder: tr,
	})
	require.NoError(t, err)
	require.Len(t, result.Outputs, 1)
	assert.Equal(t, "/res/mipmap-xxhdpi/a.jpg", result.Outputs[0].Destination)
	assert.Equal(t, []render{{"/svg/a.svg", 144, 144}}, tr.renders)
}

func TestRun_Failures(t *testing.T) {
	setup := func(t *testing.T) types.FS {
		fs := testutil.NewTestFS()
		testutil.WriteTree(t, fs, "/svg", testutil.FileTree{"broken.svg": "", "zero.svg": ""})
		return fs
	}

	t.Run("parse failure names source", func(t *testing.T) {
		_, err := rasterize.Run(context.Background(), rasterize.Options{
			Source: "/svg", Output: "/res", FileSystem: setup(t),
			Parser:     &fakeParser{sizes: map[string][2]float64{"zero.svg": {10, 10}}},
			Transcoder: &fakeTranscoder{},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTranscode))
		assert.Equal(t, "/svg/broken.svg", errors.GetErrorDetails(err)["source"])
	})

	t.Run("zero width", func(t *testing.T) {
		_, err := rasterize.Run(context.Background(), rasterize.Options{
			Source: "/svg", Output: "/res", FileSystem: setup(t),
			Parser:     &fakeParser{sizes: map[string][2]float64{"broken.svg": {10, 10}, "zero.svg": {0, 10}}},
			Transcoder: &fakeTranscoder{},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTranscode))
		assert.Contains(t, err.Error(), "zero.svg")
	})

	t.Run("transcode failure leaves no file", func(t *testing.T) {
		fs := setup(t)
		_, err := rasterize.Run(context.Background(), rasterize.Options{
			Source: "/svg", Output: "/res", FileSystem: fs,
			Parser:     &fakeParser{sizes: map[string][2]float64{"broken.svg": {10, 10}, "zero.svg": {10, 10}}},
			Transcoder: &fakeTranscoder{fail: true},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTranscode))
		assert.Equal(t, "/svg/broken.svg", errors.GetErrorDetails(err)["source"])
		entries, _ := fs.ReadDir("/res/drawable-ldpi")
		assert.Empty(t, entries)
	})
}

func TestRun_OversizedTarget(t *testing.T) {
	t.Run("huge document fails without writing", func(t *testing.T) {
		src := t.TempDir()
		out := t.TempDir()
		testutil.CreateFile(t, src, "huge.svg", testutil.SVG("2000000000", "2000000000", ""))

		_, err := rasterize.Run(context.Background(), rasterize.Options{Source: src, Output: out})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTranscode))
		assert.Equal(t, filepath.Join(src, "huge.svg"), errors.GetErrorDetails(err)["source"])
		assert.NoFileExists(t, filepath.Join(out, "drawable-ldpi", "huge.png"))
	})

	t.Run("configured limit", func(t *testing.T) {
		fs := testutil.NewTestFS()
		testutil.WriteTree(t, fs, "/svg", testutil.FileTree{"a.svg": ""})
		tr := &fakeTranscoder{}

		_, err := rasterize.Run(context.Background(), rasterize.Options{
			Source: "/svg", Output: "/res", FileSystem: fs, MaxPixels: 100,
			Parser:     &fakeParser{sizes: map[string][2]float64{"a.svg": {10, 10}}},
			Transcoder: tr,
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTranscode))
		assert.Equal(t, int64(100), errors.GetErrorDetails(err)["limit"])
		// ldpi (8x8) and mdpi (10x10) fit, hdpi (15x15) does not
		assert.Equal(t, []render{{"/svg/a.svg", 8, 8}, {"/svg/a.svg", 10, 10}}, tr.renders)
	})
}

func TestRun_DryRun(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.WriteTree(t, fs, "/svg", testutil.FileTree{"a.svg": ""})
	tr := &fakeTranscoder{}

	result, err := rasterize.Run(context.Background(), rasterize.Options{
		Source: "/svg", Output: "/res", DryRun: true, FileSystem: fs,
		Parser:     &fakeParser{sizes: map[string][2]float64{"a.svg": {10, 10}}},
		Transcoder: tr,
	})
	require.NoError(t, err)
	assert.Len(t, result.Outputs, 4)
	assert.Empty(t, tr.renders)
	assert.False(t, filesystem.Exists(fs, "/res"))
}

func TestRun_EndToEnd(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testutil.CreateFile(t, src, "icons/star.svg", testutil.SVG("100", "50", "0 0 16 16"))
	testutil.CreateFile(t, src, "dot.svg", testutil.SquareSVG(16))

	_, err := rasterize.Run(context.Background(), rasterize.Options{Source: src, Output: out})
	require.NoError(t, err)

	tests := []struct {
		path          string
		width, height int
	}{
		{"drawable-ldpi/icons_star.png", 75, 38},
		{"drawable-mdpi/icons_star.png", 100, 50},
		{"drawable-hdpi/icons_star.png", 150, 75},
		{"drawable-xhdpi/icons_star.png", 200, 100},
		{"drawable-ldpi/dot.png", 12, 12},
		{"drawable-xhdpi/dot.png", 32, 32},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, w, h := testutil.ImageSize(t, filepath.Join(out, tt.path))
			assert.Equal(t, "png", format)
			assert.Equal(t, tt.width, w)
			assert.Equal(t, tt.height, h)
		})
	}
}
