// Package rasterize implements the rasterize goal: every SVG below a source
// directory is rendered once per density into
// <output>/<density name>/<identifier>.<ext>.
package rasterize

import (
	"context"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"time"

	"github.com/arthur-debert/drawables/pkg/density"
	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/filesystem"
	"github.com/arthur-debert/drawables/pkg/flatten"
	"github.com/arthur-debert/drawables/pkg/logging"
	"github.com/arthur-debert/drawables/pkg/raster"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/arthur-debert/drawables/pkg/vector"
)

// Goal is the name reported in results
const Goal = "rasterize"

// DefaultType is the raster type used when none is configured
const DefaultType = "png"

// Options defines the options for the rasterize goal.
type Options struct {
	// Source is the directory holding the vector files.
	Source string
	// Output receives one directory per density.
	Output string
	// Type names the raster format; empty means DefaultType.
	Type string
	// Densities defaults to density.Defaults() when empty.
	Densities []types.Density
	// Background and Quality tune formats without alpha.
	Background color.Color
	Quality    int
	// MaxPixels caps width*height of one render; zero means
	// vector.DefaultMaxPixels.
	MaxPixels int64
	// Walk carries the flattener settings (ignore patterns, depth, collisions).
	Walk flatten.Options
	// DryRun plans the renders without writing.
	DryRun bool
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
	// Parser and Transcoder replace the SVG collaborators (optional).
	Parser     vector.Parser
	Transcoder vector.Transcoder
}

// Run renders every document at every density
func Run(ctx context.Context, opts Options) (*types.Result, error) {
	log, _ := logging.WithRunID(logging.GetLogger("rasterize"))
	start := time.Now()

	// configuration is settled before anything is read
	typeName := opts.Type
	if typeName == "" {
		typeName = DefaultType
	}
	enc, err := raster.Lookup(typeName, raster.Options{Background: opts.Background, Quality: opts.Quality})
	if err != nil {
		return nil, err
	}
	densities := opts.Densities
	if len(densities) == 0 {
		densities = density.Defaults()
	}
	if err := density.ValidateAll(densities); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid density table")
	}
	if opts.Source == "" || opts.Output == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "rasterize needs a source and an output directory")
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	parser := opts.Parser
	if parser == nil {
		parser = vector.NewLoader(fs)
	}
	maxPixels := opts.MaxPixels
	if maxPixels <= 0 {
		maxPixels = vector.DefaultMaxPixels
	}
	transcoder := opts.Transcoder
	ext := enc.Extension()
	if transcoder == nil {
		transcoder = vector.NewRenderer(enc).WithMaxPixels(maxPixels)
	}

	if !filesystem.IsDir(fs, opts.Source) {
		return nil, errors.Newf(errors.ErrConfigInvalid, "vector source %s is not a directory", opts.Source).
			WithDetail("path", opts.Source)
	}

	defer logging.LogOperationStart(log, Goal)()
	log.Info().Str("source", opts.Source).Str("output", opts.Output).Str("type", typeName).
		Int("densities", len(densities)).Msg("Rasterizing vectors")

	result := types.NewResult(Goal, opts.DryRun)
	walk := opts.Walk
	walk.Extensions = []string{"svg"}
	walk.StripExtension = true
	walk.Warn = result.Warn

	mapping, err := flatten.New(fs).Flatten(opts.Source, walk)
	if err != nil {
		return nil, err
	}

	for _, id := range mapping.Names() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCanceled, "rasterize canceled")
		}
		source := mapping[id]

		doc, err := parser.Load(source)
		if err != nil {
			return nil, classify(err, errors.ErrTranscode, source)
		}
		w, h := doc.Bounds()
		if w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
			return nil, errors.Newf(errors.ErrTranscode, "%s has no usable width", source).
				WithDetail("source", source)
		}

		for _, d := range densities {
			if err := checkArea(source, d.Scale, w, h, maxPixels); err != nil {
				return nil, err
			}
			width, height := density.TargetSize(d.Scale, w, h)
			dst := filepath.Join(opts.Output, d.Name, id+"."+ext)
			overwrote := filesystem.Exists(fs, dst)

			if !opts.DryRun {
				err := filesystem.WriteAtomic(fs, dst, func(out io.Writer) error {
					if err := transcoder.Transcode(doc, width, height, out); err != nil {
						return classify(err, errors.ErrTranscode, source)
					}
					return nil
				})
				if err != nil {
					return nil, classify(err, errors.ErrFileWrite, source).WithDetail("destination", dst)
				}
			}
			log.Debug().Str("source", source).Str("destination", dst).
				Int("width", width).Int("height", height).Msg("Rendered")
			result.Add(types.Output{
				Source:      source,
				Destination: dst,
				Density:     d.Name,
				Overwrote:   overwrote,
			})
		}
	}

	result.Duration = time.Since(start)
	log.Info().Int("documents", len(mapping)).Int("files", len(result.Outputs)).
		Dur("duration", result.Duration).Msg("Rasterize complete")
	return result, nil
}

// checkArea rejects renders whose canvas would exceed maxPixels. It stays
// in floating point so huge documents never reach integer conversion.
func checkArea(source string, scale, w, h float64, maxPixels int64) error {
	sw := density.Ceil(scale * w)
	sh := sw
	if h > 0 {
		sh = density.Ceil(scale * h)
	}
	area := sw * sh
	if math.IsInf(area, 0) || math.IsNaN(area) || area > float64(maxPixels) {
		return errors.Newf(errors.ErrTranscode, "%s at scale %g needs %.0fx%.0f pixels, more than the limit of %d",
			source, scale, sw, sh, maxPixels).
			WithDetail("source", source).
			WithDetail("limit", maxPixels)
	}
	return nil
}

// classify keeps coded errors, tagging them with source, and wraps
// anything else with code
func classify(err error, code errors.ErrorCode, source string) *errors.DrawablesError {
	if coded, ok := errors.As(err); ok {
		if _, has := coded.Details["source"]; !has {
			coded.WithDetail("source", source)
		}
		return coded
	}
	return errors.Wrapf(err, code, "failed to render %s", source).
		WithDetail("source", source)
}
