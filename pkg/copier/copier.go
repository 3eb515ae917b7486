package copier

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arthur-debert/drawables/pkg/density"
	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/filesystem"
	"github.com/arthur-debert/drawables/pkg/flatten"
	"github.com/arthur-debert/drawables/pkg/logging"
	"github.com/arthur-debert/drawables/pkg/types"
)

// Goal is the name reported in results
const Goal = "copy"

// DefaultExtensions is the copy allowlist
var DefaultExtensions = []string{"png", "jpg", "gif"}

// Options defines the options for the copy goal.
type Options struct {
	// Roots are the resource directories holding bucket subdirectories.
	Roots []string
	// Output is the directory receiving drawable-<bucket> directories.
	Output string
	// Extensions overrides DefaultExtensions when non-empty.
	Extensions []string
	// Walk carries the flattener settings (ignore patterns, depth, collisions).
	Walk flatten.Options
	// DryRun plans the copies without touching the filesystem.
	DryRun bool
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Run copies every bucket of every root into Output
func Run(ctx context.Context, opts Options) (*types.Result, error) {
	log, _ := logging.WithRunID(logging.GetLogger("copier"))
	start := time.Now()

	if opts.Output == "" && len(opts.Roots) > 0 {
		return nil, errors.New(errors.ErrConfigInvalid, "copy output directory is required")
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	walk := opts.Walk
	walk.Extensions = opts.Extensions
	if len(walk.Extensions) == 0 {
		walk.Extensions = DefaultExtensions
	}
	walk.StripExtension = false

	result := types.NewResult(Goal, opts.DryRun)
	walk.Warn = result.Warn
	defer logging.LogOperationStart(log, Goal)()
	log.Info().Int("roots", len(opts.Roots)).Str("output", opts.Output).Bool("dryRun", opts.DryRun).Msg("Copying drawables")

	flattener := flatten.New(fs)
	for _, root := range opts.Roots {
		found := 0
		for _, bucket := range density.Buckets {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, errors.ErrCanceled, "copy canceled")
			}

			src := filepath.Join(root, bucket)
			if !filesystem.IsDir(fs, src) {
				log.Debug().Str("dir", src).Msg("Bucket directory absent")
				continue
			}
			found++

			mapping, err := flattener.Flatten(src, walk)
			if err != nil {
				return nil, err
			}

			outDir := filepath.Join(opts.Output, density.DirName(bucket))
			for _, name := range mapping.Names() {
				if err := ctx.Err(); err != nil {
					return nil, errors.Wrap(err, errors.ErrCanceled, "copy canceled")
				}
				source := mapping[name]
				dst := filepath.Join(outDir, name)
				overwrote := filesystem.Exists(fs, dst)

				if !opts.DryRun {
					if err := filesystem.CopyFile(fs, source, dst); err != nil {
						return nil, errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", source).
							WithDetail("source", source).
							WithDetail("destination", dst)
					}
				}
				log.Debug().Str("source", source).Str("destination", dst).Bool("dryRun", opts.DryRun).Msg("Copied file")
				result.Add(types.Output{
					Source:      source,
					Destination: dst,
					Density:     density.DirName(bucket),
					Overwrote:   overwrote,
				})
			}
		}

		if found == 0 {
			log.Info().Str("root", root).Msg("No density directories found, skipping root")
			result.Warn(fmt.Sprintf("%s has no density directories", root))
		}
	}

	result.Duration = time.Since(start)
	log.Info().Int("files", len(result.Outputs)).Dur("duration", result.Duration).Msg("Copy complete")
	return result, nil
}
