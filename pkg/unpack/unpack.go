package unpack

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/drawables/pkg/density"
	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/filesystem"
	"github.com/arthur-debert/drawables/pkg/logging"
	"github.com/arthur-debert/drawables/pkg/resolve"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/rs/zerolog"
)

// Goal is the name reported in results
const Goal = "unpack"

// DefaultExtensions is the unpack allowlist
var DefaultExtensions = []string{"png", "jpg", "gif"}

// Options defines the options for the unpack goal.
type Options struct {
	// Artifacts are the dependencies to unpack, in order.
	Artifacts []types.Coordinate
	// Output is the root of the extracted tree.
	Output string
	// Extensions overrides DefaultExtensions when non-empty.
	Extensions []string
	// Resolver maps coordinates to locations (required).
	Resolver resolve.Resolver
	// DryRun resolves and lists entries without writing.
	DryRun bool
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

type resolved struct {
	coordinate types.Coordinate
	location   types.Location
}

type unpacker struct {
	fs     types.FS
	opts   Options
	exts   []string
	result *types.Result
	log    zerolog.Logger
}

// Run resolves every artifact and extracts its images into Output
func Run(ctx context.Context, opts Options) (*types.Result, error) {
	log, _ := logging.WithRunID(logging.GetLogger("unpack"))
	start := time.Now()

	if opts.Resolver == nil {
		return nil, errors.New(errors.ErrInvalidInput, "unpack needs a resolver")
	}
	if opts.Output == "" && len(opts.Artifacts) > 0 {
		return nil, errors.New(errors.ErrConfigInvalid, "unpack output directory is required")
	}
	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	defer logging.LogOperationStart(log, Goal)()
	log.Info().Int("artifacts", len(opts.Artifacts)).Str("output", opts.Output).Bool("dryRun", opts.DryRun).Msg("Unpacking drawables")

	locations := make([]resolved, 0, len(opts.Artifacts))
	for _, c := range opts.Artifacts {
		loc, err := opts.Resolver.Resolve(ctx, c)
		if err != nil {
			return nil, resolve.Classify(err, c)
		}
		log.Debug().Str("coordinate", c.String()).Str("path", loc.Path).Bool("dir", loc.IsDir).Msg("Resolved")
		locations = append(locations, resolved{coordinate: c, location: loc})
	}

	result := types.NewResult(Goal, opts.DryRun)
	if len(locations) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	if !opts.DryRun {
		if err := fs.MkdirAll(opts.Output, filesystem.DirPerm); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create output directory %s", opts.Output).
				WithDetail("path", opts.Output)
		}
	}

	u := &unpacker{fs: fs, opts: opts, exts: exts, result: result, log: log}
	for _, r := range locations {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCanceled, "unpack canceled")
		}
		var err error
		if r.location.IsDir {
			err = u.directory(ctx, r)
		} else {
			err = u.archive(ctx, r)
		}
		if err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	log.Info().Int("files", len(result.Outputs)).Dur("duration", result.Duration).Msg("Unpack complete")
	return result, nil
}

// archive extracts allowlisted entries of the zip at r.location
func (u *unpacker) archive(ctx context.Context, r resolved) error {
	src := r.location.Path
	f, err := u.fs.Open(src)
	if err != nil {
		return archiveErr(err, r, "failed to open %s", src)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return archiveErr(err, r, "failed to stat %s", src)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return archiveErr(err, r, "failed to read archive %s", src)
	}

	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrCanceled, "unpack canceled")
		}
		if entry.FileInfo().IsDir() || strings.HasSuffix(entry.Name, "/") {
			continue
		}
		if _, ok := types.HasExtension(entry.Name, u.exts); !ok {
			u.log.Trace().Str("entry", entry.Name).Msg("Extension not allowed, skipping")
			continue
		}
		name := path.Clean(strings.ReplaceAll(entry.Name, `\`, "/"))
		if !filepath.IsLocal(filepath.FromSlash(name)) {
			return errors.Newf(errors.ErrArchiveRead, "entry %q of %s escapes the output directory", entry.Name, src).
				WithDetail("coordinate", r.coordinate.String()).
				WithDetail("entry", entry.Name)
		}

		dst := filepath.Join(u.opts.Output, filepath.FromSlash(name))
		source := src + "!" + entry.Name
		if err := u.write(source, dst, r, func(w io.Writer) error { return copyEntry(entry, w) }); err != nil {
			return err
		}
	}
	return nil
}

func copyEntry(entry *zip.File, w io.Writer) error {
	rc, err := entry.Open()
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveRead, "failed to open entry %s", entry.Name)
	}
	defer rc.Close()

	if _, err := io.Copy(w, rc); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveRead, "failed to read entry %s", entry.Name)
	}
	return nil
}

// directory copies res/drawable-<bucket>/* of a workspace module
func (u *unpacker) directory(ctx context.Context, r resolved) error {
	for _, bucket := range density.Buckets {
		rel := filepath.Join("res", density.DirName(bucket))
		dir := filepath.Join(r.location.Path, rel)
		entries, err := u.fs.ReadDir(dir)
		if err != nil {
			u.log.Debug().Str("dir", dir).Msg("Density directory absent")
			continue
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, errors.ErrCanceled, "unpack canceled")
			}
			if entry.IsDir() {
				continue
			}
			if _, ok := types.HasExtension(entry.Name(), u.exts); !ok {
				continue
			}
			src := filepath.Join(dir, entry.Name())
			dst := filepath.Join(u.opts.Output, rel, entry.Name())
			err := u.write(src, dst, r, func(w io.Writer) error {
				in, err := u.fs.Open(src)
				if err != nil {
					return errors.Wrapf(err, errors.ErrArchiveRead, "failed to open %s", src)
				}
				defer in.Close()
				if _, err := io.Copy(w, in); err != nil {
					return errors.Wrapf(err, errors.ErrArchiveRead, "failed to read %s", src)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// write streams one file to dst, warning when it replaces an existing one
func (u *unpacker) write(source, dst string, r resolved, copyTo func(io.Writer) error) error {
	overwrote := filesystem.Exists(u.fs, dst)
	if overwrote {
		u.log.Warn().Str("destination", dst).Str("source", source).Msg("Overwriting existing file")
		u.result.Warn(fmt.Sprintf("%s overwritten by %s", dst, source))
	}

	if !u.opts.DryRun {
		if err := filesystem.WriteAtomic(u.fs, dst, copyTo); err != nil {
			if coded, ok := errors.As(err); ok {
				return coded.WithDetail("coordinate", r.coordinate.String())
			}
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst).
				WithDetail("coordinate", r.coordinate.String()).
				WithDetail("destination", dst)
		}
	}

	u.log.Debug().Str("source", source).Str("destination", dst).Msg("Unpacked")
	u.result.Add(types.Output{Source: source, Destination: dst, Overwrote: overwrote})
	return nil
}

func archiveErr(err error, r resolved, format string, args ...interface{}) *errors.DrawablesError {
	return errors.Wrapf(err, errors.ErrArchiveRead, format, args...).
		WithDetail("coordinate", r.coordinate.String()).
		WithDetail("path", r.location.Path)
}
