package flatten

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/logging"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator joins directory segments in a flattened name
const Separator = "_"

// DefaultMaxDepth bounds directory nesting below the root
const DefaultMaxDepth = 64

// CollisionPolicy decides what happens when two sources flatten to the same name
type CollisionPolicy string

const (
	// CollisionError fails the walk naming both sources
	CollisionError CollisionPolicy = "error"
	// CollisionOverwrite keeps the later-visited source
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// ParseCollisionPolicy parses a policy name; empty means CollisionError
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(s)) {
	case "", CollisionError:
		return CollisionError, nil
	case CollisionOverwrite:
		return CollisionOverwrite, nil
	}
	return "", fmt.Errorf("unknown collision policy %q (want %q or %q)", s, CollisionError, CollisionOverwrite)
}

// Options configures a walk
type Options struct {
	// Extensions is the case-insensitive allowlist, without dots
	Extensions []string
	// StripExtension drops the matched extension from output names
	StripExtension bool
	// Ignore holds doublestar patterns matched against the slash-separated
	// path relative to the root
	Ignore []string
	// MaxDepth bounds nesting; zero means DefaultMaxDepth
	MaxDepth int
	// OnCollision defaults to CollisionError
	OnCollision CollisionPolicy
	// Warn receives non-fatal conditions such as skipped link cycles
	Warn func(msg string)
}

// Mapping maps flattened output names to source paths
type Mapping map[string]string

// Names returns the output names in sorted order
func (m Mapping) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flattener walks directory trees through a types.FS
type Flattener struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Flattener
func New(fsys types.FS) *Flattener {
	return &Flattener{
		fs:     fsys,
		logger: logging.GetLogger("flatten"),
	}
}

// frame is one pending directory on the work stack
type frame struct {
	dir    string
	rel    string // slash-separated path relative to the root
	prefix string
	depth  int
}

// Flatten walks root and returns the mapping of output names to sources.
// A root or subdirectory that cannot be listed contributes nothing.
func (f *Flattener) Flatten(root string, opts Options) (Mapping, error) {
	if root == "" {
		return nil, errors.New(errors.ErrInvalidInput, "flatten root is required")
	}
	if len(opts.Extensions) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "flatten needs at least one extension")
	}
	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid ignore pattern %q", pattern)
		}
	}
	policy := opts.OnCollision
	if policy == "" {
		policy = CollisionError
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	lower := cases.Lower(language.Und)
	result := make(Mapping)
	visited := make(map[string]bool)
	stack := []frame{{dir: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if canonical, err := f.fs.RealPath(top.dir); err == nil {
			if visited[canonical] {
				f.logger.Warn().Str("dir", top.dir).Str("canonical", canonical).Msg("Directory already visited, skipping link cycle")
				opts.warn(fmt.Sprintf("skipped %s: already visited as %s", top.dir, canonical))
				continue
			}
			visited[canonical] = true
		}

		entries, err := f.fs.ReadDir(top.dir)
		if err != nil {
			f.logger.Debug().Err(err).Str("dir", top.dir).Msg("Cannot list directory, treating as empty")
			continue
		}

		// Directories found here are pushed in reverse so they pop in
		// listing order, keeping the walk depth-first and sorted.
		var subdirs []frame
		for _, entry := range entries {
			name := entry.Name()
			full := filepath.Join(top.dir, name)
			rel := path.Join(top.rel, name)

			if f.ignored(rel, opts.Ignore) {
				f.logger.Debug().Str("path", full).Msg("Ignored by pattern")
				continue
			}

			isDir := entry.IsDir()
			isRegular := entry.Type().IsRegular()
			if entry.Type()&fs.ModeSymlink != 0 {
				info, err := f.fs.Stat(full)
				if err != nil {
					f.logger.Debug().Err(err).Str("path", full).Msg("Dangling link ignored")
					continue
				}
				isDir = info.IsDir()
				isRegular = info.Mode().IsRegular()
			}

			switch {
			case isDir:
				if top.depth+1 > maxDepth {
					return nil, errors.Newf(errors.ErrWalk, "directory %s is nested deeper than %d levels", full, maxDepth).
						WithDetail("path", full)
				}
				subdirs = append(subdirs, frame{
					dir:    full,
					rel:    rel,
					prefix: top.prefix + name + Separator,
					depth:  top.depth + 1,
				})

			case isRegular:
				ext, ok := types.HasExtension(name, opts.Extensions)
				if !ok {
					f.logger.Debug().Str("path", full).Msg("Extension not allowed, skipping")
					continue
				}
				leaf := lower.String(name)
				if opts.StripExtension {
					leaf = leaf[:len(leaf)-len(ext)-1]
				}
				if leaf == "" {
					f.logger.Debug().Str("path", full).Msg("Nothing left after stripping extension, skipping")
					continue
				}
				outName := top.prefix + leaf

				if prev, exists := result[outName]; exists {
					if policy == CollisionError {
						return nil, errors.Newf(errors.ErrNameCollision,
							"%s and %s both flatten to %q", prev, full, outName).
							WithDetail("name", outName).
							WithDetail("first", prev).
							WithDetail("second", full)
					}
					f.logger.Warn().Str("name", outName).Str("replaced", prev).Str("by", full).Msg("Flattened name collision, later entry wins")
					opts.warn(fmt.Sprintf("%s replaced %s as %s", full, prev, outName))
				}
				result[outName] = full
				f.logger.Trace().Str("name", outName).Str("source", full).Msg("Mapped file")

			default:
				f.logger.Debug().Str("path", full).Msg("Not a regular file, skipping")
			}
		}

		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	f.logger.Debug().Str("root", root).Int("files", len(result)).Msg("Flatten complete")
	return result, nil
}

func (o Options) warn(msg string) {
	if o.Warn != nil {
		o.Warn(msg)
	}
}

func (f *Flattener) ignored(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
