package drawables

import (
	"context"
	"image/color"

	"github.com/arthur-debert/drawables/pkg/config"
	"github.com/arthur-debert/drawables/pkg/copier"
	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/filesystem"
	"github.com/arthur-debert/drawables/pkg/flatten"
	"github.com/arthur-debert/drawables/pkg/paths"
	"github.com/arthur-debert/drawables/pkg/raster"
	"github.com/arthur-debert/drawables/pkg/rasterize"
	"github.com/arthur-debert/drawables/pkg/resolve"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/arthur-debert/drawables/pkg/unpack"
)

// walkOptions converts the shared [walk] section
func walkOptions(cfg *config.Config) (flatten.Options, error) {
	policy, err := flatten.ParseCollisionPolicy(cfg.Walk.Collisions)
	if err != nil {
		return flatten.Options{}, errors.Wrap(err, errors.ErrConfigInvalid, "invalid walk.collisions").
			WithDetail("key", "walk.collisions")
	}
	return flatten.Options{
		Ignore:      cfg.Walk.Ignore,
		MaxDepth:    cfg.Walk.MaxDepth,
		OnCollision: policy,
	}, nil
}

func copyOptions(cfg *config.Config, dryRun bool) (copier.Options, error) {
	walk, err := walkOptions(cfg)
	if err != nil {
		return copier.Options{}, err
	}
	return copier.Options{
		Roots:      cfg.Copy.Roots,
		Output:     cfg.Copy.Output,
		Extensions: cfg.Copy.Extensions,
		Walk:       walk,
		DryRun:     dryRun,
	}, nil
}

func rasterizeOptions(cfg *config.Config, dryRun bool) (rasterize.Options, error) {
	walk, err := walkOptions(cfg)
	if err != nil {
		return rasterize.Options{}, err
	}
	var bg color.Color
	if cfg.Rasterize.Background != "" {
		bg, err = raster.ParseColor(cfg.Rasterize.Background)
		if err != nil {
			return rasterize.Options{}, errors.Wrap(err, errors.ErrConfigInvalid, "invalid rasterize.background").
				WithDetail("key", "rasterize.background")
		}
	}
	return rasterize.Options{
		Source:     cfg.Rasterize.Source,
		Output:     cfg.Rasterize.Output,
		Type:       cfg.Rasterize.Type,
		Densities:  cfg.Rasterize.Densities,
		Background: bg,
		Quality:    cfg.Rasterize.Quality,
		MaxPixels:  cfg.Rasterize.MaxPixels,
		Walk:       walk,
		DryRun:     dryRun,
	}, nil
}

// repository builds the resolver for the [unpack] section; an empty local
// repository falls back to the user's default one
func repository(cfg *config.Config) *resolve.Repository {
	p := paths.New()
	local := p.Expand(cfg.Unpack.LocalRepository)
	if local == "" {
		local = p.LocalRepository()
	}

	workspace := make(map[string]string, len(cfg.Unpack.Workspace))
	for key, dir := range cfg.Unpack.WorkspaceMap() {
		workspace[key] = p.Expand(dir)
	}

	return resolve.NewRepository(resolve.Config{
		Local:     local,
		Remotes:   cfg.Unpack.RemoteRepositories,
		Offline:   cfg.Unpack.Offline,
		Workspace: workspace,
	})
}

func unpackOptions(cfg *config.Config, dryRun bool, resolver resolve.Resolver) unpack.Options {
	if resolver == nil {
		resolver = repository(cfg)
	}
	return unpack.Options{
		Artifacts:  cfg.Unpack.Artifacts,
		Output:     cfg.Unpack.Output,
		Extensions: cfg.Unpack.Extensions,
		Resolver:   resolver,
		DryRun:     dryRun,
	}
}

// goal is one step of `drawables run`
type goal struct {
	name    string
	enabled func(cfg *config.Config) bool
	run     func(ctx context.Context, cfg *config.Config, dryRun bool, resolver resolve.Resolver) (*types.Result, error)
}

// goals lists the goals in execution order
var goals = []goal{
	{
		name:    copier.Goal,
		enabled: func(cfg *config.Config) bool { return len(cfg.Copy.Roots) > 0 },
		run: func(ctx context.Context, cfg *config.Config, dryRun bool, _ resolve.Resolver) (*types.Result, error) {
			opts, err := copyOptions(cfg, dryRun)
			if err != nil {
				return nil, err
			}
			return copier.Run(ctx, opts)
		},
	},
	{
		name: rasterize.Goal,
		enabled: func(cfg *config.Config) bool {
			return cfg.Rasterize.Source != "" && filesystem.IsDir(filesystem.NewOS(), cfg.Rasterize.Source)
		},
		run: func(ctx context.Context, cfg *config.Config, dryRun bool, _ resolve.Resolver) (*types.Result, error) {
			opts, err := rasterizeOptions(cfg, dryRun)
			if err != nil {
				return nil, err
			}
			return rasterize.Run(ctx, opts)
		},
	},
	{
		name:    unpack.Goal,
		enabled: func(cfg *config.Config) bool { return len(cfg.Unpack.Artifacts) > 0 },
		run: func(ctx context.Context, cfg *config.Config, dryRun bool, resolver resolve.Resolver) (*types.Result, error) {
			return unpack.Run(ctx, unpackOptions(cfg, dryRun, resolver))
		},
	},
}
