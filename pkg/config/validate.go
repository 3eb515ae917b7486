package config

import (
	"github.com/arthur-debert/drawables/pkg/density"
	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/flatten"
	"github.com/arthur-debert/drawables/pkg/raster"
)

// Validate checks the configuration before any goal runs. Raster type
// problems are reported as RASTER_TYPE_UNKNOWN, everything else as
// CONFIG_INVALID.
func (c *Config) Validate() error {
	if c.Walk.MaxDepth < 0 {
		return invalid("walk.max_depth", "must not be negative")
	}
	if _, err := flatten.ParseCollisionPolicy(c.Walk.Collisions); err != nil {
		return invalid("walk.collisions", err.Error())
	}

	if len(c.Copy.Roots) > 0 && c.Copy.Output == "" {
		return invalid("copy.output", "is required when copy.roots is set")
	}

	if c.Rasterize.Type != "" {
		if _, err := raster.Lookup(c.Rasterize.Type, raster.Options{}); err != nil {
			return err
		}
	}
	if err := density.ValidateAll(c.Rasterize.Densities); err != nil {
		return invalid("rasterize.densities", err.Error())
	}
	if c.Rasterize.Background != "" {
		if _, err := raster.ParseColor(c.Rasterize.Background); err != nil {
			return invalid("rasterize.background", err.Error())
		}
	}
	if c.Rasterize.Quality < 0 || c.Rasterize.Quality > 100 {
		return invalid("rasterize.quality", "must be between 0 and 100")
	}
	if c.Rasterize.MaxPixels < 0 {
		return invalid("rasterize.max_pixels", "must not be negative")
	}
	if c.Rasterize.Source != "" && c.Rasterize.Output == "" {
		return invalid("rasterize.output", "is required when rasterize.source is set")
	}

	if len(c.Unpack.Artifacts) > 0 && c.Unpack.Output == "" {
		return invalid("unpack.output", "is required when unpack.artifacts is set")
	}
	for _, a := range c.Unpack.Artifacts {
		if err := a.Validate(); err != nil {
			return invalid("unpack.artifacts", err.Error())
		}
	}
	for _, w := range c.Unpack.Workspace {
		if err := w.Coordinate.Validate(); err != nil {
			return invalid("unpack.workspace", err.Error())
		}
		if w.Path == "" {
			return invalid("unpack.workspace", "module "+w.Coordinate.String()+" has no path")
		}
	}
	return nil
}

func invalid(key, msg string) error {
	return errors.Newf(errors.ErrConfigInvalid, "%s %s", key, msg).WithDetail("key", key)
}
