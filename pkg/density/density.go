// Package density holds the density bucket names used by the copy and
// unpack goals and the scale-factor table used by the rasterize goal.
package density

import (
	"fmt"
	"math"

	"github.com/arthur-debert/drawables/pkg/types"
)

// DirPrefix qualifies a bucket name as an output directory
const DirPrefix = "drawable-"

// Buckets are the source subdirectory names probed by the copy goal, in
// processing order
var Buckets = []string{"ldpi", "mdpi", "hdpi", "xhdpi", "nodpi", "tvdpi"}

// DirName returns the output directory for bucket
func DirName(bucket string) string {
	return DirPrefix + bucket
}

// Defaults returns the table used when no densities are configured
func Defaults() []types.Density {
	return []types.Density{
		{Name: "drawable-ldpi", Scale: 0.75},
		{Name: "drawable-mdpi", Scale: 1.0},
		{Name: "drawable-hdpi", Scale: 1.5},
		{Name: "drawable-xhdpi", Scale: 2.0},
	}
}

// epsilon absorbs binary floating point noise so that exact products such
// as 100*0.75 do not round up
const epsilon = 1e-9

// Scaled returns ceil(scale*v)
func Scaled(scale, v float64) int {
	return int(Ceil(scale * v))
}

// Ceil rounds v up the way Scaled does, without converting to int
func Ceil(v float64) float64 {
	return math.Ceil(v - epsilon)
}

// TargetSize returns the raster size for a document of intrinsic size w×h
// at scale. Width is ceil(scale*w); height follows the same rounding so the
// aspect ratio is kept. A zero height yields a square target.
func TargetSize(scale, w, h float64) (int, int) {
	width := Scaled(scale, w)
	if h <= 0 {
		return width, width
	}
	return width, Scaled(scale, h)
}

// Validate checks a single density
func Validate(d types.Density) error {
	return d.Validate()
}

// ValidateAll checks every density and rejects duplicate names
func ValidateAll(ds []types.Density) error {
	seen := make(map[string]bool, len(ds))
	for _, d := range ds {
		if err := Validate(d); err != nil {
			return err
		}
		if seen[d.Name] {
			return fmt.Errorf("density %q is listed twice", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// Parse reads "name=scale". The name is used as given, so tables may
// target other resource directories such as mipmap-xxhdpi.
func Parse(s string) (types.Density, error) {
	return types.ParseDensity(s)
}

// ParseAll parses each entry with Parse
func ParseAll(values []string) ([]types.Density, error) {
	ds := make([]types.Density, 0, len(values))
	for _, v := range values {
		d, err := Parse(v)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}
