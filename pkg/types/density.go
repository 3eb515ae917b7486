package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Density is a named output resolution tier. Name is used verbatim as the
// output directory qualifier and Scale multiplies the reference dimension.
type Density struct {
	Name  string  `koanf:"name" json:"name" yaml:"name" toml:"name"`
	Scale float64 `koanf:"scale" json:"scale" yaml:"scale" toml:"scale"`
}

func (d Density) String() string {
	return fmt.Sprintf("%s=%g", d.Name, d.Scale)
}

// Validate checks that Name is a single path segment and Scale is a
// positive finite number
func (d Density) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("density name is required")
	}
	if strings.ContainsAny(d.Name, `/\`) || d.Name == "." || d.Name == ".." {
		return fmt.Errorf("density name %q must be a single directory name", d.Name)
	}
	if d.Scale <= 0 || math.IsNaN(d.Scale) || math.IsInf(d.Scale, 0) {
		return fmt.Errorf("density %q has invalid scale %v", d.Name, d.Scale)
	}
	return nil
}

// MarshalText renders name=scale
func (d Density) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses name=scale
func (d *Density) UnmarshalText(text []byte) error {
	parsed, err := ParseDensity(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDensity reads "name=scale"
func ParseDensity(s string) (Density, error) {
	name, value, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return Density{}, fmt.Errorf("invalid density %q: want name=scale", s)
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return Density{}, fmt.Errorf("invalid density %q: %w", s, err)
	}
	d := Density{Name: strings.TrimSpace(name), Scale: scale}
	if err := d.Validate(); err != nil {
		return Density{}, err
	}
	return d, nil
}
