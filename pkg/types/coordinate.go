package types

import (
	"fmt"
	"strings"
)

// Coordinate identifies a dependency artifact. It carries no behavior
// beyond naming; resolution is delegated to a resolver.
type Coordinate struct {
	Group    string `koanf:"group" json:"group" yaml:"group" toml:"group"`
	Artifact string `koanf:"artifact" json:"artifact" yaml:"artifact" toml:"artifact"`
	Version  string `koanf:"version" json:"version" yaml:"version" toml:"version"`
	// Type is the archive extension. Empty means the resolver picks.
	Type string `koanf:"type" json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
}

// String renders the coordinate as group:artifact:version[:type]
func (c Coordinate) String() string {
	s := c.Group + ":" + c.Artifact + ":" + c.Version
	if c.Type != "" {
		s += ":" + c.Type
	}
	return s
}

// Key renders group:artifact:version, ignoring the type
func (c Coordinate) Key() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// Validate checks that all three identifying fields are present
func (c Coordinate) Validate() error {
	if c.Group == "" || c.Artifact == "" || c.Version == "" {
		return fmt.Errorf("coordinate %q must have group, artifact and version", c.String())
	}
	return nil
}

// ParseCoordinate parses group:artifact:version with an optional :type suffix
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 && len(parts) != 4 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: want group:artifact:version[:type]", s)
	}
	c := Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}
	if len(parts) == 4 {
		c.Type = parts[3]
	}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// MarshalText renders the coordinate with String
func (c Coordinate) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses group:artifact:version[:type]
func (c *Coordinate) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinate(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
