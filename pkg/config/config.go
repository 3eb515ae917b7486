package config

import (
	"github.com/arthur-debert/drawables/pkg/types"
)

// Config is the complete drawables configuration
type Config struct {
	Walk      Walk      `koanf:"walk" toml:"walk" yaml:"walk"`
	Copy      Copy      `koanf:"copy" toml:"copy" yaml:"copy"`
	Rasterize Rasterize `koanf:"rasterize" toml:"rasterize" yaml:"rasterize"`
	Unpack    Unpack    `koanf:"unpack" toml:"unpack" yaml:"unpack"`
}

// Walk configures the directory flattener shared by copy and rasterize
type Walk struct {
	MaxDepth   int      `koanf:"max_depth" toml:"max_depth" yaml:"max_depth"`
	Collisions string   `koanf:"collisions" toml:"collisions" yaml:"collisions"`
	Ignore     []string `koanf:"ignore" toml:"ignore" yaml:"ignore"`
}

// Copy configures the copy goal
type Copy struct {
	Roots      []string `koanf:"roots" toml:"roots" yaml:"roots"`
	Output     string   `koanf:"output" toml:"output" yaml:"output"`
	Extensions []string `koanf:"extensions" toml:"extensions" yaml:"extensions"`
}

// Rasterize configures the rasterize goal
type Rasterize struct {
	Source     string          `koanf:"source" toml:"source" yaml:"source"`
	Output     string          `koanf:"output" toml:"output" yaml:"output"`
	Type       string          `koanf:"type" toml:"type" yaml:"type"`
	Densities  []types.Density `koanf:"densities" toml:"densities" yaml:"densities"`
	Background string          `koanf:"background" toml:"background" yaml:"background"`
	Quality    int             `koanf:"quality" toml:"quality" yaml:"quality"`
	MaxPixels  int64           `koanf:"max_pixels" toml:"max_pixels" yaml:"max_pixels"`
}

// Unpack configures the unpack goal
type Unpack struct {
	Output             string             `koanf:"output" toml:"output" yaml:"output"`
	Artifacts          []types.Coordinate `koanf:"artifacts" toml:"artifacts" yaml:"artifacts"`
	LocalRepository    string             `koanf:"local_repository" toml:"local_repository" yaml:"local_repository"`
	RemoteRepositories []string           `koanf:"remote_repositories" toml:"remote_repositories" yaml:"remote_repositories"`
	Offline            bool               `koanf:"offline" toml:"offline" yaml:"offline"`
	Workspace          []WorkspaceModule  `koanf:"workspace" toml:"workspace" yaml:"workspace"`
	Extensions         []string           `koanf:"extensions" toml:"extensions" yaml:"extensions"`
}

// WorkspaceModule maps a coordinate to a directory of the same workspace.
// It is a table rather than a map key because group ids contain dots.
type WorkspaceModule struct {
	Coordinate types.Coordinate `koanf:"coordinate" toml:"coordinate" yaml:"coordinate"`
	Path       string           `koanf:"path" toml:"path" yaml:"path"`
}

// WorkspaceMap returns the workspace keyed by group:artifact:version
func (u Unpack) WorkspaceMap() map[string]string {
	m := make(map[string]string, len(u.Workspace))
	for _, w := range u.Workspace {
		m[w.Coordinate.Key()] = w.Path
	}
	return m
}
