// Test Type: Unit Test
// Description: Tests for layered configuration loading and validation

package config_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/drawables/pkg/config"
	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/testutil"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Walk.MaxDepth)
	assert.Equal(t, "error", cfg.Walk.Collisions)
	assert.Empty(t, cfg.Copy.Roots)
	assert.Equal(t, []string{"png", "jpg", "gif"}, cfg.Copy.Extensions)
	assert.Equal(t, "src/main/svg", cfg.Rasterize.Source)
	assert.Equal(t, "png", cfg.Rasterize.Type)
	assert.Empty(t, cfg.Rasterize.Densities)
	assert.Equal(t, int64(64<<20), cfg.Rasterize.MaxPixels)
	assert.Equal(t, "target/android-drawables", cfg.Unpack.Output)
	assert.Equal(t, []string{"https://repo.maven.apache.org/maven2"}, cfg.Unpack.RemoteRepositories)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "drawables.toml", `
[walk]
collisions = "overwrite"
ignore = ["**/drafts/**"]

[copy]
roots = ["src/main/resources"]

[rasterize]
type = "jpg"
densities = ["drawable-mdpi=1", "drawable-xxhdpi=3"]

[unpack]
artifacts = ["com.example.ui:icons:1.2", "org.acme:art:2.0:aar"]
offline = true

[[unpack.workspace]]
coordinate = "com.example.ui:icons:1.2"
path = "../icons"
`)

	cfg, err := config.Load(config.LoadOptions{Dir: dir, SkipEnv: true})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "overwrite", cfg.Walk.Collisions)
	assert.Equal(t, 64, cfg.Walk.MaxDepth, "untouched defaults survive")
	assert.Equal(t, []string{"**/drafts/**"}, cfg.Walk.Ignore)
	assert.Equal(t, []string{"src/main/resources"}, cfg.Copy.Roots)
	assert.Equal(t, "jpg", cfg.Rasterize.Type)
	assert.Equal(t, []types.Density{
		{Name: "drawable-mdpi", Scale: 1},
		{Name: "drawable-xxhdpi", Scale: 3},
	}, cfg.Rasterize.Densities)
	assert.Equal(t, []types.Coordinate{
		{Group: "com.example.ui", Artifact: "icons", Version: "1.2"},
		{Group: "org.acme", Artifact: "art", Version: "2.0", Type: "aar"},
	}, cfg.Unpack.Artifacts)
	assert.True(t, cfg.Unpack.Offline)
	assert.Equal(t, map[string]string{"com.example.ui:icons:1.2": "../icons"}, cfg.Unpack.WorkspaceMap())
}

func TestLoad_DensityTables(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "drawables.toml", `
[[rasterize.densities]]
name = "drawable-hdpi"
scale = 1.5

[[rasterize.densities]]
name = "drawable-xhdpi"
scale = 2
`)
	cfg, err := config.Load(config.LoadOptions{Dir: dir, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, []types.Density{
		{Name: "drawable-hdpi", Scale: 1.5},
		{Name: "drawable-xhdpi", Scale: 2},
	}, cfg.Rasterize.Densities)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "custom.yaml", `
copy:
  roots:
    - res-a
    - res-b
  output: build/res
rasterize:
  quality: 75
`)
	cfg, err := config.Load(config.LoadOptions{File: path, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"res-a", "res-b"}, cfg.Copy.Roots)
	assert.Equal(t, "build/res", cfg.Copy.Output)
	assert.Equal(t, 75, cfg.Rasterize.Quality)
}

func TestLoad_FileDiscoveryOrder(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, ".drawables.toml", "[rasterize]\ntype = \"gif\"\n")
	testutil.CreateFile(t, dir, "drawables.yaml", "rasterize:\n  type: bmp\n")

	cfg, err := config.Load(config.LoadOptions{Dir: dir, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "gif", cfg.Rasterize.Type)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DRAWABLES_RASTERIZE__TYPE", "tiff")
	t.Setenv("DRAWABLES_RASTERIZE__DENSITIES", "drawable-hdpi=1.5, drawable-xhdpi=2")
	t.Setenv("DRAWABLES_COPY__ROOTS", "a,b")
	t.Setenv("DRAWABLES_UNPACK__LOCAL_REPOSITORY", "/tmp/m2")
	t.Setenv("DRAWABLES_UNPACK__ARTIFACTS", "g:a:1")
	t.Setenv("DRAWABLES_WALK__MAX_DEPTH", "8")

	dir := t.TempDir()
	testutil.CreateFile(t, dir, "drawables.toml", "[rasterize]\ntype = \"gif\"\n")

	cfg, err := config.Load(config.LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "tiff", cfg.Rasterize.Type, "environment beats the file")
	assert.Equal(t, []types.Density{
		{Name: "drawable-hdpi", Scale: 1.5},
		{Name: "drawable-xhdpi", Scale: 2},
	}, cfg.Rasterize.Densities)
	assert.Equal(t, []string{"a", "b"}, cfg.Copy.Roots)
	assert.Equal(t, "/tmp/m2", cfg.Unpack.LocalRepository)
	assert.Equal(t, []types.Coordinate{{Group: "g", Artifact: "a", Version: "1"}}, cfg.Unpack.Artifacts)
	assert.Equal(t, 8, cfg.Walk.MaxDepth)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DRAWABLES_COPY__OUTPUT", "from-env")

	cfg, err := config.Load(config.LoadOptions{
		SkipFile: true,
		Overrides: map[string]interface{}{
			"copy.output":         "from-flags",
			"copy.roots":          []string{"res"},
			"rasterize.densities": []string{"drawable-tvdpi=1.33"},
			"unpack.artifacts":    []string{"com.example:icons:2.0:aar"},
			"unpack.offline":      true,
			"unpack.workspace": []interface{}{
				map[string]interface{}{"coordinate": "com.example:lib:1.0", "path": "../lib"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "from-flags", cfg.Copy.Output, "flags beat the environment")
	assert.Equal(t, []string{"res"}, cfg.Copy.Roots)
	assert.Equal(t, []types.Density{{Name: "drawable-tvdpi", Scale: 1.33}}, cfg.Rasterize.Densities)
	assert.Equal(t, "aar", cfg.Unpack.Artifacts[0].Type)
	assert.True(t, cfg.Unpack.Offline)
	assert.Equal(t, map[string]string{"com.example:lib:1.0": "../lib"}, cfg.Unpack.WorkspaceMap())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		_, err := config.Load(config.LoadOptions{File: filepath.Join(t.TempDir(), "nope.toml"), SkipEnv: true})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("syntax error", func(t *testing.T) {
		dir := t.TempDir()
		testutil.CreateFile(t, dir, "drawables.toml", "[copy\nroots = ")
		_, err := config.Load(config.LoadOptions{Dir: dir, SkipEnv: true})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("bad density", func(t *testing.T) {
		dir := t.TempDir()
		testutil.CreateFile(t, dir, "drawables.toml", "[rasterize]\ndensities = [\"hdpi\"]\n")
		_, err := config.Load(config.LoadOptions{Dir: dir, SkipEnv: true})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		code   errors.ErrorCode
	}{
		{"unknown raster type", func(c *config.Config) { c.Rasterize.Type = "webp" }, errors.ErrRasterTypeUnknown},
		{"collision policy", func(c *config.Config) { c.Walk.Collisions = "skip" }, errors.ErrConfigInvalid},
		{"negative depth", func(c *config.Config) { c.Walk.MaxDepth = -1 }, errors.ErrConfigInvalid},
		{"copy without output", func(c *config.Config) {
			c.Copy.Roots = []string{"res"}
			c.Copy.Output = ""
		}, errors.ErrConfigInvalid},
		{"duplicate density", func(c *config.Config) {
			c.Rasterize.Densities = []types.Density{{Name: "a", Scale: 1}, {Name: "a", Scale: 2}}
		}, errors.ErrConfigInvalid},
		{"background", func(c *config.Config) { c.Rasterize.Background = "blue" }, errors.ErrConfigInvalid},
		{"quality", func(c *config.Config) { c.Rasterize.Quality = 101 }, errors.ErrConfigInvalid},
		{"max pixels", func(c *config.Config) { c.Rasterize.MaxPixels = -1 }, errors.ErrConfigInvalid},
		{"workspace without path", func(c *config.Config) {
			c.Unpack.Workspace = []config.WorkspaceModule{{Coordinate: types.Coordinate{Group: "g", Artifact: "a", Version: "1"}}}
		}, errors.ErrConfigInvalid},
		{"unpack without output", func(c *config.Config) {
			c.Unpack.Artifacts = []types.Coordinate{{Group: "g", Artifact: "a", Version: "1"}}
			c.Unpack.Output = ""
		}, errors.ErrConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Default()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), err.Error())
			assert.True(t, errors.IsConfigError(err))
		})
	}
}

func TestMarshal(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Rasterize.Densities = []types.Density{{Name: "drawable-hdpi", Scale: 1.5}}
	cfg.Unpack.Artifacts = []types.Coordinate{{Group: "g", Artifact: "a", Version: "1"}}

	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "[rasterize]")
	assert.Contains(t, out, "drawable-hdpi=1.5")
	assert.Contains(t, out, "g:a:1")

	// the rendered file loads back to the same configuration
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "drawables.toml", out)
	loaded, err := config.Load(config.LoadOptions{Dir: dir, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, cfg.Rasterize, loaded.Rasterize)
	assert.Equal(t, cfg.Unpack.Artifacts, loaded.Unpack.Artifacts)
	assert.Equal(t, cfg.Walk.MaxDepth, loaded.Walk.MaxDepth)
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, config.DefaultsContent(), "[unpack.workspace]")
	assert.Contains(t, config.DefaultsContent(), "max_depth = 64")
}
