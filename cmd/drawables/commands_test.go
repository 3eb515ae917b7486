// Test Type: Integration Test
// Description: Runs the drawables commands end to end against temporary trees

package drawables

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/drawables/pkg/config"
	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/resolve"
	"github.com/arthur-debert/drawables/pkg/testutil"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree with args and returns stdout
func execute(t *testing.T, opts *rootOptions, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DRAWABLES_STATE_DIR", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	cmd := newRootCmd(opts)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeResult(t *testing.T, data string) types.Result {
	t.Helper()
	var result types.Result
	require.NoError(t, json.Unmarshal([]byte(data), &result))
	return result
}

func TestCopyCommand(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "res")
	testutil.CreateFile(t, root, "ldpi/icon.png", "ldpi")
	testutil.CreateFile(t, root, "mdpi/Menu/Open.PNG", "open")
	testutil.CreateFile(t, root, "mdpi/notes.txt", "skip")
	out := filepath.Join(dir, "out")

	stdout, err := execute(t, &rootOptions{}, "copy", root, "--output", out, "--format", "json")
	require.NoError(t, err)

	result := decodeResult(t, stdout)
	assert.Equal(t, "copy", result.Goal)
	assert.Len(t, result.Outputs, 2)
	assert.Equal(t, []string{
		"drawable-ldpi/icon.png",
		"drawable-mdpi/Menu_open.png",
	}, testutil.ListFiles(t, out))
	assert.Equal(t, "open", testutil.ReadFile(t, filepath.Join(out, "drawable-mdpi", "Menu_open.png")))
}

func TestCopyCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "res")
	testutil.CreateFile(t, root, "hdpi/icon.png", "x")
	out := filepath.Join(dir, "out")

	stdout, err := execute(t, &rootOptions{}, "copy", root, "-o", out, "--dry-run", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "DRY RUN")
	assert.Contains(t, stdout, "copy: 1 file")
	assert.False(t, testutil.DirExists(t, out))
}

func TestCopyCommand_Collision(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "res")
	testutil.CreateFile(t, root, "mdpi/a/b_c.png", "first")
	testutil.CreateFile(t, root, "mdpi/a_b/c.png", "second")
	out := filepath.Join(dir, "out")

	_, err := execute(t, &rootOptions{}, "copy", root, "-o", out)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNameCollision))

	_, err = execute(t, &rootOptions{}, "copy", root, "-o", out, "--collisions", "overwrite")
	require.NoError(t, err)
	assert.Equal(t, "second", testutil.ReadFile(t, filepath.Join(out, "drawable-mdpi", "a_b_c.png")))
}

func TestRasterizeCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "svg")
	testutil.CreateFile(t, src, "Icon.svg", testutil.SquareSVG(24))
	out := filepath.Join(dir, "out")

	stdout, err := execute(t, &rootOptions{},
		"rasterize", "-s", src, "-o", out,
		"--density", "drawable-mdpi=1", "--density", "drawable-xxhdpi=3",
		"--format", "json")
	require.NoError(t, err)

	result := decodeResult(t, stdout)
	assert.Equal(t, "rasterize", result.Goal)
	assert.Len(t, result.Outputs, 2)

	format, w, h := testutil.ImageSize(t, filepath.Join(out, "drawable-xxhdpi", "icon.png"))
	assert.Equal(t, "png", format)
	assert.Equal(t, 72, w)
	assert.Equal(t, 72, h)
}

func TestRasterizeCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "svg")

	t.Run("unknown type", func(t *testing.T) {
		_, err := execute(t, &rootOptions{}, "rasterize", "-s", src, "-o", dir, "--type", "webp")
		assert.True(t, errors.IsErrorCode(err, errors.ErrRasterTypeUnknown))
	})

	t.Run("bad density", func(t *testing.T) {
		_, err := execute(t, &rootOptions{}, "rasterize", "-s", src, "-o", dir, "--density", "drawable-x=-1")
		assert.True(t, errors.IsConfigError(err), "got %v", err)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := execute(t, &rootOptions{}, "rasterize", "-s", filepath.Join(dir, "nope"), "-o", dir)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	})
}

func TestUnpackCommand(t *testing.T) {
	dir := t.TempDir()
	archive := testutil.WriteZip(t, filepath.Join(dir, "icons-1.0.zip"), testutil.ZipEntries{
		"res/drawable-nodpi/image.png": "png",
		"readme.txt":                   "text",
	})
	resolver := resolve.NewStatic().Add("com.example:icons:1.0", types.Location{Path: archive})
	out := filepath.Join(dir, "out")

	stdout, err := execute(t, &rootOptions{resolver: resolver},
		"unpack", "com.example:icons:1.0", "-o", out, "--format", "json")
	require.NoError(t, err)

	result := decodeResult(t, stdout)
	assert.Equal(t, "unpack", result.Goal)
	assert.Equal(t, []string{"res/drawable-nodpi/image.png"}, testutil.ListFiles(t, out))
	require.Len(t, resolver.Calls, 1)
	assert.Equal(t, "icons", resolver.Calls[0].Artifact)
}

func TestUnpackCommand_ResolutionFailure(t *testing.T) {
	dir := t.TempDir()
	archive := testutil.WriteZip(t, filepath.Join(dir, "a.zip"), testutil.ZipEntries{"x.png": "x"})
	resolver := resolve.NewStatic().Add("com.example:a:1", types.Location{Path: archive})
	out := filepath.Join(dir, "out")

	_, err := execute(t, &rootOptions{resolver: resolver},
		"unpack", "com.example:a:1", "com.example:missing:2", "-o", out)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArtifactMissing))
	assert.Equal(t, "com.example:missing:2", errors.GetErrorDetails(err)["coordinate"])
	assert.False(t, testutil.DirExists(t, out))
}

func TestUnpackCommand_Workspace(t *testing.T) {
	dir := t.TempDir()
	module := filepath.Join(dir, "lib")
	testutil.CreateFile(t, module, "res/drawable-hdpi/logo.png", "logo")
	out := filepath.Join(dir, "out")

	_, err := execute(t, &rootOptions{},
		"unpack", "com.example:lib:1.0", "-o", out, "--offline",
		"--local-repo", filepath.Join(dir, "m2"),
		"--workspace", "com.example:lib:1.0="+module)
	require.NoError(t, err)
	assert.Equal(t, "logo", testutil.ReadFile(t, filepath.Join(out, "res", "drawable-hdpi", "logo.png")))

	_, err = execute(t, &rootOptions{}, "unpack", "com.example:lib:1.0", "-o", out, "--workspace", "no-dir")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "res")
	testutil.CreateFile(t, root, "xhdpi/logo.gif", "gif")
	out := filepath.Join(dir, "out")

	cfgFile := testutil.CreateFile(t, dir, "drawables.toml", `
[copy]
roots = ["`+filepath.ToSlash(root)+`"]
output = "`+filepath.ToSlash(out)+`"

[rasterize]
source = "`+filepath.ToSlash(filepath.Join(dir, "no-svg"))+`"
`)

	stdout, err := execute(t, &rootOptions{}, "run", "--config", cfgFile, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "copy: 1 file")
	assert.NotContains(t, stdout, "rasterize")
	assert.NotContains(t, stdout, "unpack")
	assert.True(t, testutil.FileExists(t, filepath.Join(out, "drawable-xhdpi", "logo.gif")))
}

func TestRunCommand_NothingConfigured(t *testing.T) {
	dir := t.TempDir()
	cfgFile := testutil.CreateFile(t, dir, "drawables.toml", `
[rasterize]
source = "`+filepath.ToSlash(filepath.Join(dir, "absent"))+`"
`)

	stdout, err := execute(t, &rootOptions{}, "run", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, MsgNothingToRun)
}

func TestGenConfigCommand(t *testing.T) {
	stdout, err := execute(t, &rootOptions{}, "genconfig")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultsContent(), stdout)

	dir := t.TempDir()
	cfgFile := testutil.CreateFile(t, dir, "custom.toml", "[copy]\noutput = \"custom/res\"\n")
	stdout, err = execute(t, &rootOptions{}, "genconfig", "--effective", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, stdout, "custom/res")
	assert.Contains(t, stdout, "[rasterize]")
}

func TestVersionCommand(t *testing.T) {
	stdout, err := execute(t, &rootOptions{}, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "drawables version dev")
}

func TestCompletionCommand(t *testing.T) {
	stdout, err := execute(t, &rootOptions{}, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "drawables")

	_, err = execute(t, &rootOptions{}, "completion", "tcsh")
	assert.Error(t, err)
}

func TestHelpTopics(t *testing.T) {
	for _, topic := range []string{"naming", "densities", "unpack", "configuration"} {
		t.Run(topic, func(t *testing.T) {
			stdout, err := execute(t, &rootOptions{}, "help", topic)
			require.NoError(t, err)
			assert.NotEmpty(t, stdout)
		})
	}

	stdout, err := execute(t, &rootOptions{}, "help", "naming")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Collisions")
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, &rootOptions{}, "version", "--format", "xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestPrintError(t *testing.T) {
	cmd := NewRootCmd()
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)
	require.NoError(t, cmd.PersistentFlags().Set("format", "json"))

	PrintError(cmd, errors.New(errors.ErrArtifactMissing, "artifact not found").
		WithDetail("coordinate", "g:a:1"))

	var got map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &got))
	assert.Equal(t, "ARTIFACT_MISSING", got["error"]["code"])
}

func TestRootCommand_Structure(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"copy", "rasterize", "unpack", "run", "genconfig", "version", "completion", "help"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
	for _, flag := range []string{"verbose", "dry-run", "config", "format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}
