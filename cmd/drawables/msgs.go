package drawables

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Prepare Android drawable resources"
	MsgCopyShort       = "Copy density bitmaps into drawable directories"
	MsgRasterizeShort  = "Rasterize SVG sources for every density"
	MsgUnpackShort     = "Unpack drawables from dependency archives"
	MsgRunShort        = "Run every configured goal"
	MsgGenConfigShort  = "Print the default configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNothingToRun = "No goal is configured: set copy.roots, rasterize.source or unpack.artifacts."
	MsgVersion      = "drawables version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Plan the work without writing any file"
	MsgFlagConfig     = "Configuration file (default: drawables.toml in the working directory)"
	MsgFlagFormat     = "Output format: auto, term, text, json or yaml"
	MsgFlagOutput     = "Output directory"
	MsgFlagExtension  = "Allowed file extension (repeatable)"
	MsgFlagIgnore     = "Glob of source paths to skip (repeatable)"
	MsgFlagCollisions = "What to do when two files flatten to the same name: error or overwrite"
	MsgFlagSource     = "Directory holding the SVG sources"
	MsgFlagType       = "Raster type: png, jpg, gif, bmp or tiff"
	MsgFlagDensity    = "Density as name=scale, e.g. drawable-xxhdpi=3 (repeatable)"
	MsgFlagBackground = "Background color for formats without alpha (#rrggbb)"
	MsgFlagQuality    = "JPEG quality, 1 to 100"
	MsgFlagLocalRepo  = "Local artifact repository"
	MsgFlagRemote     = "Remote repository URL (repeatable)"
	MsgFlagOffline    = "Never contact remote repositories"
	MsgFlagWorkspace  = "Workspace module as group:artifact:version=DIR (repeatable)"
	MsgFlagEffective  = "Print the configuration in effect instead of the defaults"

	// Error messages
	MsgErrWorkspaceFlag = "workspace module %q must look like group:artifact:version=DIR"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/copy-long.txt
	msgCopyLongRaw string
	MsgCopyLong    = strings.TrimSpace(msgCopyLongRaw)

	//go:embed msgs/copy-example.txt
	msgCopyExampleRaw string
	MsgCopyExample    = strings.TrimRight(msgCopyExampleRaw, "\n")

	//go:embed msgs/rasterize-long.txt
	msgRasterizeLongRaw string
	MsgRasterizeLong    = strings.TrimSpace(msgRasterizeLongRaw)

	//go:embed msgs/rasterize-example.txt
	msgRasterizeExampleRaw string
	MsgRasterizeExample    = strings.TrimRight(msgRasterizeExampleRaw, "\n")

	//go:embed msgs/unpack-long.txt
	msgUnpackLongRaw string
	MsgUnpackLong    = strings.TrimSpace(msgUnpackLongRaw)

	//go:embed msgs/unpack-example.txt
	msgUnpackExampleRaw string
	MsgUnpackExample    = strings.TrimRight(msgUnpackExampleRaw, "\n")

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
