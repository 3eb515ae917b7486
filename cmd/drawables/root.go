package drawables

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/arthur-debert/drawables/internal/version"
	"github.com/arthur-debert/drawables/pkg/cobrax/topics"
	"github.com/arthur-debert/drawables/pkg/config"
	"github.com/arthur-debert/drawables/pkg/logging"
	"github.com/arthur-debert/drawables/pkg/output"
	"github.com/arthur-debert/drawables/pkg/resolve"
	"github.com/arthur-debert/drawables/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// rootOptions holds the global flags shared by every command
type rootOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	format     string

	// resolver replaces the repository built from configuration
	resolver resolve.Resolver
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "drawables",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			_, err := output.ParseFormat(opts.format)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", string(output.FormatAuto), MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "goals", Title: "GOALS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newCopyCmd(opts))
	rootCmd.AddCommand(newRasterizeCmd(opts))
	rootCmd.AddCommand(newUnpackCmd(opts))
	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	help, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, help, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// loadConfig layers the configuration and applies the command's flags
func (o *rootOptions) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:      o.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// render writes result to the command's output in the selected format
func (o *rootOptions) render(cmd *cobra.Command, result *types.Result) error {
	format, err := output.ParseFormat(o.format)
	if err != nil {
		return err
	}
	r, err := output.NewRenderer(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}
	return r.Render(result)
}

// PrintError writes err to the root command's error stream in the format
// selected by --format
func PrintError(rootCmd *cobra.Command, err error) {
	name, _ := rootCmd.PersistentFlags().GetString("format")
	format, perr := output.ParseFormat(name)
	if perr != nil {
		format = output.FormatAuto
	}
	r, rerr := output.NewRenderer(rootCmd.ErrOrStderr(), format)
	if rerr != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	_ = r.RenderError(err)
}
