package drawables

import (
	"fmt"

	"github.com/arthur-debert/drawables/internal/version"
	"github.com/arthur-debert/drawables/pkg/config"
	"github.com/arthur-debert/drawables/pkg/copier"
	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/arthur-debert/drawables/pkg/logging"
	"github.com/arthur-debert/drawables/pkg/raster"
	"github.com/arthur-debert/drawables/pkg/rasterize"
	"github.com/arthur-debert/drawables/pkg/unpack"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCopyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy [roots...]",
		Short:   MsgCopyShort,
		Long:    MsgCopyLong,
		Example: MsgCopyExample,
		GroupID: "goals",
	}
	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)
	cmd.Flags().StringSlice("ext", nil, MsgFlagExtension)
	bindings := append([]binding{
		{flag: "output", key: "copy.output"},
		{flag: "ext", key: "copy.extensions"},
	}, addWalkFlags(cmd)...)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		overrides := flagOverrides(cmd, bindings...)
		if len(args) > 0 {
			overrides["copy.roots"] = args
		}
		cfg, err := opts.loadConfig(overrides)
		if err != nil {
			return err
		}
		copyOpts, err := copyOptions(cfg, opts.dryRun)
		if err != nil {
			return err
		}
		result, err := copier.Run(cmd.Context(), copyOpts)
		if err != nil {
			return err
		}
		return opts.render(cmd, result)
	}
	return cmd
}

func newRasterizeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rasterize",
		Short:   MsgRasterizeShort,
		Long:    MsgRasterizeLong,
		Example: MsgRasterizeExample,
		GroupID: "goals",
		Args:    cobra.NoArgs,
	}
	cmd.Flags().StringP("source", "s", "", MsgFlagSource)
	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)
	cmd.Flags().StringP("type", "t", "", MsgFlagType)
	cmd.Flags().StringArrayP("density", "d", nil, MsgFlagDensity)
	cmd.Flags().String("background", "", MsgFlagBackground)
	cmd.Flags().Int("quality", 0, MsgFlagQuality)
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return raster.Types(), cobra.ShellCompDirectiveNoFileComp
	})
	bindings := append([]binding{
		{flag: "source", key: "rasterize.source"},
		{flag: "output", key: "rasterize.output"},
		{flag: "type", key: "rasterize.type"},
		{flag: "density", key: "rasterize.densities"},
		{flag: "background", key: "rasterize.background"},
		{flag: "quality", key: "rasterize.quality"},
	}, addWalkFlags(cmd)...)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := opts.loadConfig(flagOverrides(cmd, bindings...))
		if err != nil {
			return err
		}
		rasterOpts, err := rasterizeOptions(cfg, opts.dryRun)
		if err != nil {
			return err
		}
		result, err := rasterize.Run(cmd.Context(), rasterOpts)
		if err != nil {
			return err
		}
		return opts.render(cmd, result)
	}
	return cmd
}

func newUnpackCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unpack [group:artifact:version[:type]...]",
		Short:   MsgUnpackShort,
		Long:    MsgUnpackLong,
		Example: MsgUnpackExample,
		GroupID: "goals",
	}
	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)
	cmd.Flags().StringSlice("ext", nil, MsgFlagExtension)
	cmd.Flags().String("local-repo", "", MsgFlagLocalRepo)
	cmd.Flags().StringArray("remote", nil, MsgFlagRemote)
	cmd.Flags().Bool("offline", false, MsgFlagOffline)
	cmd.Flags().StringArray("workspace", nil, MsgFlagWorkspace)
	bindings := []binding{
		{flag: "output", key: "unpack.output"},
		{flag: "ext", key: "unpack.extensions"},
		{flag: "local-repo", key: "unpack.local_repository"},
		{flag: "remote", key: "unpack.remote_repositories"},
		{flag: "offline", key: "unpack.offline"},
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		overrides := flagOverrides(cmd, bindings...)
		if len(args) > 0 {
			overrides["unpack.artifacts"] = args
		}
		if cmd.Flags().Changed("workspace") {
			values, _ := cmd.Flags().GetStringArray("workspace")
			modules, err := workspaceOverride(values)
			if err != nil {
				return err
			}
			overrides["unpack.workspace"] = modules
		}

		cfg, err := opts.loadConfig(overrides)
		if err != nil {
			return err
		}
		result, err := unpack.Run(cmd.Context(), unpackOptions(cfg, opts.dryRun, opts.resolver))
		if err != nil {
			return err
		}
		return opts.render(cmd, result)
	}
	return cmd
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		GroupID: "goals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.run")

			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}

			ran := 0
			for _, g := range goals {
				if !g.enabled(cfg) {
					logger.Debug().Str("goal", g.name).Msg("Goal not configured, skipping")
					continue
				}
				result, err := g.run(cmd.Context(), cfg, opts.dryRun, opts.resolver)
				if err != nil {
					return err
				}
				if err := opts.render(cmd, result); err != nil {
					return err
				}
				ran++
			}

			if ran == 0 {
				logger.Warn().Msg("No goal configured")
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), MsgNothingToRun)
			}
			return nil
		},
	}
}

func newGenConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
	}
	effective := cmd.Flags().Bool("effective", false, MsgFlagEffective)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !*effective {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
			return err
		}
		cfg, err := opts.loadConfig(nil)
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersion, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
			return err
		},
	}
}
