package drawables

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/drawables/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// binding ties a command line flag to a configuration key
type binding struct {
	flag string
	key  string
}

// flagOverrides collects the flags the user actually set, keyed by their
// configuration key. Values stay strings; the configuration decoder
// converts them.
func flagOverrides(cmd *cobra.Command, bindings ...binding) map[string]interface{} {
	overrides := make(map[string]interface{})
	for _, b := range bindings {
		f := cmd.Flags().Lookup(b.flag)
		if f == nil || !f.Changed {
			continue
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			overrides[b.key] = sv.GetSlice()
			continue
		}
		overrides[b.key] = f.Value.String()
	}
	return overrides
}

// workspaceOverride converts repeated group:artifact:version=DIR flags into
// unpack.workspace tables
func workspaceOverride(values []string) ([]interface{}, error) {
	modules := make([]interface{}, 0, len(values))
	for _, v := range values {
		coord, dir, ok := strings.Cut(v, "=")
		coord, dir = strings.TrimSpace(coord), strings.TrimSpace(dir)
		if !ok || coord == "" || dir == "" {
			return nil, errors.New(errors.ErrConfigInvalid, fmt.Sprintf(MsgErrWorkspaceFlag, v)).
				WithDetail("key", "unpack.workspace")
		}
		modules = append(modules, map[string]interface{}{
			"coordinate": coord,
			"path":       dir,
		})
	}
	return modules, nil
}

// addWalkFlags registers the flattener flags shared by copy and rasterize
func addWalkFlags(cmd *cobra.Command) []binding {
	cmd.Flags().StringArray("ignore", nil, MsgFlagIgnore)
	cmd.Flags().String("collisions", "", MsgFlagCollisions)
	_ = cmd.RegisterFlagCompletionFunc("collisions", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "overwrite"}, cobra.ShellCompDirectiveNoFileComp
	})
	return []binding{
		{flag: "ignore", key: "walk.ignore"},
		{flag: "collisions", key: "walk.collisions"},
	}
}
