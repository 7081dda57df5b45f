package kinds

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/transferia/chengine/pkg/clickhouse/schema/engines"
)

func KindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "kinds",
		Short:   "List supported table engines",
		Example: "./chengine kinds",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range engines.SupportedKinds() {
				var traits []string
				if kind.IsReplicated() {
					traits = append(traits, "replicated")
				}
				if kind.IsVersioned() {
					traits = append(traits, "versioned")
				}
				if len(traits) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), kind)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%s)\n", kind, strings.Join(traits, ", "))
			}
			return nil
		},
	}
}
