package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand(deps func() *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available template families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, id := range deps().Store.IDs() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
