package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/looker-open-source/create-looker-extension/pkg/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "create-looker-extension %s\n", version.GetFullVersion())
		},
	}
}
