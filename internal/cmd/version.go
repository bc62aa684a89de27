package cmd

import (
	"fmt"

	"flutteredit/internal/gui"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			frontends := "tui"
			if gui.IsGUIAvailable() {
				frontends = "gui, tui"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "flutteredit %s (%s)\n", Version, frontends)
		},
	}
}
