package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/config"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of opsgov",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), config.Version)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "opsgov version %s (commit %s, built %s)\n", config.Version, config.Commit, config.Date)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version")

	return cmd
}
