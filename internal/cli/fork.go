package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// NewForkCmd creates the fork command group
func NewForkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fork",
		Short: "Record network forks",
	}
	cmd.AddCommand(newForkRatifyCmd())
	return cmd
}

func newForkRatifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ratify <fork-number>",
		Short: "Record the latest ratified fork",
		Long: `Record the latest fork the network has ratified. This is a registry owner
operation; when the governance proxy owns the registry it is relayed through the
proxy and --from must be the proxy owner.

The fork number is not required to increase.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			n, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid fork number %q: %w", args[0], err)
			}

			result, err := app.RatifyFork.Execute(cmd.Context(), usecase.RatifyForkParams{ForkNumber: uint32(n)})
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewAdminRenderer(cmd.OutOrStdout()).RenderFork(result)
			})
		},
	}
}
