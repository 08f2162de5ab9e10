package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// NewEventsCmd creates the events command
func NewEventsCmd() *cobra.Command {
	var (
		contract  string
		names     []string
		fromBlock uint64
		toBlock   uint64
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the events emitted by the registry and the proxy",
		Long: `List journaled events, oldest first. --limit keeps the most recent matching events.

Examples:
  opsgov events --contract proxy --name NewRequestWaiting
  opsgov events --name AddRelease --name SetLatestFork --from-block 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			target := usecase.OwnershipTarget(contract)
			switch target {
			case "", usecase.TargetRegistry, usecase.TargetProxy:
			default:
				return fmt.Errorf("unknown contract %q (expected registry or proxy)", contract)
			}

			result, err := app.ListEvents.Execute(cmd.Context(), usecase.ListEventsParams{
				Contract:  target,
				Names:     names,
				FromBlock: fromBlock,
				ToBlock:   toBlock,
				Limit:     limit,
			})
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewEventsRenderer(cmd.OutOrStdout()).Render(result)
			})
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "Only events of this contract (registry or proxy)")
	cmd.Flags().StringSliceVar(&names, "name", nil, "Only events with this name (repeatable)")
	cmd.Flags().Uint64Var(&fromBlock, "from-block", 0, "First block")
	cmd.Flags().Uint64Var(&toBlock, "to-block", 0, "Last block (0 for the latest)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Keep only the most recent events")

	return cmd
}
