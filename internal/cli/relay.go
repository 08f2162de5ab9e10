package cli

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// NewRelayCmd creates the relay command
func NewRelayCmd() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "relay [method] [args...]",
		Short: "Relay a registry call through the governance proxy",
		Long: `Forward a call to the registry through the governance proxy. Only the proxy owner
may relay, and a call that fails on the registry fails the relay.

Give either a method with its arguments or the raw calldata with --data.
Methods that can be relayed by name:
  ` + strings.Join(usecase.RelayableMethods(), "\n  ") + `

setOwner, addRelease and addChecksum are handled by the proxy itself and cannot be
relayed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var params usecase.RelayCallParams
			switch {
			case data != "" && len(args) > 0:
				return fmt.Errorf("give either a method or --data, not both")
			case data != "":
				if params.Payload, err = hexutil.Decode(data); err != nil {
					return fmt.Errorf("invalid --data: %w", err)
				}
			case len(args) > 0:
				params.Method, params.Args = args[0], args[1:]
			default:
				return fmt.Errorf("nothing to relay: give a method or --data")
			}

			result, err := app.RelayCall.Execute(cmd.Context(), params)
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewAdminRenderer(cmd.OutOrStdout()).RenderRelay(result)
			})
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Raw calldata (0x-prefixed hex)")

	return cmd
}
