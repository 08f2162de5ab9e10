package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// NewOwnerCmd creates the owner command group
func NewOwnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Transfer ownership of the registry or the governance proxy",
	}
	cmd.AddCommand(newOwnerSetCmd())
	return cmd
}

func newOwnerSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <registry|proxy> <new-owner>",
		Short: "Hand a contract to a new owner",
		Long: `Hand the registry or the governance proxy to a new owner. --from must be the
current owner.

While the proxy owns the registry, the registry's ownership cannot be transferred:
the proxy handles the setOwner selector itself and never relays it.`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(usecase.TargetRegistry), string(usecase.TargetProxy)},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			target := usecase.OwnershipTarget(args[0])
			if target != usecase.TargetRegistry && target != usecase.TargetProxy {
				return fmt.Errorf("unknown contract %q (expected registry or proxy)", args[0])
			}
			owner, err := parseAccount(app, args[1])
			if err != nil {
				return err
			}

			result, err := app.TransferOwnership.Execute(cmd.Context(), usecase.TransferOwnershipParams{
				Target: target,
				Owner:  owner,
			})
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewAdminRenderer(cmd.OutOrStdout()).RenderOwnership(result)
			})
		},
	}
}
