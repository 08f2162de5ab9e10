package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// NewClientCmd creates the client command group
func NewClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage the clients of the registry",
		Long: `Manage which address owns each client. An address owns at most one client and a
client has at most one owner.

add, set, remove and require are registry owner operations. When the governance proxy owns the
registry they are relayed through it, so --from must be the proxy owner.`,
	}

	cmd.AddCommand(
		newClientMutateCmd(usecase.ClientAdd, "add <client> <owner>", "Register a new client", 2),
		newClientMutateCmd(usecase.ClientSet, "set <client> <owner>", "Assign a client to an owner, creating or overwriting it", 2),
		newClientMutateCmd(usecase.ClientRemove, "remove <client>", "Unregister a client", 1),
		newClientRequireCmd(),
		newClientTransferCmd(),
	)
	return cmd
}

func newClientMutateCmd(action usecase.ClientAction, use, short string, nargs int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			name, err := domain.ParseClientName(args[0])
			if err != nil {
				return err
			}
			params := usecase.ManageClientsParams{Action: action, Client: name}
			if nargs == 2 {
				if params.Owner, err = parseAccount(app, args[1]); err != nil {
					return err
				}
			}

			result, err := app.ManageClients.Execute(cmd.Context(), params)
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewAdminRenderer(cmd.OutOrStdout()).RenderClient(result)
			})
		},
	}
}

func newClientRequireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "require <client> <true|false>",
		Short: "Flag whether the releases of a client are required",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			name, err := domain.ParseClientName(args[0])
			if err != nil {
				return err
			}
			required, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid flag %q: expected true or false", args[1])
			}

			result, err := app.ManageClients.Execute(cmd.Context(), usecase.ManageClientsParams{
				Action:   usecase.ClientRequire,
				Client:   name,
				Required: required,
			})
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewAdminRenderer(cmd.OutOrStdout()).RenderClient(result)
			})
		},
	}
}

func newClientTransferCmd() *cobra.Command {
	var viaProxy bool

	cmd := &cobra.Command{
		Use:   "transfer <new-owner>",
		Short: "Hand the sender's client to a new owner",
		Long: `Hand the client owned by --from to a new owner. With --via-proxy the client owned by
the governance proxy is transferred instead; --from must then be the proxy owner.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			owner, err := parseAccount(app, args[0])
			if err != nil {
				return err
			}

			result, err := app.ManageClients.Execute(cmd.Context(), usecase.ManageClientsParams{
				Action:   usecase.ClientTransfer,
				Owner:    owner,
				ViaProxy: viaProxy,
			})
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewAdminRenderer(cmd.OutOrStdout()).RenderClient(result)
			})
		},
	}

	cmd.Flags().BoolVar(&viaProxy, "via-proxy", false, "Transfer the client owned by the governance proxy")

	return cmd
}
