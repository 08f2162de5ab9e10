package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/config"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the ledger from the genesis section of the config file",
		Long: `Create a new ledger: deploy the registry, register the genesis clients and set
up the governance proxy as described by the [genesis] section of opsgov.toml.

Example opsgov.toml:

  [senders.admin]
  private_key = "${ADMIN_PRIVATE_KEY}"

  [genesis.registry]
  owner = "admin"

  [[genesis.clients]]
  name = "geth"
  owner = "admin"

  [genesis.proxy]
  owner = "admin"
  client = "geth"
  owns_registry = true

  [[genesis.proxy.tracks]]
  track = "stable"
  delegate = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
  confirmer = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing ledger and its event journal")

	return cmd
}

// runInit executes the init command
func runInit(cmd *cobra.Command, force bool) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	genesis, err := config.BuildGenesis(app.Config.File)
	if err != nil {
		if errors.Is(err, config.ErrNoGenesis) {
			return fmt.Errorf("%w: add a [genesis] section to opsgov.toml", err)
		}
		return err
	}

	if force && !app.Selector.Confirm("Replace the existing ledger and its event journal") {
		return fmt.Errorf("init cancelled")
	}

	result, err := app.InitLedger.Execute(cmd.Context(), usecase.InitLedgerParams{
		Genesis: genesis,
		Force:   force,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyInitialized) {
			return fmt.Errorf("%w in %s (use --force to replace it)", err, app.Config.DataDir)
		}
		return err
	}

	return output(cmd, app, result, func() error {
		return render.NewAdminRenderer(cmd.OutOrStdout()).RenderInit(result)
	})
}
