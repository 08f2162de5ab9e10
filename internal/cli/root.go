package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/app"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// rootState holds what the root command must release when the command finishes
type rootState struct {
	cleanup func()
}

func (s *rootState) close() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// Execute runs the CLI
func Execute() error {
	state := &rootState{}
	defer state.close()
	return newRootCmd(state).Execute()
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootState{})
}

func newRootCmd(state *rootState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opsgov",
		Short: "Confirmation-gated release registry",
		Long: `opsgov keeps a ledger of client releases and platform checksums. Releases are
proposed per track by a delegate and reach the registry once the track's confirmer
confirms them, or immediately on tracks without a confirmer.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := os.Getwd()
			if err != nil {
				return err
			}
			v := config.SetupViper(projectRoot, cmd)

			appInstance, cleanup, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			state.cleanup = cleanup

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				state.cleanup = func() {
					cancel()
					cleanup()
				}
			}
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			state.close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("from", "", "Sender address or sender name from opsgov.toml")
	rootCmd.PersistentFlags().String("private-key", "", "Sender private key (hex, ${VAR} expanded)")
	rootCmd.PersistentFlags().String("config", "", "Config file (defaults to opsgov.toml/opsgov.yaml in the working directory)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding the ledger and event journal (defaults to ./.opsgov)")
	rootCmd.PersistentFlags().Duration("timeout", time.Minute, "Timeout for the command")
	rootCmd.PersistentFlags().Bool("json", false, "Output JSON")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "governance",
		Title: "Governance Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "query",
		Title: "Query Commands",
	})

	for _, cmd := range []*cobra.Command{NewReleaseCmd(), NewChecksumCmd(), NewRequestCmd()} {
		cmd.GroupID = "governance"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewInitCmd(), NewClientCmd(), NewTrackCmd(), NewOwnerCmd(), NewForkCmd(), NewRelayCmd()} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewQueryCmd(), NewEventsCmd()} {
		cmd.GroupID = "query"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// output writes result as JSON when requested, otherwise through render
func output(cmd *cobra.Command, a *app.App, result any, draw func() error) error {
	if a.Config.JSON {
		return renderJSON(cmd, result)
	}
	return draw()
}

func renderJSON(cmd *cobra.Command, v any) error {
	return render.JSON(cmd.OutOrStdout(), v)
}
