package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/domain"
)

// NewQueryCmd creates the query command group
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read the registry",
		Long: `Read the registry and the governance proxy. Queries never send transactions and do
not need a sender.`,
	}
	cmd.AddCommand(
		newQueryStatusCmd(),
		newQueryClientCmd(),
		newQueryOwnerOfCmd(),
		newQueryReleaseCmd(),
		newQueryChecksumCmd(),
		newQueryBuildCmd(),
		newQueryLatestCmd(),
	)
	return cmd
}

func newQueryStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the deployment, owners, latest fork and track assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			status, err := app.QueryRegistry.Status(cmd.Context())
			if err != nil {
				return err
			}
			return output(cmd, app, status, func() error {
				return render.NewQueryRenderer(cmd.OutOrStdout()).RenderStatus(status)
			})
		},
	}
}

func newQueryClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "client <client>",
		Short: "Show the owner and required flag of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			name, err := domain.ParseClientName(args[0])
			if err != nil {
				return err
			}
			info, err := app.QueryRegistry.Client(cmd.Context(), name)
			if err != nil {
				return err
			}
			return output(cmd, app, info, func() error {
				return render.NewQueryRenderer(cmd.OutOrStdout()).RenderClient(info)
			})
		},
	}
}

func newQueryOwnerOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owner-of <address>",
		Short: "Show the client owned by an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			owner, err := parseAccount(app, args[0])
			if err != nil {
				return err
			}
			info, err := app.QueryRegistry.ClientOf(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return output(cmd, app, info, func() error {
				return render.NewQueryRenderer(cmd.OutOrStdout()).RenderClient(info)
			})
		},
	}
}

func newQueryReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release <client> <release>",
		Short: "Show a release of a client",
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
			id, err := parseBytes32("release", args[1])
			if err != nil {
				return err
			}
			info, err := app.QueryRegistry.Release(cmd.Context(), name, id)
			if err != nil {
				return err
			}
			return output(cmd, app, info, func() error {
				return render.NewQueryRenderer(cmd.OutOrStdout()).RenderRelease(info)
			})
		},
	}
}

func newQueryChecksumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <client> <release> <platform>",
		Short: "Show the checksum of a release on a platform",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			name, err := domain.ParseClientName(args[0])
			if err != nil {
				return err
			}
			release, err := parseBytes32("release", args[1])
			if err != nil {
				return err
			}
			platform, err := parseBytes32("platform", args[2])
			if err != nil {
				return err
			}
			info, err := app.QueryRegistry.Checksum(cmd.Context(), name, release, platform)
			if err != nil {
				return err
			}
			return output(cmd, app, info, func() error {
				return render.NewQueryRenderer(cmd.OutOrStdout()).RenderChecksum(info)
			})
		},
	}
}

func newQueryBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <client> <checksum>",
		Short: "Show the release and platform a checksum belongs to",
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
			checksum, err := parseBytes32("checksum", args[1])
			if err != nil {
				return err
			}
			info, err := app.QueryRegistry.Build(cmd.Context(), name, checksum)
			if err != nil {
				return err
			}
			return output(cmd, app, info, func() error {
				return render.NewQueryRenderer(cmd.OutOrStdout()).RenderBuild(info)
			})
		},
	}
}

func newQueryLatestCmd() *cobra.Command {
	var track string

	cmd := &cobra.Command{
		Use:   "latest <client>",
		Short: "Show the latest release of a client on a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			name, err := domain.ParseClientName(args[0])
			if err != nil {
				return err
			}
			t, err := domain.ParseTrack(track)
			if err != nil {
				return err
			}
			info, err := app.QueryRegistry.Latest(cmd.Context(), name, t)
			if err != nil {
				return err
			}
			return output(cmd, app, info, func() error {
				return render.NewQueryRenderer(cmd.OutOrStdout()).RenderLatest(info)
			})
		},
	}

	cmd.Flags().StringVar(&track, "track", "stable", "Release track")

	return cmd
}
