package cli

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// NewTrackCmd creates the track command group
func NewTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "track",
		Aliases: []string{"tracks"},
		Short:   "Show and assign track delegates and confirmers",
		Long: `Each track of the governance proxy has a delegate, who proposes releases and
checksums, and an optional confirmer, who confirms or rejects them. A track without
a confirmer executes proposals immediately.`,
	}
	cmd.AddCommand(
		newTrackShowCmd(),
		newTrackSetCmd(usecase.RoleDelegate),
		newTrackSetCmd(usecase.RoleConfirmer),
	)
	return cmd
}

func newTrackShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [track...]",
		Short: "Show track assignments (stable, beta and nightly by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			tracks := make([]domain.Track, 0, len(args))
			for _, arg := range args {
				t, err := domain.ParseTrack(arg)
				if err != nil {
					return err
				}
				tracks = append(tracks, t)
			}

			assignments, err := app.ConfigureTracks.Show(cmd.Context(), tracks)
			if err != nil {
				return err
			}
			return output(cmd, app, assignments, func() error {
				return render.NewTracksRenderer(cmd.OutOrStdout()).Render(assignments)
			})
		},
	}
}

func newTrackSetCmd(role usecase.TrackRole) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("set-%s <track> <address|none>", role),
		Short: fmt.Sprintf("Assign the %s of a track (proxy owner only)", role),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			track, err := domain.ParseTrack(args[0])
			if err != nil {
				return err
			}
			var addr common.Address
			if !strings.EqualFold(args[1], "none") {
				if addr, err = parseAccount(app, args[1]); err != nil {
					return err
				}
			}

			result, err := app.ConfigureTracks.Execute(cmd.Context(), usecase.ConfigureTrackParams{
				Role:    role,
				Track:   track,
				Address: addr,
			})
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewAdminRenderer(cmd.OutOrStdout()).RenderTrack(result)
			})
		},
	}
}
