package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/app"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// NewRequestCmd creates the request command group
func NewRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "request",
		Aliases: []string{"requests"},
		Short:   "List, confirm and reject waiting requests",
	}
	cmd.AddCommand(
		newRequestListCmd(),
		newRequestResolveCmd(false),
		newRequestResolveCmd(true),
	)
	return cmd
}

func newRequestListCmd() *cobra.Command {
	var track string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List requests waiting for confirmation",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			t, err := parseTrackFlag(track)
			if err != nil {
				return err
			}

			result, err := app.ListRequests.Execute(cmd.Context(), usecase.ListRequestsParams{Track: t})
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewRequestsRenderer(cmd.OutOrStdout()).Render(result)
			})
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "Only list requests of this track")

	return cmd
}

func newRequestResolveCmd(reject bool) *cobra.Command {
	var (
		track string
		yes   bool
	)

	verb, short := "confirm", "Confirm a waiting request and execute it on the registry"
	if reject {
		verb, short = "reject", "Reject a waiting request"
	}

	cmd := &cobra.Command{
		Use:   verb + " [request-hash]",
		Short: short,
		Long: short + `. --from must be the confirmer of the request's track.

Without a hash the waiting requests are offered for selection.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			t, err := parseTrackFlag(track)
			if err != nil {
				return err
			}

			params := usecase.ResolveRequestParams{Track: t, Reject: reject}
			if len(args) == 1 {
				if params.Hash, err = parseRequestHash(args[0]); err != nil {
					return err
				}
			}

			// Fill in what was not given from the waiting requests
			if params.Hash == (common.Hash{}) || params.Track == domain.TrackNone {
				req, err := pickRequest(cmd, app, params, verb)
				if err != nil {
					return err
				}
				params.Hash, params.Track = req.Hash, req.Track
				if !yes && !app.Selector.Confirm(fmt.Sprintf("%s %s on %s", verb, req.Description, req.Track)) {
					return fmt.Errorf("%s cancelled", verb)
				}
			}

			result, err := app.ResolveRequest.Execute(cmd.Context(), params)
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewResolveRenderer(cmd.OutOrStdout()).Render(result)
			})
		},
	}

	cmd.Flags().StringVar(&track, "track", "", "Track of the request")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// pickRequest finds the waiting request params refers to, asking the operator when more
// than one matches
func pickRequest(cmd *cobra.Command, a *app.App, params usecase.ResolveRequestParams, verb string) (*usecase.RequestView, error) {
	listed, err := a.ListRequests.Execute(cmd.Context(), usecase.ListRequestsParams{Track: params.Track})
	if err != nil {
		return nil, err
	}

	candidates := listed.Requests
	if params.Hash != (common.Hash{}) {
		candidates = lo.Filter(candidates, func(r *usecase.RequestView, _ int) bool {
			return r.Hash == params.Hash
		})
	}
	if len(candidates) == 0 {
		if params.Hash != (common.Hash{}) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRequest, params.Hash.Hex())
		}
		return nil, fmt.Errorf("no requests waiting for confirmation")
	}

	return a.Selector.SelectRequest(cmd.Context(), fmt.Sprintf("Select a request to %s", verb), candidates)
}
