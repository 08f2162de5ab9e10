package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/opsgov/internal/cli/render"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// NewReleaseCmd creates the release command group
func NewReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Propose releases",
	}
	cmd.AddCommand(newReleaseAddCmd())
	return cmd
}

func newReleaseAddCmd() *cobra.Command {
	var (
		track     string
		version   string
		forkBlock uint32
		critical  bool
		direct    bool
	)

	cmd := &cobra.Command{
		Use:   "add <release>",
		Short: "Propose a release on a track",
		Long: `Propose a release of the governance proxy's client on a track. --from must be the
track's delegate. On a track with a confirmer the proposal waits for confirmation;
otherwise it is executed on the registry right away.

<release> is a 0x-prefixed hex id (for example a commit hash) or text of at most 32
bytes. With --direct the release is recorded for the sender's own client without
going through the proxy.

Examples:
  opsgov release add 0x5b1f... --track stable --version 1.2.3 --from delegate
  opsgov release add v1.2.3-rc1 --track nightly --version 1.2.3 --fork-block 1900000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			id, err := parseBytes32("release", args[0])
			if err != nil {
				return err
			}
			t, err := domain.ParseTrack(track)
			if err != nil {
				return err
			}
			semver, err := domain.ParseSemver(version)
			if err != nil {
				return err
			}

			result, err := app.ProposeRelease.Execute(cmd.Context(), usecase.ProposeReleaseParams{
				Release:   id,
				ForkBlock: forkBlock,
				Track:     t,
				Semver:    semver,
				Critical:  critical,
				Direct:    direct,
			})
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewProposalRenderer(cmd.OutOrStdout()).Render(result)
			})
		},
	}

	cmd.Flags().StringVar(&track, "track", "stable", "Release track (stable, beta, nightly or a number)")
	cmd.Flags().StringVar(&version, "version", "0.0.0", "Semantic version major.minor.patch")
	cmd.Flags().Uint32Var(&forkBlock, "fork-block", 0, "Block of the latest fork the release supports")
	cmd.Flags().BoolVar(&critical, "critical", false, "Mark the release as critical")
	cmd.Flags().BoolVar(&direct, "direct", false, "Record for the sender's own client, bypassing the proxy")

	return cmd
}

// NewChecksumCmd creates the checksum command group
func NewChecksumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checksum",
		Short: "Propose platform checksums",
	}
	cmd.AddCommand(newChecksumAddCmd())
	return cmd
}

func newChecksumAddCmd() *cobra.Command {
	var direct bool

	cmd := &cobra.Command{
		Use:   "add <release> <platform> <checksum>",
		Short: "Propose the checksum of a release build",
		Long: `Propose the checksum of a release on one platform. The proposal goes to the track
of the release: the track of its waiting proposal if it has one, otherwise the track
the registry recorded for it.

Example:
  opsgov checksum add 0x5b1f... x86_64-unknown-linux-gnu 0x9c4e... --from delegate`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			id, err := parseBytes32("release", args[0])
			if err != nil {
				return err
			}
			platform, err := parseBytes32("platform", args[1])
			if err != nil {
				return err
			}
			checksum, err := parseBytes32("checksum", args[2])
			if err != nil {
				return err
			}

			result, err := app.ProposeChecksum.Execute(cmd.Context(), usecase.ProposeChecksumParams{
				Release:  id,
				Platform: platform,
				Checksum: checksum,
				Direct:   direct,
			})
			if err != nil {
				return err
			}
			return output(cmd, app, result, func() error {
				return render.NewProposalRenderer(cmd.OutOrStdout()).Render(result)
			})
		},
	}

	cmd.Flags().BoolVar(&direct, "direct", false, "Record for the sender's own client, bypassing the proxy")

	return cmd
}
