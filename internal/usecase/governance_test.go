package usecase_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

func proposeRelease(t *testing.T, h *harness, id common.Hash, track domain.Track) *usecase.ProposalResult {
	t.Helper()
	h.as(delegate)
	result, err := usecase.NewProposeRelease(h.tx).Execute(context.Background(), usecase.ProposeReleaseParams{
		Release:   id,
		ForkBlock: 100,
		Track:     track,
		Semver:    domain.NewSemver(1, 2, 3),
	})
	require.NoError(t, err)
	return result
}

func TestProposeAndConfirm(t *testing.T) {
	ctx := context.Background()
	h := initialized(t)

	proposal := proposeRelease(t, h, release1, domain.TrackStable)
	assert.True(t, proposal.Waiting)
	assert.Equal(t, domain.TrackStable, proposal.Track)
	assert.Contains(t, proposal.Description, "addRelease")

	listed, err := usecase.NewListRequests(h.tx).Execute(ctx, usecase.ListRequestsParams{})
	require.NoError(t, err)
	require.Len(t, listed.Requests, 1)
	assert.Equal(t, proposal.Hash, listed.Requests[0].Hash)
	assert.Equal(t, release1, listed.Requests[0].Release)
	assert.Equal(t, delegate, listed.Requests[0].ProposedBy)
	assert.Equal(t, 1, listed.ByTrack[domain.TrackStable])

	query := usecase.NewQueryRegistry(h.tx, h.journal)
	_, err = query.Release(ctx, geth, release1)
	assert.ErrorIs(t, err, domain.ErrNotFound, "nothing is recorded before confirmation")

	t.Run("only the confirmer resolves", func(t *testing.T) {
		h.as(delegate)
		_, err := usecase.NewResolveRequest(h.tx).Execute(ctx, usecase.ResolveRequestParams{Track: domain.TrackStable, Hash: proposal.Hash})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	h.as(confirmer)
	resolved, err := usecase.NewResolveRequest(h.tx).Execute(ctx, usecase.ResolveRequestParams{Track: domain.TrackStable, Hash: proposal.Hash})
	require.NoError(t, err)
	assert.True(t, resolved.Success)
	require.NotNil(t, resolved.Request)
	assert.Equal(t, release1, resolved.Request.Release)

	info, err := query.Release(ctx, geth, release1)
	require.NoError(t, err)
	assert.Equal(t, domain.TrackStable, info.Release.Track)
	assert.Equal(t, domain.NewSemver(1, 2, 3), info.Release.Semver)
	assert.True(t, info.IsLatest)
	assert.Equal(t, release1, info.LatestInTrack)

	latest, err := query.Latest(ctx, geth, domain.TrackStable)
	require.NoError(t, err)
	assert.Equal(t, release1, latest.ID)

	listed, err = usecase.NewListRequests(h.tx).Execute(ctx, usecase.ListRequestsParams{})
	require.NoError(t, err)
	assert.Empty(t, listed.Requests)

	t.Run("resolved request is gone", func(t *testing.T) {
		h.as(confirmer)
		_, err := usecase.NewResolveRequest(h.tx).Execute(ctx, usecase.ResolveRequestParams{Track: domain.TrackStable, Hash: proposal.Hash})
		assert.ErrorIs(t, err, domain.ErrUnknownRequest)
	})
}

func TestProposeAndReject(t *testing.T) {
	ctx := context.Background()
	h := initialized(t)
	proposal := proposeRelease(t, h, release1, domain.TrackStable)

	h.as(confirmer)
	resolved, err := usecase.NewResolveRequest(h.tx).Execute(ctx, usecase.ResolveRequestParams{
		Track:  domain.TrackStable,
		Hash:   proposal.Hash,
		Reject: true,
	})
	require.NoError(t, err)
	assert.True(t, resolved.Rejected)
	assert.False(t, resolved.Success)

	_, err = usecase.NewQueryRegistry(h.tx, h.journal).Release(ctx, geth, release1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	listed, err := usecase.NewListRequests(h.tx).Execute(ctx, usecase.ListRequestsParams{Track: domain.TrackStable})
	require.NoError(t, err)
	assert.Empty(t, listed.Requests)
}

func TestProposeWithoutConfirmer(t *testing.T) {
	ctx := context.Background()
	h := initialized(t)

	proposal := proposeRelease(t, h, release2, domain.TrackNightly)
	assert.False(t, proposal.Waiting)
	assert.True(t, proposal.Success)
	assert.Equal(t, domain.TrackNightly, proposal.Track)

	latest, err := usecase.NewQueryRegistry(h.tx, h.journal).Latest(ctx, geth, domain.TrackNightly)
	require.NoError(t, err)
	assert.Equal(t, release2, latest.ID)

	t.Run("registry failure is reported, not raised", func(t *testing.T) {
		again := proposeRelease(t, h, release2, domain.TrackNightly)
		assert.False(t, again.Waiting)
		assert.False(t, again.Success)
		assert.True(t, again.Receipt.Succeeded())
	})
}

func TestProposeChecksum(t *testing.T) {
	ctx := context.Background()
	h := initialized(t)
	proposeRelease(t, h, release1, domain.TrackStable)

	h.as(delegate)
	proposal, err := usecase.NewProposeChecksum(h.tx).Execute(ctx, usecase.ProposeChecksumParams{
		Release:  release1,
		Platform: linuxAmd64,
		Checksum: checksumOne,
	})
	require.NoError(t, err)
	assert.True(t, proposal.Waiting)
	assert.Equal(t, domain.TrackStable, proposal.Track, "checksum follows the waiting release's track")

	listed, err := usecase.NewListRequests(h.tx).Execute(ctx, usecase.ListRequestsParams{})
	require.NoError(t, err)
	require.Len(t, listed.Requests, 2)
	assert.Equal(t, 2, listed.ByTrack[domain.TrackStable])

	// Confirm the release first, then its checksum
	h.as(confirmer)
	resolve := usecase.NewResolveRequest(h.tx)
	for _, req := range listed.Requests {
		result, err := resolve.Execute(ctx, usecase.ResolveRequestParams{Track: req.Track, Hash: req.Hash})
		require.NoError(t, err)
		assert.True(t, result.Success, req.Description)
	}

	query := usecase.NewQueryRegistry(h.tx, h.journal)
	sum, err := query.Checksum(ctx, geth, release1, linuxAmd64)
	require.NoError(t, err)
	assert.Equal(t, checksumOne, sum.Checksum)

	build, err := query.Build(ctx, geth, checksumOne)
	require.NoError(t, err)
	assert.Equal(t, release1, build.Build.Release)
	assert.Equal(t, linuxAmd64, build.Build.Platform)

	t.Run("unknown release", func(t *testing.T) {
		h.as(delegate)
		_, err := usecase.NewProposeChecksum(h.tx).Execute(ctx, usecase.ProposeChecksumParams{
			Release:  release2,
			Platform: linuxAmd64,
			Checksum: checksumOne,
		})
		assert.ErrorIs(t, err, domain.ErrUnknownRelease)
	})
}

func TestProposeValidation(t *testing.T) {
	ctx := context.Background()
	h := initialized(t)

	t.Run("track zero", func(t *testing.T) {
		h.as(delegate)
		_, err := usecase.NewProposeRelease(h.tx).Execute(ctx, usecase.ProposeReleaseParams{Release: release1})
		assert.ErrorIs(t, err, domain.ErrInvalidTrack)
	})

	t.Run("not the delegate", func(t *testing.T) {
		h.as(outsider)
		_, err := usecase.NewProposeRelease(h.tx).Execute(ctx, usecase.ProposeReleaseParams{Release: release1, Track: domain.TrackStable})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("direct release of own client", func(t *testing.T) {
		h.as(besuOwner)
		result, err := usecase.NewProposeRelease(h.tx).Execute(ctx, usecase.ProposeReleaseParams{
			Release: release1,
			Track:   domain.TrackBeta,
			Direct:  true,
		})
		require.NoError(t, err)
		assert.True(t, result.Direct)
		assert.True(t, result.Success)

		latest, err := usecase.NewQueryRegistry(h.tx, h.journal).Latest(ctx, besu, domain.TrackBeta)
		require.NoError(t, err)
		assert.Equal(t, release1, latest.ID)
	})
}

func TestIdenticalProposalsCollapse(t *testing.T) {
	ctx := context.Background()
	h := initialized(t)

	first := proposeRelease(t, h, release1, domain.TrackStable)
	second := proposeRelease(t, h, release1, domain.TrackStable)
	assert.Equal(t, first.Hash, second.Hash)

	listed, err := usecase.NewListRequests(h.tx).Execute(ctx, usecase.ListRequestsParams{})
	require.NoError(t, err)
	require.Len(t, listed.Requests, 1)
	assert.Equal(t, second.Receipt.TxHash, listed.Requests[0].ProposalTx)
}
