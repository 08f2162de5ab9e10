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

func TestQueryRegistry_Client(t *testing.T) {
	ctx := context.Background()
	h := initialized(t)
	query := usecase.NewQueryRegistry(h.tx, h.journal)

	info, err := query.Client(ctx, besu)
	require.NoError(t, err)
	assert.True(t, info.Registered())
	assert.Equal(t, besuOwner, info.Owner)
	assert.Empty(t, info.Suggestions)

	info, err = query.Client(ctx, domain.MustClientName("gth"))
	require.NoError(t, err)
	assert.False(t, info.Registered())
	assert.Equal(t, []string{"geth"}, info.Suggestions)

	t.Run("removed clients are not suggested", func(t *testing.T) {
		h.as(admin)
		_, err := usecase.NewManageClients(h.tx).Execute(ctx, usecase.ManageClientsParams{Action: usecase.ClientRemove, Client: besu})
		require.NoError(t, err)

		info, err := query.Client(ctx, domain.MustClientName("bsu"))
		require.NoError(t, err)
		assert.Empty(t, info.Suggestions)
	})
}

func TestQueryRegistry_NotFound(t *testing.T) {
	ctx := context.Background()
	h := initialized(t)
	query := usecase.NewQueryRegistry(h.tx, h.journal)

	_, err := query.Release(ctx, geth, release1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = query.Checksum(ctx, geth, release1, linuxAmd64)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = query.Build(ctx, geth, checksumOne)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = query.Latest(ctx, geth, domain.TrackBeta)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	info, err := query.ClientOf(ctx, outsider)
	require.NoError(t, err)
	assert.True(t, info.Name.IsZero())
	assert.Equal(t, common.Address{}, info.Owner)
}

func TestQueryRegistry_LatestInTrackIsLastWrite(t *testing.T) {
	ctx := context.Background()
	h := initialized(t)

	proposeRelease(t, h, release1, domain.TrackNightly)
	proposeRelease(t, h, release2, domain.TrackNightly)

	query := usecase.NewQueryRegistry(h.tx, h.journal)
	latest, err := query.Latest(ctx, geth, domain.TrackNightly)
	require.NoError(t, err)
	assert.Equal(t, release2, latest.ID)

	older, err := query.Release(ctx, geth, release1)
	require.NoError(t, err)
	assert.False(t, older.IsLatest)
	assert.Equal(t, release2, older.LatestInTrack)
}
