package interactive

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

func request(track domain.Track, hash, desc string) *usecase.RequestView {
	return &usecase.RequestView{
		PendingRequest: models.PendingRequest{Track: track, Hash: common.HexToHash(hash)},
		Description:    desc,
	}
}

func TestSelectRequest_NoPrompt(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
	ctx := context.Background()

	_, err := s.SelectRequest(ctx, "pick", nil)
	assert.Error(t, err)

	only := request(domain.TrackStable, "0x01", "addRelease")
	got, err := s.SelectRequest(ctx, "pick", []*usecase.RequestView{only})
	require.NoError(t, err)
	assert.Same(t, only, got)

	_, err = s.SelectRequest(ctx, "pick", []*usecase.RequestView{only, request(domain.TrackBeta, "0x02", "addChecksum")})
	assert.ErrorIs(t, err, ErrNonInteractive)

	assert.True(t, s.Confirm("proceed?"))
}

func TestFuzzySearch(t *testing.T) {
	items := plainRequestOptions([]*usecase.RequestView{
		request(domain.TrackStable, "0xaa", "addRelease(1.2.0)"),
		request(domain.TrackNightly, "0xbb", "addChecksum"),
	})
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("stable", 0))
	assert.False(t, search("stable", 1))
	assert.True(t, search("adchk", 1))
	assert.False(t, search("zzz", 0))
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "0x12", shortHash("0x12"))
	h := common.HexToHash("0xabcdef").Hex()
	assert.Equal(t, h[:10]+"…"+h[62:], shortHash(h))
}
