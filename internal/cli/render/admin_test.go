package render

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

func TestAdminRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewAdminRenderer(&out)

	require.NoError(t, r.RenderTrack(&usecase.ConfigureTrackResult{
		Role:  usecase.RoleConfirmer,
		Track: domain.TrackBeta,
		Was:   common.HexToAddress("0xc1"),
	}))
	assert.Contains(t, out.String(), "Confirmer of beta set to -")
	assert.Contains(t, out.String(), common.HexToAddress("0xc1").Hex())

	out.Reset()
	require.NoError(t, r.RenderOwnership(&usecase.TransferOwnershipResult{Target: usecase.TargetProxy}))
	assert.Contains(t, out.String(), "Proxy ownership transferred")

	out.Reset()
	require.NoError(t, r.RenderFork(&usecase.RatifyForkResult{ForkNumber: 7, Relayed: true}))
	assert.Contains(t, out.String(), "Ratified fork 7")
	assert.Contains(t, out.String(), "relayed by the proxy")

	out.Reset()
	require.NoError(t, r.RenderClient(&usecase.ManageClientsResult{
		Action:        usecase.ClientRequire,
		Client:        domain.MustClientName("geth"),
		PreviousOwner: common.HexToAddress("0xb1"),
	}))
	assert.Contains(t, out.String(), "Marked client geth as not required")
	assert.NotContains(t, out.String(), "previous owner")
}
