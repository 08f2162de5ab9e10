package blockchain

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/bindings"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

var (
	owner     = common.BigToAddress(big.NewInt(0xa0))
	delegate  = common.BigToAddress(big.NewInt(0xa1))
	confirmer = common.BigToAddress(big.NewInt(0xa2))
	parity    = domain.MustClientName("parity")
	releaseID = common.HexToHash("0x1234560000000000000000000000000000000000000000000000000000000000")
)

func newTestFactory() *LedgerFactoryAdapter {
	return NewLedgerFactoryAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLedgerAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ops := bindings.NewOperations()
	px := bindings.NewOperationsProxy()
	factory := newTestFactory()

	ledger := factory.New()
	reg := ledger.DeployRegistry(owner)
	proxyAddr := ledger.DeployProxy(owner, reg, []models.TrackAssignment{
		{Track: domain.TrackStable, Delegate: delegate, Confirmer: confirmer},
	})
	assert.Equal(t, models.Deployment{Registry: reg, Proxy: proxyAddr}, ledger.Deployment())

	_, err := ledger.Send(ctx, owner, reg, ops.PackAddClient(parity, proxyAddr))
	require.NoError(t, err)

	payload := ops.PackAddRelease(releaseID, 100, domain.TrackStable, domain.NewSemver(1, 0, 0), false)
	receipt, err := ledger.Send(ctx, delegate, proxyAddr, payload)
	require.NoError(t, err)
	require.Len(t, models.Events[*domain.NewRequestWaiting](receipt.Logs), 1)

	state, err := ledger.Export()
	require.NoError(t, err)

	reopened, err := factory.Open(state)
	require.NoError(t, err)
	assert.Equal(t, ledger.Deployment(), reopened.Deployment())

	pending, err := reopened.Pending(ctx, proxyAddr, domain.TrackNone)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, bindings.RequestHash(payload), pending[0].Hash)
	assert.Equal(t, delegate, pending[0].ProposedBy)

	out, err := reopened.Call(ctx, proxyAddr, px.PackConfirmer(domain.TrackStable))
	require.NoError(t, err)
	got, err := px.UnpackConfirmer(out)
	require.NoError(t, err)
	assert.Equal(t, confirmer, got)

	out, err = reopened.Call(ctx, reg, ops.PackClient(parity))
	require.NoError(t, err)
	clientOwner, err := ops.UnpackClient(out)
	require.NoError(t, err)
	assert.Equal(t, proxyAddr, clientOwner)
}

func TestLedgerAdapter_Pending(t *testing.T) {
	ctx := context.Background()
	ledger := newTestFactory().New()
	reg := ledger.DeployRegistry(owner)

	_, err := ledger.Pending(ctx, reg, domain.TrackNone)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a proxy")

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ledger.Pending(cctx, reg, domain.TrackNone)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLedgerFactoryAdapter_Open(t *testing.T) {
	factory := newTestFactory()

	_, err := factory.Open(&models.LedgerState{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no registry")

	_, err = factory.Open(&models.LedgerState{
		Contracts: []models.ContractState{{Kind: "token", Address: owner}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown contract kind")

	ledger := factory.New()
	reg := ledger.DeployRegistry(owner)
	state, err := ledger.Export()
	require.NoError(t, err)

	reopened, err := factory.Open(state)
	require.NoError(t, err)
	assert.Equal(t, models.Deployment{Registry: reg}, reopened.Deployment())
	assert.False(t, reopened.Deployment().HasProxy())
}
