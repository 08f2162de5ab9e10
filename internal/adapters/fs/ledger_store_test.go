package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

func newTestLedgerStore(t *testing.T) (*LedgerStoreAdapter, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "ledger.json")
	return NewLedgerStoreAdapter(&config.RuntimeConfig{StateFile: path}), path
}

func TestLedgerStore_LoadMissing(t *testing.T) {
	store, _ := newTestLedgerStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLedgerStore_SaveAndLoad(t *testing.T) {
	store, path := newTestLedgerStore(t)
	ctx := context.Background()

	state := &models.LedgerState{
		Nonce:       3,
		BlockNumber: 7,
		Contracts: []models.ContractState{
			{
				Kind:    models.KindRegistry,
				Address: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
				Storage: json.RawMessage(`{"grandOwner":"0x00000000000000000000000000000000000000a0"}`),
			},
		},
	}

	require.NoError(t, store.Save(ctx, state))

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.Nonce, loaded.Nonce)
	assert.Equal(t, state.BlockNumber, loaded.BlockNumber)
	require.Len(t, loaded.Contracts, 1)
	assert.Equal(t, state.Contracts[0].Address, loaded.Contracts[0].Address)
	assert.JSONEq(t, string(state.Contracts[0].Storage), string(loaded.Contracts[0].Storage))

	// no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLedgerStore_Overwrite(t *testing.T) {
	store, _ := newTestLedgerStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.LedgerState{Nonce: 1}))
	require.NoError(t, store.Save(ctx, &models.LedgerState{Nonce: 2}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), loaded.Nonce)
}

func TestLedgerStore_Corrupt(t *testing.T) {
	store, path := newTestLedgerStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse ledger state file")
}

func TestLedgerStore_Lock(t *testing.T) {
	store, path := newTestLedgerStore(t)
	other := NewLedgerStoreAdapter(&config.RuntimeConfig{StateFile: path})
	ctx := context.Background()

	unlock, err := store.Lock(ctx)
	require.NoError(t, err)
	assert.FileExists(t, path+".lock")

	t.Run("second holder waits", func(t *testing.T) {
		waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := other.Lock(waitCtx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("released lock is acquired", func(t *testing.T) {
		unlock()
		otherUnlock, err := other.Lock(ctx)
		require.NoError(t, err)
		otherUnlock()
	})
}
