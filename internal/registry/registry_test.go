package registry

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/opsgov/internal/chain"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/bindings"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

var (
	accounts = []common.Address{
		common.HexToAddress("0x00000000000000000000000000000000000000a0"),
		common.HexToAddress("0x00000000000000000000000000000000000000a1"),
		common.HexToAddress("0x00000000000000000000000000000000000000a2"),
	}

	parity      = domain.MustClientName("parity")
	parityLight = domain.MustClientName("parity-light")

	releaseID = common.HexToHash("0x1234560000000000000000000000000000000000000000000000000000000000")
	platform  = common.HexToHash("0x1337000000000000000000000000000000000000000000000000000000000000")
	checksum  = common.HexToHash("0x1111110000000000000000000000000000000000000000000000000000000000")
)

type fixture struct {
	t       *testing.T
	backend *chain.Backend
	addr    common.Address
	ops     *bindings.Operations
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture deploys a registry owned by accounts[0], who also owns the parity client
func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := chain.NewBackend(testLogger())
	f := &fixture{
		t:       t,
		backend: b,
		addr:    b.Deploy(accounts[0], New(accounts[0], testLogger())),
		ops:     bindings.NewOperations(),
	}
	f.mustSend(accounts[0], f.ops.PackAddClient(parity, accounts[0]))
	return f
}

func (f *fixture) send(from common.Address, data []byte) (*models.Receipt, error) {
	return f.backend.SendTransaction(context.Background(), chain.Message{From: from, To: f.addr, Data: data})
}

func (f *fixture) mustSend(from common.Address, data []byte) *models.Receipt {
	f.t.Helper()
	receipt, err := f.send(from, data)
	require.NoError(f.t, err)
	return receipt
}

func (f *fixture) call(data []byte) []byte {
	f.t.Helper()
	out, err := f.backend.CallContract(context.Background(), chain.Message{To: f.addr, Data: data})
	require.NoError(f.t, err)
	return out
}

func (f *fixture) client(name domain.ClientName) common.Address {
	owner, err := f.ops.UnpackClient(f.call(f.ops.PackClient(name)))
	require.NoError(f.t, err)
	return owner
}

func (f *fixture) clientOwner(owner common.Address) domain.ClientName {
	name, err := f.ops.UnpackClientOwner(f.call(f.ops.PackClientOwner(owner)))
	require.NoError(f.t, err)
	return name
}

func (f *fixture) required(name domain.ClientName) bool {
	required, err := f.ops.UnpackClientRequired(f.call(f.ops.PackClientRequired(name)))
	require.NoError(f.t, err)
	return required
}

func (f *fixture) release(name domain.ClientName, id common.Hash) models.Release {
	rel, err := f.ops.UnpackRelease(f.call(f.ops.PackRelease(name, id)))
	require.NoError(f.t, err)
	return rel
}

func (f *fixture) checksum(name domain.ClientName, id, platform common.Hash) common.Hash {
	sum, err := f.ops.UnpackChecksum(f.call(f.ops.PackChecksum(name, id, platform)))
	require.NoError(f.t, err)
	return sum
}

func (f *fixture) build(name domain.ClientName, sum common.Hash) models.Build {
	build, err := f.ops.UnpackBuild(f.call(f.ops.PackBuild(name, sum)))
	require.NoError(f.t, err)
	return build
}

func (f *fixture) isLatest(name domain.ClientName, id common.Hash) bool {
	latest, err := f.ops.UnpackIsLatest(f.call(f.ops.PackIsLatest(name, id)))
	require.NoError(f.t, err)
	return latest
}

func (f *fixture) latestInTrack(name domain.ClientName, track domain.Track) common.Hash {
	id, err := f.ops.UnpackLatestInTrack(f.call(f.ops.PackLatestInTrack(name, track)))
	require.NoError(f.t, err)
	return id
}

func (f *fixture) addStableRelease(from common.Address) {
	f.t.Helper()
	f.mustSend(from, f.ops.PackAddRelease(releaseID, 100, domain.TrackStable, 65536, false))
}

func TestRegistry_InitialClient(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, accounts[0], f.client(parity))
	assert.Equal(t, parity, f.clientOwner(accounts[0]))
	assert.True(t, f.required(parity))

	owner, err := f.ops.UnpackGrandOwner(f.call(f.ops.PackGrandOwner()))
	require.NoError(t, err)
	assert.Equal(t, accounts[0], owner)
}

func TestRegistry_Receive(t *testing.T) {
	f := newFixture(t)

	receipt, err := f.backend.SendTransaction(context.Background(), chain.Message{
		From:  accounts[1],
		To:    f.addr,
		Value: big.NewInt(3),
		Data:  []byte("hello"),
	})
	require.NoError(t, err)

	events := models.Events[*domain.Received](receipt.Logs)
	require.Len(t, events, 1)
	assert.Equal(t, accounts[1], events[0].From)
	assert.Equal(t, int64(3), events[0].Value.Int64())
	assert.Equal(t, "hello", string(events[0].Data))
}

func TestRegistry_NotPayable(t *testing.T) {
	f := newFixture(t)

	_, err := f.backend.SendTransaction(context.Background(), chain.Message{
		From:  accounts[0],
		To:    f.addr,
		Value: big.NewInt(1),
		Data:  f.ops.PackSetLatestFork(7),
	})
	assert.ErrorIs(t, err, domain.ErrNotPayable)
}

func TestRegistry_SetClientOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.send(accounts[1], f.ops.PackSetClientOwner(accounts[2]))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, accounts[0], f.client(parity))

	receipt := f.mustSend(accounts[0], f.ops.PackSetClientOwner(accounts[1]))

	assert.Equal(t, accounts[1], f.client(parity))
	assert.Equal(t, parity, f.clientOwner(accounts[1]))
	assert.True(t, f.clientOwner(accounts[0]).IsZero())

	events := models.Events[*domain.ClientOwnerChanged](receipt.Logs)
	require.Len(t, events, 1)
	assert.Equal(t, parity, events[0].Client)
	assert.Equal(t, accounts[0], events[0].Old)
	assert.Equal(t, accounts[1], events[0].Now)

	_, err = f.send(accounts[1], f.ops.PackSetClientOwner(common.Address{}))
	assert.ErrorIs(t, err, domain.ErrInvalidOwner)
}

func TestRegistry_AddRelease(t *testing.T) {
	f := newFixture(t)

	_, err := f.send(accounts[1], f.ops.PackAddRelease(releaseID, 100, domain.TrackStable, 65536, false))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, f.release(parity, releaseID).IsZero())

	receipt := f.mustSend(accounts[0], f.ops.PackAddRelease(releaseID, 100, domain.TrackStable, 65536, false))

	assert.Equal(t, models.Release{ForkBlock: 100, Track: domain.TrackStable, Semver: 65536}, f.release(parity, releaseID))
	assert.Equal(t, releaseID, f.latestInTrack(parity, domain.TrackStable))
	assert.True(t, f.isLatest(parity, releaseID))

	track, err := f.ops.UnpackTrack(f.call(f.ops.PackTrack(parity, releaseID)))
	require.NoError(t, err)
	assert.Equal(t, domain.TrackStable, track)

	events := models.Events[*domain.ReleaseAdded](receipt.Logs)
	require.Len(t, events, 1)
	assert.Equal(t, &domain.ReleaseAdded{
		Client:    parity,
		ForkBlock: 100,
		Release:   releaseID,
		Track:     domain.TrackStable,
		Semver:    65536,
		Critical:  false,
	}, events[0])

	t.Run("duplicate release id", func(t *testing.T) {
		_, err := f.send(accounts[0], f.ops.PackAddRelease(releaseID, 200, domain.TrackBeta, 65537, true))
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
		assert.Equal(t, uint32(100), f.release(parity, releaseID).ForkBlock)
		assert.True(t, f.latestInTrack(parity, domain.TrackBeta) == common.Hash{})
	})

	t.Run("latest in track is last write", func(t *testing.T) {
		older := common.HexToHash("0x02")
		f.mustSend(accounts[0], f.ops.PackAddRelease(older, 50, domain.TrackStable, 1, false))

		assert.Equal(t, older, f.latestInTrack(parity, domain.TrackStable))
		assert.True(t, f.isLatest(parity, older))
		assert.False(t, f.isLatest(parity, releaseID))
	})

	t.Run("track none", func(t *testing.T) {
		_, err := f.send(accounts[0], f.ops.PackAddRelease(common.HexToHash("0x03"), 1, domain.TrackNone, 1, false))
		assert.ErrorIs(t, err, domain.ErrInvalidTrack)
	})
}

func TestRegistry_AddChecksum(t *testing.T) {
	f := newFixture(t)

	_, err := f.send(accounts[0], f.ops.PackAddChecksum(releaseID, platform, checksum))
	assert.ErrorIs(t, err, domain.ErrUnknownRelease)

	f.addStableRelease(accounts[0])

	_, err = f.send(accounts[1], f.ops.PackAddChecksum(releaseID, platform, checksum))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, common.Hash{}, f.checksum(parity, releaseID, platform))

	receipt := f.mustSend(accounts[0], f.ops.PackAddChecksum(releaseID, platform, checksum))

	assert.Equal(t, checksum, f.checksum(parity, releaseID, platform))
	assert.Equal(t, models.Build{Release: releaseID, Platform: platform}, f.build(parity, checksum))

	events := models.Events[*domain.ChecksumAdded](receipt.Logs)
	require.Len(t, events, 1)
	assert.Equal(t, &domain.ChecksumAdded{
		Client:   parity,
		Release:  releaseID,
		Platform: platform,
		Checksum: checksum,
	}, events[0])

	t.Run("multiple platforms", func(t *testing.T) {
		platforms := []common.Hash{
			common.HexToHash("0x1000000000000000000000000000000000000000000000000000000000000000"),
			common.HexToHash("0x2000000000000000000000000000000000000000000000000000000000000000"),
			common.HexToHash("0x3000000000000000000000000000000000000000000000000000000000000000"),
		}
		checksums := []common.Hash{
			common.HexToHash("0x1111110000000000000000000000000000000000000000000000000000000000"),
			common.HexToHash("0x2222220000000000000000000000000000000000000000000000000000000000"),
			common.HexToHash("0x3333330000000000000000000000000000000000000000000000000000000000"),
		}

		var events []*domain.ChecksumAdded
		for i := range platforms {
			receipt := f.mustSend(accounts[0], f.ops.PackAddChecksum(releaseID, platforms[i], checksums[i]))
			events = append(events, models.Events[*domain.ChecksumAdded](receipt.Logs)...)
		}

		require.Len(t, events, len(platforms))
		for i := range platforms {
			assert.Equal(t, checksums[i], f.checksum(parity, releaseID, platforms[i]))
			assert.Equal(t, models.Build{Release: releaseID, Platform: platforms[i]}, f.build(parity, checksums[i]))
			assert.Equal(t, platforms[i], events[i].Platform)
		}
	})

	t.Run("overwriting a platform drops the stale build", func(t *testing.T) {
		replacement := common.HexToHash("0x4444")
		f.mustSend(accounts[0], f.ops.PackAddChecksum(releaseID, platform, replacement))

		assert.Equal(t, replacement, f.checksum(parity, releaseID, platform))
		assert.Equal(t, models.Build{Release: releaseID, Platform: platform}, f.build(parity, replacement))
		// the first checksum was re-recorded for platform 0x1000.. in the subtest above
		assert.Equal(t, releaseID, f.build(parity, checksum).Release)
	})
}

func TestRegistry_ClientAdministration(t *testing.T) {
	f := newFixture(t)

	t.Run("add client", func(t *testing.T) {
		_, err := f.send(accounts[1], f.ops.PackAddClient(parityLight, accounts[2]))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, common.Address{}, f.client(parityLight))

		receipt := f.mustSend(accounts[0], f.ops.PackAddClient(parityLight, accounts[2]))
		assert.Equal(t, accounts[2], f.client(parityLight))
		assert.Equal(t, parityLight, f.clientOwner(accounts[2]))

		events := models.Events[*domain.ClientAdded](receipt.Logs)
		require.Len(t, events, 1)
		assert.Equal(t, parityLight, events[0].Client)
		assert.Equal(t, accounts[2], events[0].Owner)
	})

	t.Run("reset client owner", func(t *testing.T) {
		_, err := f.send(accounts[1], f.ops.PackResetClientOwner(parityLight, accounts[0]))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, accounts[2], f.client(parityLight))

		receipt := f.mustSend(accounts[0], f.ops.PackResetClientOwner(parityLight, accounts[1]))
		assert.Equal(t, accounts[1], f.client(parityLight))
		assert.Equal(t, parityLight, f.clientOwner(accounts[1]))
		assert.True(t, f.clientOwner(accounts[2]).IsZero())

		events := models.Events[*domain.ClientOwnerChanged](receipt.Logs)
		require.Len(t, events, 1)
		assert.Equal(t, accounts[2], events[0].Old)
		assert.Equal(t, accounts[1], events[0].Now)
	})

	t.Run("remove client", func(t *testing.T) {
		_, err := f.send(accounts[1], f.ops.PackRemoveClient(parityLight))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Equal(t, accounts[1], f.client(parityLight))

		receipt := f.mustSend(accounts[0], f.ops.PackRemoveClient(parityLight))
		assert.Equal(t, common.Address{}, f.client(parityLight))
		assert.True(t, f.clientOwner(accounts[1]).IsZero())

		events := models.Events[*domain.ClientRemoved](receipt.Logs)
		require.Len(t, events, 1)
		assert.Equal(t, parityLight, events[0].Client)

		_, err = f.send(accounts[0], f.ops.PackRemoveClient(parityLight))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("set client on a fresh name", func(t *testing.T) {
		receipt := f.mustSend(accounts[0], f.ops.PackSetClient(parityLight, accounts[2]))
		assert.Len(t, models.Events[*domain.ClientAdded](receipt.Logs), 1)
		assert.Equal(t, accounts[2], f.client(parityLight))
	})

	t.Run("zero owner", func(t *testing.T) {
		_, err := f.send(accounts[0], f.ops.PackAddClient(domain.MustClientName("other"), common.Address{}))
		assert.ErrorIs(t, err, domain.ErrInvalidOwner)
		_, err = f.send(accounts[0], f.ops.PackSetClient(parityLight, common.Address{}))
		assert.ErrorIs(t, err, domain.ErrInvalidOwner)
	})
}

func TestRegistry_SetClientRequired(t *testing.T) {
	f := newFixture(t)

	t.Run("only the registry owner", func(t *testing.T) {
		_, err := f.send(accounts[1], f.ops.PackSetClientRequired(parity, false))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.True(t, f.required(parity))
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := f.send(accounts[0], f.ops.PackSetClientRequired(parityLight, false))
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.False(t, f.required(parityLight))
	})

	t.Run("toggle", func(t *testing.T) {
		receipt := f.mustSend(accounts[0], f.ops.PackSetClientRequired(parity, false))
		assert.False(t, f.required(parity))
		assert.Equal(t, accounts[0], f.client(parity), "owner is unchanged")

		events := models.Events[*domain.ClientRequiredChanged](receipt.Logs)
		require.Len(t, events, 1)
		assert.Equal(t, parity, events[0].Client)
		assert.False(t, events[0].Required)

		receipt = f.mustSend(accounts[0], f.ops.PackSetClientRequired(parity, true))
		assert.True(t, f.required(parity))
		events = models.Events[*domain.ClientRequiredChanged](receipt.Logs)
		require.Len(t, events, 1)
		assert.True(t, events[0].Required)
	})

	t.Run("survives owner change", func(t *testing.T) {
		f.mustSend(accounts[0], f.ops.PackSetClientRequired(parity, false))
		f.mustSend(accounts[0], f.ops.PackSetClientOwner(accounts[1]))
		assert.False(t, f.required(parity))
	})

	t.Run("re-added client is required again", func(t *testing.T) {
		f.mustSend(accounts[0], f.ops.PackRemoveClient(parity))
		assert.False(t, f.required(parity))

		f.mustSend(accounts[0], f.ops.PackAddClient(parity, accounts[2]))
		assert.True(t, f.required(parity))
	})
}

func TestRegistry_NoDuplicateClients(t *testing.T) {
	f := newFixture(t)
	f.mustSend(accounts[0], f.ops.PackAddClient(parityLight, accounts[1]))

	receipt, err := f.send(accounts[0], f.ops.PackAddClient(parityLight, accounts[2]))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Empty(t, receipt.Logs)
	assert.Equal(t, accounts[1], f.client(parityLight))
}

func TestRegistry_OwnerOwnsOneClient(t *testing.T) {
	f := newFixture(t)
	f.mustSend(accounts[0], f.ops.PackAddClient(parityLight, accounts[1]))

	tests := []struct {
		name string
		from common.Address
		data []byte
	}{
		{"transfer to an owner", accounts[1], f.ops.PackSetClientOwner(accounts[0])},
		{"add with an owner", accounts[0], f.ops.PackAddClient(domain.MustClientName("parity-lighter"), accounts[1])},
		{"reset to an owner", accounts[0], f.ops.PackResetClientOwner(parity, accounts[1])},
		{"set to an owner", accounts[0], f.ops.PackSetClient(parity, accounts[1])},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.send(tt.from, tt.data)
			assert.ErrorIs(t, err, domain.ErrOwnerConflict)
		})
	}

	assert.Equal(t, accounts[0], f.client(parity))
	assert.Equal(t, accounts[1], f.client(parityLight))

	// reassigning a client to its own owner is not a conflict
	f.mustSend(accounts[0], f.ops.PackSetClient(parity, accounts[0]))
}

func TestRegistry_RemovalKeepsReleaseData(t *testing.T) {
	f := newFixture(t)
	f.mustSend(accounts[0], f.ops.PackAddClient(parityLight, accounts[1]))
	f.mustSend(accounts[1], f.ops.PackAddRelease(releaseID, 100, domain.TrackStable, 65536, false))
	f.mustSend(accounts[1], f.ops.PackAddChecksum(releaseID, platform, checksum))

	want := models.Release{ForkBlock: 100, Track: domain.TrackStable, Semver: 65536}
	require.Equal(t, want, f.release(parityLight, releaseID))

	f.mustSend(accounts[0], f.ops.PackRemoveClient(parityLight))

	assert.True(t, f.release(parityLight, releaseID).IsZero())
	assert.Equal(t, common.Hash{}, f.checksum(parityLight, releaseID, platform))
	assert.True(t, f.build(parityLight, checksum).IsZero())
	assert.Equal(t, common.Hash{}, f.latestInTrack(parityLight, domain.TrackStable))
	assert.False(t, f.isLatest(parityLight, releaseID))

	// the former owner can no longer record releases
	_, err := f.send(accounts[1], f.ops.PackAddRelease(common.HexToHash("0x05"), 1, domain.TrackStable, 1, false))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	f.mustSend(accounts[0], f.ops.PackAddClient(parityLight, accounts[2]))

	assert.Equal(t, want, f.release(parityLight, releaseID))
	assert.Equal(t, checksum, f.checksum(parityLight, releaseID, platform))
	assert.Equal(t, models.Build{Release: releaseID, Platform: platform}, f.build(parityLight, checksum))
	assert.True(t, f.isLatest(parityLight, releaseID))
}

func TestRegistry_SetLatestFork(t *testing.T) {
	f := newFixture(t)

	_, err := f.send(accounts[1], f.ops.PackSetLatestFork(7))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	fork, err := f.ops.UnpackLatestFork(f.call(f.ops.PackLatestFork()))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), fork)

	receipt := f.mustSend(accounts[0], f.ops.PackSetLatestFork(7))
	events := models.Events[*domain.ForkRatified](receipt.Logs)
	require.Len(t, events, 1)
	assert.Equal(t, uint32(7), events[0].ForkNumber)

	// not monotonic
	f.mustSend(accounts[0], f.ops.PackSetLatestFork(3))
	fork, err = f.ops.UnpackLatestFork(f.call(f.ops.PackLatestFork()))
	require.NoError(t, err)
	assert.Equal(t, uint32(3), fork)
}

func TestRegistry_SetOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.send(accounts[1], f.ops.PackSetOwner(accounts[1]))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	receipt := f.mustSend(accounts[0], f.ops.PackSetOwner(accounts[1]))
	owner, err := f.ops.UnpackGrandOwner(f.call(f.ops.PackGrandOwner()))
	require.NoError(t, err)
	assert.Equal(t, accounts[1], owner)

	events := models.Events[*domain.OwnerChanged](receipt.Logs)
	require.Len(t, events, 1)
	assert.Equal(t, accounts[0], events[0].Old)
	assert.Equal(t, accounts[1], events[0].Now)

	_, err = f.send(accounts[0], f.ops.PackSetOwner(accounts[0]))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegistry_MalformedCall(t *testing.T) {
	f := newFixture(t)

	data := f.ops.PackAddRelease(releaseID, 100, domain.TrackStable, 65536, false)
	_, err := f.send(accounts[0], data[:20])
	assert.ErrorIs(t, err, domain.ErrMalformedCall)
}

func TestRegistry_SnapshotRestore(t *testing.T) {
	f := newFixture(t)
	f.mustSend(accounts[0], f.ops.PackAddClient(parityLight, accounts[1]))
	f.addStableRelease(accounts[0])
	f.mustSend(accounts[0], f.ops.PackAddChecksum(releaseID, platform, checksum))
	f.mustSend(accounts[0], f.ops.PackSetLatestFork(9))
	f.mustSend(accounts[0], f.ops.PackSetClientRequired(parityLight, false))

	state, err := f.backend.Export()
	require.NoError(t, err)

	restored, err := chain.NewBackendFromState(state, func(kind string) (chain.Contract, error) {
		require.Equal(t, Kind, kind)
		return New(common.Address{}, testLogger()), nil
	}, testLogger())
	require.NoError(t, err)

	f.backend = restored
	assert.Equal(t, accounts[0], f.client(parity))
	assert.Equal(t, parityLight, f.clientOwner(accounts[1]))
	assert.Equal(t, checksum, f.checksum(parity, releaseID, platform))
	assert.True(t, f.isLatest(parity, releaseID))
	assert.True(t, f.required(parity))
	assert.False(t, f.required(parityLight))

	fork, err := f.ops.UnpackLatestFork(f.call(f.ops.PackLatestFork()))
	require.NoError(t, err)
	assert.Equal(t, uint32(9), fork)

	// the restored owner keeps its rights
	f.mustSend(accounts[0], f.ops.PackSetLatestFork(10))
}
