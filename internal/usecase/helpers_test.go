package usecase_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/opsgov/internal/adapters/blockchain"
	"github.com/trebuchet-org/opsgov/internal/adapters/eventlog"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

var (
	admin       = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	delegate    = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	confirmer   = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	besuOwner   = common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
	outsider    = common.HexToAddress("0x15d34AAf54267DB7D7c367839AAf71A00a2C6A65")
	geth        = domain.MustClientName("geth")
	besu        = domain.MustClientName("besu")
	release1    = common.HexToHash("0x1111")
	release2    = common.HexToHash("0x2222")
	linuxAmd64  = common.HexToHash("0xa1")
	checksumOne = common.HexToHash("0xc1")
)

// memStore is an in-memory LedgerStore
type memStore struct {
	mu    sync.Mutex
	state *models.LedgerState
	saves int
}

func (s *memStore) Load(ctx context.Context) (*models.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil, domain.ErrNotFound
	}
	return s.state, nil
}

func (s *memStore) Save(ctx context.Context, state *models.LedgerState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.saves++
	return nil
}

func (s *memStore) Exists(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != nil, nil
}

// Lock is a no-op; the Transactor's mutex already serializes a single process
func (s *memStore) Lock(ctx context.Context) (func(), error) {
	return func() {}, nil
}

func (s *memStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// MockEventJournal is a mock implementation of EventJournal
type MockEventJournal struct {
	mock.Mock
}

func (m *MockEventJournal) Append(ctx context.Context, receipts ...*models.Receipt) error {
	args := m.Called(ctx, receipts)
	return args.Error(0)
}

func (m *MockEventJournal) List(ctx context.Context, filter domain.EventFilter) ([]*models.Log, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Log), args.Error(1)
}

func (m *MockEventJournal) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type harness struct {
	cfg     *config.RuntimeConfig
	store   *memStore
	journal usecase.EventJournal
	tx      *usecase.Transactor
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	journal, err := eventlog.Open(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })
	return newHarnessWithJournal(journal)
}

func newHarnessWithJournal(journal usecase.EventJournal) *harness {
	log := slog.New(slog.DiscardHandler)
	h := &harness{
		cfg:     &config.RuntimeConfig{},
		store:   &memStore{},
		journal: journal,
	}
	h.tx = usecase.NewTransactor(h.cfg, h.store, blockchain.NewLedgerFactoryAdapter(log), journal, log)
	return h
}

// as sets the sender of subsequent operations
func (h *harness) as(sender common.Address) *harness {
	h.cfg.Sender = sender
	return h
}

// testGenesis hands geth to a proxy owned by admin that also owns the registry. Stable
// needs confirmation, nightly does not.
func testGenesis() *models.Genesis {
	return &models.Genesis{
		RegistryOwner: admin,
		Clients: []models.GenesisClient{
			{Name: besu, Owner: besuOwner},
			{Name: geth, Owner: admin},
		},
		Proxy: &models.GenesisProxy{
			Owner: admin,
			Tracks: []models.TrackAssignment{
				{Track: domain.TrackStable, Delegate: delegate, Confirmer: confirmer},
				{Track: domain.TrackNightly, Delegate: delegate},
			},
			Client:       geth,
			OwnsRegistry: true,
		},
	}
}

// initialized returns a harness with testGenesis applied
func initialized(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	_, err := usecase.NewInitLedger(h.tx, usecase.NopProgress{}).Execute(context.Background(), usecase.InitLedgerParams{Genesis: testGenesis()})
	require.NoError(t, err)
	return h
}
