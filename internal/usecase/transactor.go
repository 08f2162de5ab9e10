package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

var (
	// ErrNotInitialized is returned when no ledger has been created yet
	ErrNotInitialized = errors.New("ledger not initialized (run `opsgov init`)")

	// ErrAlreadyInitialized is returned when creating a ledger over an existing one
	ErrAlreadyInitialized = errors.New("ledger already initialized")

	// ErrNoSender is returned by operations that send transactions when no sender is set
	ErrNoSender = errors.New("no sender configured (use --from or --private-key)")

	// ErrNoProxy is returned by operations that need a governance proxy on a ledger without one
	ErrNoProxy = errors.New("no governance proxy deployed")
)

// Transactor runs every state change through one lock: load the snapshot, execute,
// save the snapshot and journal the events. The store lock is held for the whole cycle
// so concurrent processes sharing a state file serialize. Nothing is saved when the
// execution fails.
type Transactor struct {
	mu      sync.Mutex
	cfg     *config.RuntimeConfig
	store   LedgerStore
	factory LedgerFactory
	journal EventJournal
	log     *slog.Logger
}

// NewTransactor creates a new Transactor
func NewTransactor(
	cfg *config.RuntimeConfig,
	store LedgerStore,
	factory LedgerFactory,
	journal EventJournal,
	log *slog.Logger,
) *Transactor {
	return &Transactor{
		cfg:     cfg,
		store:   store,
		factory: factory,
		journal: journal,
		log:     log.With("component", "Transactor"),
	}
}

// Sender returns the configured sender
func (t *Transactor) Sender() (common.Address, error) {
	if !t.cfg.HasSender() {
		return common.Address{}, ErrNoSender
	}
	return t.cfg.Sender, nil
}

// Transact executes fn against the current ledger and commits the result
func (t *Transactor) Transact(ctx context.Context, fn func(ctx context.Context, ledger Ledger) (*models.Receipt, error)) (*models.Receipt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	unlock, err := t.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ledger, err := t.open(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := fn(ctx, ledger)
	if err != nil {
		if receipt != nil {
			t.log.Debug("Transaction reverted", "tx", receipt.TxHash.Hex(), "error", err)
		}
		return receipt, err
	}

	if err := t.commit(ctx, ledger, receipt); err != nil {
		return receipt, err
	}
	return receipt, nil
}

// View runs fn against the current ledger without committing anything
func (t *Transactor) View(ctx context.Context, fn func(ctx context.Context, ledger Ledger) error) error {
	t.mu.Lock()
	ledger, err := t.open(ctx)
	t.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(ctx, ledger)
}

// Genesis builds a new ledger with fn and commits it, replacing the journal. An existing
// ledger is only replaced when force is set.
func (t *Transactor) Genesis(ctx context.Context, force bool, fn func(ctx context.Context, ledger Ledger) ([]*models.Receipt, error)) (Ledger, []*models.Receipt, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	unlock, err := t.lock(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	exists, err := t.store.Exists(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check ledger state: %w", err)
	}
	if exists && !force {
		return nil, nil, ErrAlreadyInitialized
	}

	ledger := t.factory.New()
	receipts, err := fn(ctx, ledger)
	if err != nil {
		return nil, receipts, err
	}

	if err := t.journal.Reset(ctx); err != nil {
		return nil, receipts, fmt.Errorf("failed to reset event journal: %w", err)
	}
	if err := t.commit(ctx, ledger, receipts...); err != nil {
		return nil, receipts, err
	}
	return ledger, receipts, nil
}

func (t *Transactor) lock(ctx context.Context) (func(), error) {
	unlock, err := t.store.Lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to lock ledger state: %w", err)
	}
	return unlock, nil
}

func (t *Transactor) open(ctx context.Context) (Ledger, error) {
	state, err := t.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}
	ledger, err := t.factory.Open(state)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return ledger, nil
}

func (t *Transactor) commit(ctx context.Context, ledger Ledger, receipts ...*models.Receipt) error {
	state, err := ledger.Export()
	if err != nil {
		return fmt.Errorf("failed to export ledger state: %w", err)
	}
	if err := t.store.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to save ledger state: %w", err)
	}

	// Events are journaled after the snapshot; a journal failure leaves the transaction committed
	if err := t.journal.Append(ctx, receipts...); err != nil {
		t.log.Warn("Failed to journal events", "error", err)
		return fmt.Errorf("transaction committed but events were not journaled: %w", err)
	}

	for _, r := range receipts {
		if r != nil {
			t.log.Debug("Transaction committed", "tx", r.TxHash.Hex(), "block", r.BlockNumber, "events", len(r.Logs))
		}
	}
	return nil
}
