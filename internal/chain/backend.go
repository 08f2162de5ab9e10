// Package chain runs contracts as serialized transactions against in-process state.
//
// Every transaction holds the backend's write lock for its whole execution, so
// transactions are totally ordered and never interleave. Reads (CallContract) take the
// read lock and observe the last committed state. A failed transaction restores every
// contract it touched and drops its events.
package chain

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// maxCallDepth bounds nested calls within one transaction
const maxCallDepth = 16

var (
	// ErrNoContract is returned when a message targets an address without a contract
	ErrNoContract = errors.New("no contract at address")

	// ErrCallDepth is returned when nested calls exceed maxCallDepth
	ErrCallDepth = errors.New("max call depth exceeded")
)

// Message is a call from an account to a contract
type Message struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Data  []byte
}

// HasValue reports whether the message transfers a non-zero value
func (m Message) HasValue() bool {
	return m.Value != nil && m.Value.Sign() != 0
}

// Contract is code deployed on a Backend
type Contract interface {
	// Kind names the contract type, used to rebuild it from persisted state
	Kind() string
	// Execute runs msg against the contract's storage
	Execute(env *Env, msg Message) ([]byte, error)
	// Snapshot serializes the contract's storage
	Snapshot() ([]byte, error)
	// Restore replaces the contract's storage with a snapshot
	Restore(storage []byte) error
}

// Factory creates an empty contract of the given kind
type Factory func(kind string) (Contract, error)

// Backend holds deployed contracts and serializes transactions against them
type Backend struct {
	mu        sync.RWMutex
	contracts map[common.Address]Contract
	nonce     uint64
	block     uint64
	log       *slog.Logger
}

// NewBackend creates an empty backend
func NewBackend(log *slog.Logger) *Backend {
	return &Backend{
		contracts: make(map[common.Address]Contract),
		log:       log.With("component", "Backend"),
	}
}

// NewBackendFromState rebuilds a backend from persisted state
func NewBackendFromState(state *models.LedgerState, factory Factory, log *slog.Logger) (*Backend, error) {
	b := NewBackend(log)
	b.nonce = state.Nonce
	b.block = state.BlockNumber
	for _, cs := range state.Contracts {
		contract, err := factory(cs.Kind)
		if err != nil {
			return nil, fmt.Errorf("failed to create contract %s: %w", cs.Address.Hex(), err)
		}
		if err := contract.Restore(cs.Storage); err != nil {
			return nil, fmt.Errorf("failed to restore contract %s: %w", cs.Address.Hex(), err)
		}
		b.contracts[cs.Address] = contract
	}
	return b, nil
}

// Deploy places contract at the address a CREATE from deployer would produce
func (b *Backend) Deploy(deployer common.Address, contract Contract) common.Address {
	b.mu.Lock()
	defer b.mu.Unlock()

	addr := crypto.CreateAddress(deployer, b.nonce)
	b.nonce++
	b.contracts[addr] = contract
	b.log.Debug("Deployed contract", "kind", contract.Kind(), "address", addr.Hex())
	return addr
}

// Contract returns the contract deployed at addr
func (b *Backend) Contract(addr common.Address) (Contract, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.contracts[addr]
	return c, ok
}

// Inspect runs fn on the contract at addr against the last committed state. fn must not
// modify the contract.
func (b *Backend) Inspect(addr common.Address, fn func(Contract) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.contracts[addr]
	if !ok {
		return errNoContract(addr)
	}
	return fn(c)
}

// BlockNumber returns the number of the last block
func (b *Backend) BlockNumber() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.block
}

// SendTransaction executes msg as one atomic transaction. A reverted transaction still
// yields a receipt (with failed status) alongside the revert error.
func (b *Backend) SendTransaction(ctx context.Context, msg Message) (*models.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nonce++
	b.block++
	txHash := transactionHash(msg, b.nonce)
	env := newEnv(ctx, b, msg.From, txHash, b.block, false)

	receipt := &models.Receipt{
		TxHash:      txHash,
		BlockNumber: b.block,
		From:        msg.From,
		To:          msg.To,
	}

	ret, err := env.call(msg, false)
	if err != nil {
		if rerr := env.revertTouched(); rerr != nil {
			return nil, fmt.Errorf("failed to revert transaction %s: %w", txHash.Hex(), rerr)
		}
		receipt.Status = models.ReceiptStatusFailed
		receipt.Error = err.Error()
		b.log.Debug("Transaction reverted", "tx", txHash.Hex(), "from", msg.From.Hex(), "to", msg.To.Hex(), "error", err)
		return receipt, err
	}

	for i, log := range env.logs {
		log.Index = uint(i)
	}
	receipt.Status = models.ReceiptStatusSuccessful
	receipt.Logs = env.logs
	receipt.ReturnData = ret
	b.log.Debug("Transaction committed", "tx", txHash.Hex(), "block", b.block, "events", len(env.logs))
	return receipt, nil
}

// CallContract executes msg without committing anything, against the last committed state
func (b *Backend) CallContract(ctx context.Context, msg Message) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	env := newEnv(ctx, b, msg.From, common.Hash{}, b.block, true)
	return env.call(msg, true)
}

// Export serializes every contract, ordered by address
func (b *Backend) Export() (*models.LedgerState, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	addrs := make([]common.Address, 0, len(b.contracts))
	for addr := range b.contracts {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return addrs[i].Cmp(addrs[j]) < 0
	})

	state := &models.LedgerState{
		Nonce:       b.nonce,
		BlockNumber: b.block,
		Contracts:   make([]models.ContractState, 0, len(addrs)),
	}
	for _, addr := range addrs {
		contract := b.contracts[addr]
		storage, err := contract.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot contract %s: %w", addr.Hex(), err)
		}
		state.Contracts = append(state.Contracts, models.ContractState{
			Kind:    contract.Kind(),
			Address: addr,
			Storage: storage,
		})
	}
	return state, nil
}

func transactionHash(msg Message, nonce uint64) common.Hash {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], nonce)
	return crypto.Keccak256Hash(msg.From.Bytes(), msg.To.Bytes(), n[:], msg.Data)
}

// errNoContract reports a message to an empty address
func errNoContract(addr common.Address) error {
	return fmt.Errorf("%w: %s", ErrNoContract, addr.Hex())
}
