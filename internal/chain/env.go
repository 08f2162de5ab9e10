package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// Env is the execution context of one transaction or read-only call
type Env struct {
	ctx      context.Context
	backend  *Backend
	origin   common.Address
	txHash   common.Hash
	block    uint64
	readOnly bool
	depth    int

	logs    []*models.Log
	touched map[common.Address][]byte
}

func newEnv(ctx context.Context, b *Backend, origin common.Address, txHash common.Hash, block uint64, readOnly bool) *Env {
	return &Env{
		ctx:      ctx,
		backend:  b,
		origin:   origin,
		txHash:   txHash,
		block:    block,
		readOnly: readOnly,
		touched:  make(map[common.Address][]byte),
	}
}

// Context returns the context the transaction was sent with
func (e *Env) Context() context.Context { return e.ctx }

// Origin returns the account that sent the transaction
func (e *Env) Origin() common.Address { return e.origin }

// TxHash returns the hash of the running transaction (zero for read-only calls)
func (e *Env) TxHash() common.Hash { return e.txHash }

// BlockNumber returns the block the transaction is executed in
func (e *Env) BlockNumber() uint64 { return e.block }

// ReadOnly reports whether state changes are forbidden
func (e *Env) ReadOnly() bool { return e.readOnly }

// RequireWritable fails in read-only execution
func (e *Env) RequireWritable() error {
	if e.readOnly {
		return domain.ErrWriteProtection
	}
	return nil
}

// Emit records an event raised by contract
func (e *Env) Emit(contract common.Address, event domain.Event) error {
	if err := e.RequireWritable(); err != nil {
		return err
	}
	e.logs = append(e.logs, &models.Log{
		Address:     contract,
		BlockNumber: e.block,
		TxHash:      e.txHash,
		Name:        event.ContractEventName(),
		Event:       event,
	})
	return nil
}

// Call executes msg against another contract inside the running transaction. When the
// callee fails, its storage and events are rolled back and the error is returned for the
// caller to propagate or swallow.
func (e *Env) Call(msg Message) ([]byte, error) {
	return e.call(msg, false)
}

// StaticCall executes msg read-only inside the running transaction
func (e *Env) StaticCall(msg Message) ([]byte, error) {
	return e.call(msg, true)
}

func (e *Env) call(msg Message, static bool) ([]byte, error) {
	if err := e.ctx.Err(); err != nil {
		return nil, err
	}
	if e.depth >= maxCallDepth {
		return nil, ErrCallDepth
	}
	contract, ok := e.backend.contracts[msg.To]
	if !ok {
		return nil, errNoContract(msg.To)
	}

	writable := !e.readOnly && !static
	var snapshot []byte
	if writable {
		var err error
		snapshot, err = contract.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot %s: %w", msg.To.Hex(), err)
		}
		if _, seen := e.touched[msg.To]; !seen {
			e.touched[msg.To] = snapshot
		}
	}

	mark := len(e.logs)
	wasReadOnly := e.readOnly
	e.readOnly = e.readOnly || static
	e.depth++
	ret, err := contract.Execute(e, msg)
	e.depth--
	e.readOnly = wasReadOnly

	if err != nil {
		e.logs = e.logs[:mark]
		if writable {
			if rerr := contract.Restore(snapshot); rerr != nil {
				return nil, fmt.Errorf("failed to restore %s after revert: %w", msg.To.Hex(), rerr)
			}
		}
		return nil, domain.Revert(msg.To, "", err)
	}
	return ret, nil
}

// revertTouched restores every contract the transaction touched
func (e *Env) revertTouched() error {
	for addr, snapshot := range e.touched {
		if err := e.backend.contracts[addr].Restore(snapshot); err != nil {
			return err
		}
	}
	e.logs = nil
	return nil
}
