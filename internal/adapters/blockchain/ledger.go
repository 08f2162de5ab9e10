package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/chain"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
	"github.com/trebuchet-org/opsgov/internal/proxy"
	"github.com/trebuchet-org/opsgov/internal/registry"
	"github.com/trebuchet-org/opsgov/internal/tracks"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// LedgerFactoryAdapter opens in-process ledgers holding the registry and proxy contracts
type LedgerFactoryAdapter struct {
	log *slog.Logger
}

// NewLedgerFactoryAdapter creates a new LedgerFactoryAdapter
func NewLedgerFactoryAdapter(log *slog.Logger) *LedgerFactoryAdapter {
	return &LedgerFactoryAdapter{log: log}
}

// New returns an empty ledger
func (f *LedgerFactoryAdapter) New() usecase.Ledger {
	return &LedgerAdapter{
		backend: chain.NewBackend(f.log),
		log:     f.log,
	}
}

// Open rebuilds the ledger recorded in state
func (f *LedgerFactoryAdapter) Open(state *models.LedgerState) (usecase.Ledger, error) {
	backend, err := chain.NewBackendFromState(state, f.contract, f.log)
	if err != nil {
		return nil, err
	}

	l := &LedgerAdapter{backend: backend, log: f.log}
	reg, ok := state.Contract(models.KindRegistry)
	if !ok {
		return nil, fmt.Errorf("ledger state has no registry")
	}
	l.deployment.Registry = reg.Address
	if p, ok := state.Contract(models.KindProxy); ok {
		l.deployment.Proxy = p.Address
	}
	return l, nil
}

// contract is the chain.Factory for persisted contract kinds
func (f *LedgerFactoryAdapter) contract(kind string) (chain.Contract, error) {
	switch kind {
	case models.KindRegistry:
		return registry.New(common.Address{}, f.log), nil
	case models.KindProxy:
		return proxy.New(common.Address{}, common.Address{}, nil, f.log), nil
	default:
		return nil, fmt.Errorf("unknown contract kind %q", kind)
	}
}

// LedgerAdapter implements usecase.Ledger on a chain.Backend
type LedgerAdapter struct {
	backend    *chain.Backend
	deployment models.Deployment
	log        *slog.Logger
}

// Send executes data as one transaction
func (l *LedgerAdapter) Send(ctx context.Context, from, to common.Address, data []byte) (*models.Receipt, error) {
	return l.backend.SendTransaction(ctx, chain.Message{
		From:  from,
		To:    to,
		Value: new(big.Int),
		Data:  data,
	})
}

// Call executes data read-only
func (l *LedgerAdapter) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	return l.backend.CallContract(ctx, chain.Message{To: to, Data: data})
}

// Pending lists the requests waiting on the proxy at addr
func (l *LedgerAdapter) Pending(ctx context.Context, addr common.Address, track domain.Track) ([]models.PendingRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var pending []models.PendingRequest
	err := l.backend.Inspect(addr, func(c chain.Contract) error {
		p, ok := c.(*proxy.Proxy)
		if !ok {
			return fmt.Errorf("contract at %s is a %s, not a proxy", addr.Hex(), c.Kind())
		}
		pending = p.Pending(track)
		return nil
	})
	return pending, err
}

// DeployRegistry deploys a registry owned by owner, sent from owner
func (l *LedgerAdapter) DeployRegistry(owner common.Address) common.Address {
	addr := l.backend.Deploy(owner, registry.New(owner, l.log))
	if l.deployment.Registry == (common.Address{}) {
		l.deployment.Registry = addr
	}
	return addr
}

// DeployProxy deploys a proxy owned by owner relaying to operations, sent from owner
func (l *LedgerAdapter) DeployProxy(owner, operations common.Address, assignments []models.TrackAssignment) common.Address {
	addr := l.backend.Deploy(owner, proxy.New(owner, operations, tracks.NewTableFrom(assignments), l.log))
	if l.deployment.Proxy == (common.Address{}) {
		l.deployment.Proxy = addr
	}
	return addr
}

// Deployment returns the registry and proxy addresses
func (l *LedgerAdapter) Deployment() models.Deployment {
	return l.deployment
}

// Export serializes the ledger
func (l *LedgerAdapter) Export() (*models.LedgerState, error) {
	return l.backend.Export()
}

// Ensure the adapters implement the interfaces
var (
	_ usecase.LedgerFactory = (*LedgerFactoryAdapter)(nil)
	_ usecase.Ledger        = (*LedgerAdapter)(nil)
)
