package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// InitLedgerParams contains parameters for creating a ledger
type InitLedgerParams struct {
	Genesis *models.Genesis
	// Force replaces an existing ledger and its journal
	Force bool
}

// InitLedgerResult contains the created deployment
type InitLedgerResult struct {
	Deployment models.Deployment
	Receipts   []*models.Receipt
}

// InitLedger creates a ledger from a genesis
type InitLedger struct {
	tx       *Transactor
	progress ProgressSink
}

// NewInitLedger creates a new InitLedger use case
func NewInitLedger(tx *Transactor, progress ProgressSink) *InitLedger {
	return &InitLedger{tx: tx, progress: progress}
}

// Execute deploys the registry, registers the genesis clients and sets up the proxy. Each
// step is an ordinary transaction from the account that would send it; a failing step
// aborts the whole genesis.
func (uc *InitLedger) Execute(ctx context.Context, params InitLedgerParams) (*InitLedgerResult, error) {
	g := params.Genesis
	if g == nil {
		return nil, fmt.Errorf("genesis is required")
	}

	total := genesisSteps(g)
	defer uc.progress.Done()

	ledger, receipts, err := uc.tx.Genesis(ctx, params.Force, func(ctx context.Context, ledger Ledger) ([]*models.Receipt, error) {
		var receipts []*models.Receipt
		step := 0
		report := func(stage, message string) {
			step++
			uc.progress.OnProgress(ctx, ProgressEvent{
				Stage:   stage,
				Current: step,
				Total:   total,
				Message: message,
				Spinner: true,
			})
		}
		send := func(from, to common.Address, payload []byte) error {
			report("transaction", describe(payload))
			receipt, err := ledger.Send(ctx, from, to, payload)
			if receipt != nil {
				receipts = append(receipts, receipt)
			}
			if err != nil {
				return fmt.Errorf("genesis step %d (%s): %w", len(receipts), describe(payload), err)
			}
			return nil
		}

		report("deploy", "Deploying registry")
		registry := ledger.DeployRegistry(g.RegistryOwner)
		for _, c := range g.Clients {
			if err := send(g.RegistryOwner, registry, operations.PackAddClient(c.Name, c.Owner)); err != nil {
				return receipts, err
			}
			if c.Optional {
				if err := send(g.RegistryOwner, registry, operations.PackSetClientRequired(c.Name, false)); err != nil {
					return receipts, err
				}
			}
		}

		if g.Proxy == nil {
			return receipts, nil
		}
		report("deploy", "Deploying governance proxy")
		proxy := ledger.DeployProxy(g.Proxy.Owner, registry, g.Proxy.Tracks)
		if !g.Proxy.Client.IsZero() {
			if err := send(g.RegistryOwner, registry, operations.PackSetClient(g.Proxy.Client, proxy)); err != nil {
				return receipts, err
			}
		}
		if g.Proxy.OwnsRegistry {
			if err := send(g.RegistryOwner, registry, operations.PackSetOwner(proxy)); err != nil {
				return receipts, err
			}
		}
		return receipts, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger: %w", err)
	}

	return &InitLedgerResult{
		Deployment: ledger.Deployment(),
		Receipts:   receipts,
	}, nil
}

// genesisSteps counts the deployments and transactions of g
func genesisSteps(g *models.Genesis) int {
	n := 1 + len(g.Clients)
	for _, c := range g.Clients {
		if c.Optional {
			n++
		}
	}
	if g.Proxy != nil {
		n++
		if !g.Proxy.Client.IsZero() {
			n++
		}
		if g.Proxy.OwnsRegistry {
			n++
		}
	}
	return n
}
