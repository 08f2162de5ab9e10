package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// OwnershipTarget selects the contract whose owner is transferred
type OwnershipTarget string

const (
	TargetRegistry OwnershipTarget = "registry"
	TargetProxy    OwnershipTarget = "proxy"
)

// TransferOwnershipParams contains parameters for transferring ownership
type TransferOwnershipParams struct {
	Target OwnershipTarget
	Owner  common.Address
}

// TransferOwnershipResult contains the result of an ownership transfer
type TransferOwnershipResult struct {
	Target  OwnershipTarget
	Old     common.Address
	Now     common.Address
	Receipt *models.Receipt
}

// TransferOwnership hands the registry or the proxy to a new owner
type TransferOwnership struct {
	tx *Transactor
}

// NewTransferOwnership creates a new TransferOwnership use case
func NewTransferOwnership(tx *Transactor) *TransferOwnership {
	return &TransferOwnership{tx: tx}
}

// Execute transfers ownership as the current owner
func (uc *TransferOwnership) Execute(ctx context.Context, params TransferOwnershipParams) (*TransferOwnershipResult, error) {
	if params.Owner == (common.Address{}) {
		return nil, domain.ErrInvalidOwner
	}
	sender, err := uc.tx.Sender()
	if err != nil {
		return nil, err
	}

	receipt, err := uc.tx.Transact(ctx, func(ctx context.Context, ledger Ledger) (*models.Receipt, error) {
		switch params.Target {
		case TargetRegistry:
			// The proxy's own setOwner shadows the registry's, so an owning proxy cannot
			// hand the registry on
			receipt, _, err := sendRegistryAdmin(ctx, ledger, sender, operations.PackSetOwner(params.Owner))
			return receipt, err
		case TargetProxy:
			proxy, err := requireProxy(ledger)
			if err != nil {
				return nil, err
			}
			return ledger.Send(ctx, sender, proxy, proxyCalls.PackSetOwner(params.Owner))
		default:
			return nil, fmt.Errorf("unknown ownership target %q", params.Target)
		}
	})
	result := &TransferOwnershipResult{Target: params.Target, Now: params.Owner, Receipt: receipt}
	if err != nil {
		return result, fmt.Errorf("failed to transfer %s ownership: %w", params.Target, err)
	}

	for _, ev := range models.Events[*domain.OwnerChanged](receipt.Logs) {
		result.Old = ev.Old
	}
	return result, nil
}
