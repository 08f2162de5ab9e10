package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// RatifyForkParams contains parameters for ratifying a fork
type RatifyForkParams struct {
	ForkNumber uint32
}

// RatifyForkResult contains the result of ratifying a fork
type RatifyForkResult struct {
	ForkNumber uint32
	Relayed    bool
	Receipt    *models.Receipt
}

// RatifyFork sets the latest fork the registry supports
type RatifyFork struct {
	tx *Transactor
}

// NewRatifyFork creates a new RatifyFork use case
func NewRatifyFork(tx *Transactor) *RatifyFork {
	return &RatifyFork{tx: tx}
}

// Execute ratifies the fork as the registry owner, through the proxy when it owns the registry
func (uc *RatifyFork) Execute(ctx context.Context, params RatifyForkParams) (*RatifyForkResult, error) {
	sender, err := uc.tx.Sender()
	if err != nil {
		return nil, err
	}

	result := &RatifyForkResult{ForkNumber: params.ForkNumber}
	receipt, err := uc.tx.Transact(ctx, func(ctx context.Context, ledger Ledger) (*models.Receipt, error) {
		receipt, route, err := sendRegistryAdmin(ctx, ledger, sender, operations.PackSetLatestFork(params.ForkNumber))
		result.Relayed = route.Relayed
		return receipt, err
	})
	result.Receipt = receipt
	if err != nil {
		return result, fmt.Errorf("failed to ratify fork %d: %w", params.ForkNumber, err)
	}
	return result, nil
}
