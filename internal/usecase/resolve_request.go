package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// ResolveRequestParams contains parameters for confirming or rejecting a request
type ResolveRequestParams struct {
	Track  domain.Track
	Hash   common.Hash
	Reject bool
}

// ResolveRequestResult contains the result of resolving a request
type ResolveRequestResult struct {
	Track    domain.Track
	Hash     common.Hash
	Rejected bool
	// Success reports the registry outcome of a confirmed request
	Success bool
	// Request is the request as it was waiting, nil if it was not found beforehand
	Request *RequestView
	Receipt *models.Receipt
}

// ResolveRequest confirms or rejects a waiting request as the track's confirmer
type ResolveRequest struct {
	tx *Transactor
}

// NewResolveRequest creates a new ResolveRequest use case
func NewResolveRequest(tx *Transactor) *ResolveRequest {
	return &ResolveRequest{tx: tx}
}

// Execute confirms or rejects the request
func (uc *ResolveRequest) Execute(ctx context.Context, params ResolveRequestParams) (*ResolveRequestResult, error) {
	sender, err := uc.tx.Sender()
	if err != nil {
		return nil, err
	}

	result := &ResolveRequestResult{
		Track:    params.Track,
		Hash:     params.Hash,
		Rejected: params.Reject,
	}

	receipt, err := uc.tx.Transact(ctx, func(ctx context.Context, ledger Ledger) (*models.Receipt, error) {
		proxy, err := requireProxy(ledger)
		if err != nil {
			return nil, err
		}

		// The proxy decides whether the request exists; the lookup is for reporting only
		views, err := pendingViews(ctx, ledger, params.Track)
		if err != nil {
			return nil, err
		}
		if view, ok := lo.Find(views, func(v *RequestView) bool { return v.Hash == params.Hash }); ok {
			result.Request = view
		}

		payload := proxyCalls.PackConfirm(params.Track, params.Hash)
		if params.Reject {
			payload = proxyCalls.PackReject(params.Track, params.Hash)
		}
		return ledger.Send(ctx, sender, proxy, payload)
	})
	result.Receipt = receipt
	if err != nil {
		action := "confirm"
		if params.Reject {
			action = "reject"
		}
		return result, fmt.Errorf("failed to %s request %s: %w", action, params.Hash.Hex(), err)
	}

	for _, ev := range models.Events[*domain.RequestConfirmed](receipt.Logs) {
		result.Success = ev.Success
	}
	return result, nil
}
