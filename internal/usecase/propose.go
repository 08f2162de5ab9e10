package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/bindings"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// ProposalResult reports what happened to a proposal
type ProposalResult struct {
	// Hash is the request hash, keccak256 of the proposed payload
	Hash  common.Hash
	Track domain.Track

	// Waiting is set when the proposal awaits the track's confirmer
	Waiting bool
	// Success reports the registry outcome of a proposal relayed without confirmation
	Success bool
	// Direct is set when the call went straight to the registry, bypassing the proxy
	Direct bool

	Description string
	Receipt     *models.Receipt
}

// ProposeReleaseParams contains parameters for proposing a release
type ProposeReleaseParams struct {
	Release   common.Hash
	ForkBlock uint32
	Track     domain.Track
	Semver    domain.Semver
	Critical  bool

	// Direct records the release as the sender's own client, without the proxy
	Direct bool
}

// ProposeRelease submits a release through the governance proxy
type ProposeRelease struct {
	tx *Transactor
}

// NewProposeRelease creates a new ProposeRelease use case
func NewProposeRelease(tx *Transactor) *ProposeRelease {
	return &ProposeRelease{tx: tx}
}

// Execute proposes the release
func (uc *ProposeRelease) Execute(ctx context.Context, params ProposeReleaseParams) (*ProposalResult, error) {
	if params.Track == domain.TrackNone {
		return nil, fmt.Errorf("%w: track must be non-zero", domain.ErrInvalidTrack)
	}
	if params.Semver > domain.MaxSemver {
		return nil, fmt.Errorf("semver %d exceeds uint24", params.Semver)
	}

	// The proxy accepts the registry's addRelease payload verbatim
	payload := operations.PackAddRelease(params.Release, params.ForkBlock, params.Track, params.Semver, params.Critical)
	result, err := propose(ctx, uc.tx, payload, params.Direct)
	if err != nil {
		return result, fmt.Errorf("failed to propose release %s: %w", params.Release.Hex(), err)
	}
	if result.Direct {
		result.Track = params.Track
	}
	return result, nil
}

// ProposeChecksumParams contains parameters for proposing a checksum
type ProposeChecksumParams struct {
	Release  common.Hash
	Platform common.Hash
	Checksum common.Hash

	// Direct records the checksum as the sender's own client, without the proxy
	Direct bool
}

// ProposeChecksum submits a platform checksum through the governance proxy
type ProposeChecksum struct {
	tx *Transactor
}

// NewProposeChecksum creates a new ProposeChecksum use case
func NewProposeChecksum(tx *Transactor) *ProposeChecksum {
	return &ProposeChecksum{tx: tx}
}

// Execute proposes the checksum
func (uc *ProposeChecksum) Execute(ctx context.Context, params ProposeChecksumParams) (*ProposalResult, error) {
	payload := operations.PackAddChecksum(params.Release, params.Platform, params.Checksum)
	result, err := propose(ctx, uc.tx, payload, params.Direct)
	if err != nil {
		return result, fmt.Errorf("failed to propose checksum for release %s: %w", params.Release.Hex(), err)
	}
	return result, nil
}

func propose(ctx context.Context, tx *Transactor, payload []byte, direct bool) (*ProposalResult, error) {
	sender, err := tx.Sender()
	if err != nil {
		return nil, err
	}

	result := &ProposalResult{
		Hash:        bindings.RequestHash(payload),
		Direct:      direct,
		Description: describe(payload),
	}

	receipt, err := tx.Transact(ctx, func(ctx context.Context, ledger Ledger) (*models.Receipt, error) {
		to := ledger.Deployment().Registry
		if !direct {
			proxy, err := requireProxy(ledger)
			if err != nil {
				return nil, err
			}
			to = proxy
		}
		return ledger.Send(ctx, sender, to, payload)
	})
	result.Receipt = receipt
	if err != nil {
		return result, err
	}

	if direct {
		result.Success = receipt.Succeeded()
		return result, nil
	}
	for _, ev := range models.Events[*domain.NewRequestWaiting](receipt.Logs) {
		result.Waiting = true
		result.Track = ev.Track
	}
	for _, ev := range models.Events[*domain.RequestConfirmed](receipt.Logs) {
		result.Success = ev.Success
		result.Track = ev.Track
	}
	return result, nil
}
