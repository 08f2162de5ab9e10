package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// TrackRole is the role assigned per track
type TrackRole string

const (
	RoleDelegate  TrackRole = "delegate"
	RoleConfirmer TrackRole = "confirmer"
)

// ConfigureTrackParams contains parameters for assigning a track role
type ConfigureTrackParams struct {
	Role    TrackRole
	Track   domain.Track
	Address common.Address // zero unassigns
}

// ConfigureTrackResult contains the result of assigning a track role
type ConfigureTrackResult struct {
	Role    TrackRole
	Track   domain.Track
	Was     common.Address
	Now     common.Address
	Receipt *models.Receipt
}

// ConfigureTracks manages the per-track delegates and confirmers of the proxy
type ConfigureTracks struct {
	tx *Transactor
}

// NewConfigureTracks creates a new ConfigureTracks use case
func NewConfigureTracks(tx *Transactor) *ConfigureTracks {
	return &ConfigureTracks{tx: tx}
}

// Execute assigns the role as the proxy owner
func (uc *ConfigureTracks) Execute(ctx context.Context, params ConfigureTrackParams) (*ConfigureTrackResult, error) {
	if params.Track == domain.TrackNone {
		return nil, fmt.Errorf("%w: track must be non-zero", domain.ErrInvalidTrack)
	}

	var payload []byte
	switch params.Role {
	case RoleDelegate:
		payload = proxyCalls.PackSetDelegate(params.Address, params.Track)
	case RoleConfirmer:
		payload = proxyCalls.PackSetConfirmer(params.Address, params.Track)
	default:
		return nil, fmt.Errorf("unknown track role %q", params.Role)
	}

	sender, err := uc.tx.Sender()
	if err != nil {
		return nil, err
	}

	receipt, err := uc.tx.Transact(ctx, func(ctx context.Context, ledger Ledger) (*models.Receipt, error) {
		proxy, err := requireProxy(ledger)
		if err != nil {
			return nil, err
		}
		return ledger.Send(ctx, sender, proxy, payload)
	})
	result := &ConfigureTrackResult{
		Role:    params.Role,
		Track:   params.Track,
		Now:     params.Address,
		Receipt: receipt,
	}
	if err != nil {
		return result, fmt.Errorf("failed to set %s of %s: %w", params.Role, params.Track, err)
	}

	for _, ev := range models.Events[*domain.DelegateChanged](receipt.Logs) {
		result.Was = ev.Was
	}
	for _, ev := range models.Events[*domain.ConfirmerChanged](receipt.Logs) {
		result.Was = ev.Was
	}
	return result, nil
}

// Show reads the assignments of tracks, or of the default tracks when none are given
func (uc *ConfigureTracks) Show(ctx context.Context, tracks []domain.Track) ([]models.TrackAssignment, error) {
	if len(tracks) == 0 {
		tracks = domain.DefaultTracks
	}
	tracks = lo.Uniq(tracks)

	var assignments []models.TrackAssignment
	err := uc.tx.View(ctx, func(ctx context.Context, ledger Ledger) error {
		proxy, err := requireProxy(ledger)
		if err != nil {
			return err
		}
		assignments, err = readTracks(ctx, ledger, proxy, tracks)
		return err
	})
	return assignments, err
}
