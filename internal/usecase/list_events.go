package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// ListEventsParams contains parameters for listing journaled events
type ListEventsParams struct {
	// Contract restricts to "registry" or "proxy" events (empty means both)
	Contract  OwnershipTarget
	Names     []string
	FromBlock uint64
	ToBlock   uint64
	Limit     int
}

// ListEventsResult contains journaled events in commit order
type ListEventsResult struct {
	Events     []*models.Log
	Deployment models.Deployment
}

// ListEvents reads the event journal
type ListEvents struct {
	tx      *Transactor
	journal EventJournal
}

// NewListEvents creates a new ListEvents use case
func NewListEvents(tx *Transactor, journal EventJournal) *ListEvents {
	return &ListEvents{tx: tx, journal: journal}
}

// Execute lists events matching params
func (uc *ListEvents) Execute(ctx context.Context, params ListEventsParams) (*ListEventsResult, error) {
	for _, name := range params.Names {
		if _, err := domain.NewEvent(name); err != nil {
			return nil, err
		}
	}

	result := &ListEventsResult{}
	err := uc.tx.View(ctx, func(_ context.Context, ledger Ledger) error {
		result.Deployment = ledger.Deployment()
		return nil
	})
	if err != nil {
		return nil, err
	}

	filter := domain.EventFilter{
		Names:     params.Names,
		FromBlock: params.FromBlock,
		ToBlock:   params.ToBlock,
		Limit:     params.Limit,
	}
	switch params.Contract {
	case "":
	case TargetRegistry:
		filter.Address = result.Deployment.Registry
	case TargetProxy:
		if !result.Deployment.HasProxy() {
			return nil, ErrNoProxy
		}
		filter.Address = result.Deployment.Proxy
	default:
		return nil, fmt.Errorf("unknown contract %q", params.Contract)
	}

	result.Events, err = uc.journal.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return result, nil
}
