package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// RequestView is a waiting request with its payload decoded
type RequestView struct {
	models.PendingRequest
	Description string
	// Release is the release the request adds, zero for checksum requests
	Release common.Hash
}

// ListRequestsParams contains parameters for listing waiting requests
type ListRequestsParams struct {
	Track domain.Track // TrackNone lists every track
}

// ListRequestsResult contains the waiting requests, oldest first
type ListRequestsResult struct {
	Requests []*RequestView
	ByTrack  map[domain.Track]int
}

// ListRequests lists the requests waiting for confirmation on the proxy
type ListRequests struct {
	tx *Transactor
}

// NewListRequests creates a new ListRequests use case
func NewListRequests(tx *Transactor) *ListRequests {
	return &ListRequests{tx: tx}
}

// Execute lists waiting requests
func (uc *ListRequests) Execute(ctx context.Context, params ListRequestsParams) (*ListRequestsResult, error) {
	var views []*RequestView
	err := uc.tx.View(ctx, func(ctx context.Context, ledger Ledger) error {
		var err error
		views, err = pendingViews(ctx, ledger, params.Track)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ListRequestsResult{
		Requests: views,
		ByTrack: lo.CountValuesBy(views, func(v *RequestView) domain.Track {
			return v.Track
		}),
	}, nil
}

func pendingViews(ctx context.Context, ledger Ledger, track domain.Track) ([]*RequestView, error) {
	proxy, err := requireProxy(ledger)
	if err != nil {
		return nil, err
	}
	pending, err := ledger.Pending(ctx, proxy, track)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting requests: %w", err)
	}

	views := make([]*RequestView, 0, len(pending))
	for _, req := range pending {
		view := &RequestView{PendingRequest: req, Description: describe(req.Payload)}
		out, err := ledger.Call(ctx, proxy, proxyCalls.PackPendingRelease(req.Hash))
		if err != nil {
			return nil, fmt.Errorf("failed to read pending release: %w", err)
		}
		if view.Release, err = proxyCalls.UnpackPendingRelease(out); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
