package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/bindings"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// ErrShadowedSelector is returned when a registry call cannot be relayed because the proxy
// implements a method with the same selector itself
var ErrShadowedSelector = errors.New("selector is handled by the proxy and cannot be relayed")

var (
	operations = bindings.NewOperations()
	proxyCalls = bindings.NewOperationsProxy()
)

// adminRoute is where registry administration calls go: straight to the registry, or
// through the proxy fallback when the proxy owns the registry.
type adminRoute struct {
	To      common.Address
	Relayed bool
}

func routeRegistryAdmin(ctx context.Context, ledger Ledger, payload []byte) (adminRoute, error) {
	dep := ledger.Deployment()
	owner, err := grandOwner(ctx, ledger)
	if err != nil {
		return adminRoute{}, err
	}
	if !dep.HasProxy() || owner != dep.Proxy {
		return adminRoute{To: dep.Registry}, nil
	}
	if method := bindings.LookupMethod(proxyCalls.ABI(), payload); method != nil {
		return adminRoute{}, fmt.Errorf("%w: %s", ErrShadowedSelector, method.Name)
	}
	return adminRoute{To: dep.Proxy, Relayed: true}, nil
}

// sendRegistryAdmin sends a registry administration payload along its route
func sendRegistryAdmin(ctx context.Context, ledger Ledger, from common.Address, payload []byte) (*models.Receipt, adminRoute, error) {
	route, err := routeRegistryAdmin(ctx, ledger, payload)
	if err != nil {
		return nil, route, err
	}
	receipt, err := ledger.Send(ctx, from, route.To, payload)
	return receipt, route, err
}

func requireProxy(ledger Ledger) (common.Address, error) {
	dep := ledger.Deployment()
	if !dep.HasProxy() {
		return common.Address{}, ErrNoProxy
	}
	return dep.Proxy, nil
}

func grandOwner(ctx context.Context, ledger Ledger) (common.Address, error) {
	out, err := ledger.Call(ctx, ledger.Deployment().Registry, operations.PackGrandOwner())
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read registry owner: %w", err)
	}
	return operations.UnpackGrandOwner(out)
}

func clientOwnedBy(ctx context.Context, ledger Ledger, owner common.Address) (domain.ClientName, error) {
	out, err := ledger.Call(ctx, ledger.Deployment().Registry, operations.PackClientOwner(owner))
	if err != nil {
		return domain.ClientName{}, fmt.Errorf("failed to read client of %s: %w", owner.Hex(), err)
	}
	return operations.UnpackClientOwner(out)
}

func ownerOfClient(ctx context.Context, ledger Ledger, name domain.ClientName) (common.Address, error) {
	out, err := ledger.Call(ctx, ledger.Deployment().Registry, operations.PackClient(name))
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read owner of %s: %w", name, err)
	}
	return operations.UnpackClient(out)
}

func clientRequired(ctx context.Context, ledger Ledger, name domain.ClientName) (bool, error) {
	out, err := ledger.Call(ctx, ledger.Deployment().Registry, operations.PackClientRequired(name))
	if err != nil {
		return false, fmt.Errorf("failed to read required flag of %s: %w", name, err)
	}
	return operations.UnpackClientRequired(out)
}

// readTracks reads the delegate and confirmer of each track from the proxy
func readTracks(ctx context.Context, ledger Ledger, proxy common.Address, tracks []domain.Track) ([]models.TrackAssignment, error) {
	out := make([]models.TrackAssignment, 0, len(tracks))
	for _, track := range tracks {
		ret, err := ledger.Call(ctx, proxy, proxyCalls.PackDelegate(track))
		if err != nil {
			return nil, fmt.Errorf("failed to read delegate of %s: %w", track, err)
		}
		delegate, err := proxyCalls.UnpackDelegate(ret)
		if err != nil {
			return nil, err
		}
		ret, err = ledger.Call(ctx, proxy, proxyCalls.PackConfirmer(track))
		if err != nil {
			return nil, fmt.Errorf("failed to read confirmer of %s: %w", track, err)
		}
		confirmer, err := proxyCalls.UnpackConfirmer(ret)
		if err != nil {
			return nil, err
		}
		out = append(out, models.TrackAssignment{Track: track, Delegate: delegate, Confirmer: confirmer})
	}
	return out, nil
}

// describe renders a registry or proxy payload for display
func describe(payload []byte) string {
	return bindings.DescribeCall(payload, operations.ABI(), proxyCalls.ABI())
}
