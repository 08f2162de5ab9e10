package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// ClientAction selects what ManageClients does
type ClientAction string

const (
	// ClientAdd registers a new client (strict create)
	ClientAdd ClientAction = "add"
	// ClientSet assigns an owner to a client, creating or overwriting it
	ClientSet ClientAction = "set"
	// ClientRemove unregisters a client
	ClientRemove ClientAction = "remove"
	// ClientRequire flags whether a client's releases are required
	ClientRequire ClientAction = "require"
	// ClientTransfer moves the sender's client to a new owner
	ClientTransfer ClientAction = "transfer"
)

// ManageClientsParams contains parameters for managing clients
type ManageClientsParams struct {
	Action ClientAction
	Client domain.ClientName // ignored for ClientTransfer
	Owner  common.Address    // ignored for ClientRemove and ClientRequire
	// Required is the flag written by ClientRequire
	Required bool

	// ViaProxy transfers the proxy's client instead of the sender's; the sender must own
	// the proxy
	ViaProxy bool
}

// ManageClientsResult contains the result of a client operation
type ManageClientsResult struct {
	Action        ClientAction
	Client        domain.ClientName
	PreviousOwner common.Address
	Owner         common.Address
	Required      bool
	Relayed       bool // sent through the proxy
	Receipt       *models.Receipt
}

// ManageClients handles the client <-> owner table of the registry
type ManageClients struct {
	tx *Transactor
}

// NewManageClients creates a new ManageClients use case
func NewManageClients(tx *Transactor) *ManageClients {
	return &ManageClients{tx: tx}
}

// Execute performs the client operation
func (uc *ManageClients) Execute(ctx context.Context, params ManageClientsParams) (*ManageClientsResult, error) {
	sender, err := uc.tx.Sender()
	if err != nil {
		return nil, err
	}

	result := &ManageClientsResult{
		Action: params.Action,
		Client: params.Client,
		Owner:  params.Owner,
	}
	if params.Action == ClientRequire {
		result.Owner = common.Address{}
		result.Required = params.Required
	}

	receipt, err := uc.tx.Transact(ctx, func(ctx context.Context, ledger Ledger) (*models.Receipt, error) {
		if params.Action == ClientTransfer {
			return uc.transfer(ctx, ledger, sender, params, result)
		}

		payload, err := clientPayload(params)
		if err != nil {
			return nil, err
		}
		if result.PreviousOwner, err = ownerOfClient(ctx, ledger, params.Client); err != nil {
			return nil, err
		}

		receipt, route, err := sendRegistryAdmin(ctx, ledger, sender, payload)
		result.Relayed = route.Relayed
		return receipt, err
	})
	result.Receipt = receipt
	if err != nil {
		return result, fmt.Errorf("failed to %s client: %w", params.Action, err)
	}
	return result, nil
}

func (uc *ManageClients) transfer(ctx context.Context, ledger Ledger, sender common.Address, params ManageClientsParams, result *ManageClientsResult) (*models.Receipt, error) {
	holder, to := sender, ledger.Deployment().Registry
	if params.ViaProxy {
		proxy, err := requireProxy(ledger)
		if err != nil {
			return nil, err
		}
		holder, to = proxy, proxy
		result.Relayed = true
	}

	name, err := clientOwnedBy(ctx, ledger, holder)
	if err != nil {
		return nil, err
	}
	result.Client = name
	result.PreviousOwner = holder

	return ledger.Send(ctx, sender, to, operations.PackSetClientOwner(params.Owner))
}

func clientPayload(params ManageClientsParams) ([]byte, error) {
	if params.Client.IsZero() {
		return nil, fmt.Errorf("%w: empty name", domain.ErrInvalidClientName)
	}
	switch params.Action {
	case ClientAdd:
		return operations.PackAddClient(params.Client, params.Owner), nil
	case ClientSet:
		return operations.PackSetClient(params.Client, params.Owner), nil
	case ClientRemove:
		return operations.PackRemoveClient(params.Client), nil
	case ClientRequire:
		return operations.PackSetClientRequired(params.Client, params.Required), nil
	default:
		return nil, fmt.Errorf("unknown client action %q", params.Action)
	}
}
