package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/bindings"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// RelayCallParams contains parameters for relaying a call. Either Payload or Method is set.
type RelayCallParams struct {
	Payload []byte

	// Method names a registry method packed from Args
	Method string
	Args   []string
}

// RelayCallResult contains the result of a relayed call
type RelayCallResult struct {
	Payload     hexutil.Bytes
	Description string
	ReturnData  hexutil.Bytes
	Receipt     *models.Receipt
}

// RelayCall forwards a call to the registry through the proxy's fallback, as the proxy owner
type RelayCall struct {
	tx *Transactor
}

// NewRelayCall creates a new RelayCall use case
func NewRelayCall(tx *Transactor) *RelayCall {
	return &RelayCall{tx: tx}
}

// Execute relays the call
func (uc *RelayCall) Execute(ctx context.Context, params RelayCallParams) (*RelayCallResult, error) {
	payload := params.Payload
	if params.Method != "" {
		var err error
		if payload, err = PackRegistryCall(params.Method, params.Args); err != nil {
			return nil, err
		}
	}
	if len(payload) < bindings.SelectorSize {
		return nil, fmt.Errorf("%w: payload shorter than a selector", domain.ErrMalformedCall)
	}
	if method := bindings.LookupMethod(proxyCalls.ABI(), payload); method != nil {
		return nil, fmt.Errorf("%w: %s", ErrShadowedSelector, method.Name)
	}

	sender, err := uc.tx.Sender()
	if err != nil {
		return nil, err
	}

	result := &RelayCallResult{Payload: payload, Description: describe(payload)}
	receipt, err := uc.tx.Transact(ctx, func(ctx context.Context, ledger Ledger) (*models.Receipt, error) {
		proxy, err := requireProxy(ledger)
		if err != nil {
			return nil, err
		}
		return ledger.Send(ctx, sender, proxy, payload)
	})
	result.Receipt = receipt
	if err != nil {
		return result, fmt.Errorf("failed to relay %s: %w", result.Description, err)
	}
	result.ReturnData = receipt.ReturnData
	return result, nil
}

type registryCall struct {
	usage string
	pack  func(args []string) ([]byte, error)
}

// relayableCalls are the registry methods RelayCall packs by name
var relayableCalls = map[string]registryCall{
	"setLatestFork": {"<fork-number>", func(args []string) ([]byte, error) {
		n, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid fork number %q", args[0])
		}
		return operations.PackSetLatestFork(uint32(n)), nil
	}},
	"addClient": {"<client> <owner>", func(args []string) ([]byte, error) {
		return packClientCall(operations.PackAddClient, args)
	}},
	"setClient": {"<client> <owner>", func(args []string) ([]byte, error) {
		return packClientCall(operations.PackSetClient, args)
	}},
	"resetClientOwner": {"<client> <owner>", func(args []string) ([]byte, error) {
		return packClientCall(operations.PackResetClientOwner, args)
	}},
	"removeClient": {"<client>", func(args []string) ([]byte, error) {
		name, err := domain.ParseClientName(args[0])
		if err != nil {
			return nil, err
		}
		return operations.PackRemoveClient(name), nil
	}},
	"setClientRequired": {"<client> <true|false>", func(args []string) ([]byte, error) {
		name, err := domain.ParseClientName(args[0])
		if err != nil {
			return nil, err
		}
		required, err := strconv.ParseBool(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid flag %q", args[1])
		}
		return operations.PackSetClientRequired(name, required), nil
	}},
	"setClientOwner": {"<owner>", func(args []string) ([]byte, error) {
		owner, err := parseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return operations.PackSetClientOwner(owner), nil
	}},
}

// RelayableMethods returns the registry methods PackRegistryCall accepts, with their usage
func RelayableMethods() []string {
	names := lo.Keys(relayableCalls)
	sort.Strings(names)
	return lo.Map(names, func(name string, _ int) string {
		return name + " " + relayableCalls[name].usage
	})
}

// PackRegistryCall packs a registry method call from textual arguments
func PackRegistryCall(method string, args []string) ([]byte, error) {
	call, ok := relayableCalls[method]
	if !ok {
		return nil, fmt.Errorf("method %q cannot be relayed by name (supported: %s)", method, strings.Join(RelayableMethods(), "; "))
	}
	if want := len(strings.Fields(call.usage)); len(args) != want {
		return nil, fmt.Errorf("%s expects %d argument(s): %s %s", method, want, method, call.usage)
	}
	return call.pack(args)
}

func packClientCall(pack func(domain.ClientName, common.Address) []byte, args []string) ([]byte, error) {
	name, err := domain.ParseClientName(args[0])
	if err != nil {
		return nil, err
	}
	owner, err := parseAddress(args[1])
	if err != nil {
		return nil, err
	}
	return pack(name, owner), nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}
