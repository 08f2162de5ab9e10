// Package registry implements the release registry contract: the client <-> owner table
// and the ledger of releases and platform checksums recorded by client owners.
package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/chain"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/bindings"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// Kind identifies registry contracts in persisted ledger state
const Kind = models.KindRegistry

// Registry is the release registry contract
type Registry struct {
	abi *abi.ABI
	st  state
	log *slog.Logger
}

// New creates a registry administered by grandOwner
func New(grandOwner common.Address, log *slog.Logger) *Registry {
	return &Registry{
		abi: bindings.NewOperations().ABI(),
		st:  newState(grandOwner),
		log: log.With("component", "Registry"),
	}
}

// Kind implements chain.Contract
func (r *Registry) Kind() string { return Kind }

// Snapshot implements chain.Contract
func (r *Registry) Snapshot() ([]byte, error) {
	return json.Marshal(&r.st)
}

// Restore implements chain.Contract
func (r *Registry) Restore(storage []byte) error {
	var st state
	if err := json.Unmarshal(storage, &st); err != nil {
		return fmt.Errorf("failed to decode registry storage: %w", err)
	}
	st.init()
	r.st = st
	return nil
}

// Execute implements chain.Contract
func (r *Registry) Execute(env *chain.Env, msg chain.Message) ([]byte, error) {
	method := bindings.LookupMethod(r.abi, msg.Data)
	if method == nil {
		return nil, r.receive(env, msg)
	}
	if msg.HasValue() && !method.IsPayable() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotPayable, method.Name)
	}

	var (
		ret []byte
		err error
	)
	if method.IsConstant() {
		ret, err = r.view(method, msg.Data)
	} else {
		err = r.transact(env, method, msg)
	}
	if err != nil {
		r.log.Debug("Call rejected", "method", method.Name, "from", msg.From.Hex(), "error", err)
		return nil, domain.Revert(msg.To, method.Name, err)
	}
	return ret, nil
}

func (r *Registry) transact(env *chain.Env, method *abi.Method, msg chain.Message) error {
	if err := env.RequireWritable(); err != nil {
		return err
	}
	c := &call{env: env, self: msg.To, caller: msg.From}

	switch method.Name {
	case "addClient", "setClient", "resetClientOwner":
		var args bindings.ClientArgs
		if err := bindings.UnpackArgs(method, msg.Data, &args); err != nil {
			return err
		}
		if method.Name == "addClient" {
			return r.addClient(c, args.Client, args.Owner)
		}
		return r.setClient(c, args.Client, args.Owner)

	case "removeClient":
		var args bindings.RemoveClientArgs
		if err := bindings.UnpackArgs(method, msg.Data, &args); err != nil {
			return err
		}
		return r.removeClient(c, args.Client)

	case "setClientRequired":
		var args bindings.ClientRequiredArgs
		if err := bindings.UnpackArgs(method, msg.Data, &args); err != nil {
			return err
		}
		return r.setClientRequired(c, args.Client, args.Required)

	case "setClientOwner":
		var args bindings.OwnerArgs
		if err := bindings.UnpackArgs(method, msg.Data, &args); err != nil {
			return err
		}
		return r.setClientOwner(c, args.Owner)

	case "addRelease":
		var args bindings.AddReleaseArgs
		if err := bindings.UnpackArgs(method, msg.Data, &args); err != nil {
			return err
		}
		if args.Semver == nil || !args.Semver.IsUint64() || domain.Semver(args.Semver.Uint64()) > domain.MaxSemver {
			return fmt.Errorf("%w: semver out of range", domain.ErrMalformedCall)
		}
		return r.addRelease(c, args.Release, args.ForkBlock, domain.Track(args.Track), domain.Semver(args.Semver.Uint64()), args.Critical)

	case "addChecksum":
		var args bindings.AddChecksumArgs
		if err := bindings.UnpackArgs(method, msg.Data, &args); err != nil {
			return err
		}
		return r.addChecksum(c, args.Release, args.Platform, args.Checksum)

	case "setOwner":
		var args bindings.OwnerArgs
		if err := bindings.UnpackArgs(method, msg.Data, &args); err != nil {
			return err
		}
		return r.setOwner(c, args.Owner)

	case "setLatestFork":
		var args bindings.SetLatestForkArgs
		if err := bindings.UnpackArgs(method, msg.Data, &args); err != nil {
			return err
		}
		return r.setLatestFork(c, args.ForkNumber)
	}
	return fmt.Errorf("%w: unhandled method %s", domain.ErrMalformedCall, method.Name)
}

// receive accepts value transfers and calls to unknown selectors
func (r *Registry) receive(env *chain.Env, msg chain.Message) error {
	if err := env.RequireWritable(); err != nil {
		return err
	}
	value := msg.Value
	if value == nil {
		value = new(big.Int)
	}
	r.log.Debug("Received", "from", msg.From.Hex(), "value", value, "data", len(msg.Data))
	return env.Emit(msg.To, &domain.Received{
		From:  msg.From,
		Value: new(big.Int).Set(value),
		Data:  common.CopyBytes(msg.Data),
	})
}

// call carries what a state-changing operation needs from its transaction
type call struct {
	env    *chain.Env
	self   common.Address
	caller common.Address
}

func (c *call) emit(event domain.Event) error {
	return c.env.Emit(c.self, event)
}

func (r *Registry) onlyGrandOwner(c *call) error {
	if c.caller != r.st.GrandOwner {
		return fmt.Errorf("%w: %s is not the registry owner", domain.ErrUnauthorized, c.caller.Hex())
	}
	return nil
}

func (r *Registry) setOwner(c *call, owner common.Address) error {
	if err := r.onlyGrandOwner(c); err != nil {
		return err
	}
	if owner == (common.Address{}) {
		return domain.ErrInvalidOwner
	}
	old := r.st.GrandOwner
	r.st.GrandOwner = owner
	r.log.Debug("Owner changed", "old", old.Hex(), "now", owner.Hex())
	return c.emit(&domain.OwnerChanged{Old: old, Now: owner})
}

func (r *Registry) setLatestFork(c *call, fork uint32) error {
	if err := r.onlyGrandOwner(c); err != nil {
		return err
	}
	r.st.LatestFork = fork
	r.log.Debug("Fork ratified", "fork", fork)
	return c.emit(&domain.ForkRatified{ForkNumber: fork})
}
