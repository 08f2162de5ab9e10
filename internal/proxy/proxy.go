// Package proxy implements the governance proxy. Delegates propose registry changes per
// track; a track's confirmer confirms or rejects them before the proxy relays them to the
// registry. Calls the proxy does not know are relayed verbatim for its owner.
package proxy

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
	"github.com/trebuchet-org/opsgov/internal/tracks"
)

// Kind identifies proxy contracts in persisted ledger state
const Kind = models.KindProxy

// Proxy is the governance proxy contract
type Proxy struct {
	abi *abi.ABI
	ops *bindings.Operations
	st  state
	log *slog.Logger
}

// New creates a proxy owned by owner that relays to the registry at operations
func New(owner, operations common.Address, table *tracks.Table, log *slog.Logger) *Proxy {
	return &Proxy{
		abi: bindings.NewOperationsProxy().ABI(),
		ops: bindings.NewOperations(),
		st:  newState(owner, operations, table),
		log: log.With("component", "Proxy"),
	}
}

// Kind implements chain.Contract
func (p *Proxy) Kind() string { return Kind }

// Snapshot implements chain.Contract
func (p *Proxy) Snapshot() ([]byte, error) {
	return json.Marshal(&p.st)
}

// Restore implements chain.Contract
func (p *Proxy) Restore(storage []byte) error {
	var st state
	if err := json.Unmarshal(storage, &st); err != nil {
		return fmt.Errorf("failed to decode proxy storage: %w", err)
	}
	st.init()
	p.st = st
	return nil
}

// Pending returns the waiting requests of track, or of every track for TrackNone
func (p *Proxy) Pending(track domain.Track) []models.PendingRequest {
	return p.st.pending(track)
}

// Execute implements chain.Contract
func (p *Proxy) Execute(env *chain.Env, msg chain.Message) ([]byte, error) {
	if msg.HasValue() {
		return nil, domain.ErrNotPayable
	}
	c := &call{env: env, self: msg.To, caller: msg.From, payload: msg.Data}

	method := bindings.LookupMethod(p.abi, msg.Data)
	if method == nil {
		ret, err := p.relay(c)
		if err != nil {
			p.log.Debug("Relay failed", "from", msg.From.Hex(), "error", err)
			return nil, domain.Revert(msg.To, "fallback", err)
		}
		return ret, nil
	}

	var (
		ret []byte
		err error
	)
	if method.IsConstant() {
		ret, err = p.view(method, msg.Data)
	} else {
		err = p.transact(c, method)
	}
	if err != nil {
		p.log.Debug("Call rejected", "method", method.Name, "from", msg.From.Hex(), "error", err)
		return nil, domain.Revert(msg.To, method.Name, err)
	}
	return ret, nil
}

func (p *Proxy) transact(c *call, method *abi.Method) error {
	if err := c.env.RequireWritable(); err != nil {
		return err
	}

	switch method.Name {
	case "addRelease":
		var args bindings.AddReleaseArgs
		if err := bindings.UnpackArgs(method, c.payload, &args); err != nil {
			return err
		}
		return p.addRelease(c, args.Release, domain.Track(args.Track))

	case "addChecksum":
		var args bindings.AddChecksumArgs
		if err := bindings.UnpackArgs(method, c.payload, &args); err != nil {
			return err
		}
		return p.addChecksum(c, args.Release)

	case "confirm", "reject":
		var args bindings.RequestArgs
		if err := bindings.UnpackArgs(method, c.payload, &args); err != nil {
			return err
		}
		if method.Name == "confirm" {
			return p.confirm(c, domain.Track(args.Track), args.Hash)
		}
		return p.reject(c, domain.Track(args.Track), args.Hash)

	case "setOwner":
		var args bindings.OwnerArgs
		if err := bindings.UnpackArgs(method, c.payload, &args); err != nil {
			return err
		}
		return p.setOwner(c, args.Owner)

	case "setDelegate":
		var args bindings.SetDelegateArgs
		if err := bindings.UnpackArgs(method, c.payload, &args); err != nil {
			return err
		}
		return p.setDelegate(c, args.Delegate, domain.Track(args.Track))

	case "setConfirmer":
		var args bindings.SetConfirmerArgs
		if err := bindings.UnpackArgs(method, c.payload, &args); err != nil {
			return err
		}
		return p.setConfirmer(c, args.Confirmer, domain.Track(args.Track))
	}
	return fmt.Errorf("%w: unhandled method %s", domain.ErrMalformedCall, method.Name)
}

func (p *Proxy) view(method *abi.Method, data []byte) ([]byte, error) {
	switch method.Name {
	case "owner":
		return bindings.PackResult(method, p.st.Owner)

	case "operations":
		return bindings.PackResult(method, p.st.Operations)

	case "delegate", "confirmer":
		var q struct{ Track uint8 }
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		if method.Name == "delegate" {
			return bindings.PackResult(method, p.st.Tracks.Delegate(domain.Track(q.Track)))
		}
		return bindings.PackResult(method, p.st.Tracks.Confirmer(domain.Track(q.Track)))

	case "pendingRelease":
		var q struct{ Hash [32]byte }
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		return bindings.PackResult(method, [32]byte(p.st.PendingRelease[q.Hash]))

	case "trackOfPendingRelease":
		var q struct{ Release [32]byte }
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		return bindings.PackResult(method, uint8(p.st.TrackOfPendingRelease[q.Release]))

	case "waiting":
		var q bindings.RequestArgs
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		req, _ := p.st.waiting(domain.Track(q.Track), q.Hash)
		payload := []byte(req.Payload)
		if payload == nil {
			payload = []byte{}
		}
		return bindings.PackResult(method, payload)
	}
	return nil, fmt.Errorf("%w: unhandled view %s", domain.ErrMalformedCall, method.Name)
}

// call carries what a state-changing operation needs from its transaction
type call struct {
	env     *chain.Env
	self    common.Address
	caller  common.Address
	payload []byte
}

func (c *call) emit(event domain.Event) error {
	return c.env.Emit(c.self, event)
}

// registry sends payload to the registry as the proxy
func (p *Proxy) registry(c *call, payload []byte) ([]byte, error) {
	return c.env.Call(chain.Message{
		From:  c.self,
		To:    p.st.Operations,
		Value: new(big.Int),
		Data:  payload,
	})
}

// queryRegistry reads from the registry as the proxy
func (p *Proxy) queryRegistry(c *call, payload []byte) ([]byte, error) {
	return c.env.StaticCall(chain.Message{
		From: c.self,
		To:   p.st.Operations,
		Data: payload,
	})
}
