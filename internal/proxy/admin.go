package proxy

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/bindings"
)

func (p *Proxy) onlyOwner(c *call) error {
	if c.caller != p.st.Owner {
		return fmt.Errorf("%w: %s is not the proxy owner", domain.ErrUnauthorized, c.caller.Hex())
	}
	return nil
}

func (p *Proxy) setOwner(c *call, owner common.Address) error {
	if err := p.onlyOwner(c); err != nil {
		return err
	}
	if owner == (common.Address{}) {
		return domain.ErrInvalidOwner
	}
	old := p.st.Owner
	p.st.Owner = owner
	p.log.Debug("Owner changed", "old", old.Hex(), "now", owner.Hex())
	return c.emit(&domain.OwnerChanged{Old: old, Now: owner})
}

func (p *Proxy) setDelegate(c *call, delegate common.Address, track domain.Track) error {
	if err := p.onlyOwner(c); err != nil {
		return err
	}
	if track == domain.TrackNone {
		return domain.ErrInvalidTrack
	}
	was := p.st.Tracks.SetDelegate(track, delegate)
	p.log.Debug("Delegate changed", "track", track, "was", was.Hex(), "who", delegate.Hex())
	return c.emit(&domain.DelegateChanged{Track: track, Was: was, Who: delegate})
}

// setConfirmer assigns the confirmer of track. The zero address makes proposals on the
// track execute immediately; requests already waiting stay resolvable only by a confirmer.
func (p *Proxy) setConfirmer(c *call, confirmer common.Address, track domain.Track) error {
	if err := p.onlyOwner(c); err != nil {
		return err
	}
	if track == domain.TrackNone {
		return domain.ErrInvalidTrack
	}
	was := p.st.Tracks.SetConfirmer(track, confirmer)
	p.log.Debug("Confirmer changed", "track", track, "was", was.Hex(), "who", confirmer.Hex())
	return c.emit(&domain.ConfirmerChanged{Track: track, Was: was, Who: confirmer})
}

// relay forwards a call the proxy does not implement to the registry on behalf of the
// owner. Unlike confirmed requests, a failing registry call fails the relay.
func (p *Proxy) relay(c *call) ([]byte, error) {
	if err := c.env.RequireWritable(); err != nil {
		return nil, err
	}
	if err := p.onlyOwner(c); err != nil {
		return nil, err
	}
	if len(c.payload) < bindings.SelectorSize {
		return nil, fmt.Errorf("%w: %w: payload shorter than a selector", domain.ErrRelayFailure, domain.ErrMalformedCall)
	}

	ret, err := p.registry(c, c.payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRelayFailure, err)
	}
	p.log.Debug("Relayed", "call", bindings.DescribeCall(c.payload, p.ops.ABI()))
	return ret, nil
}
