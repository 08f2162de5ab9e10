package proxy

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/bindings"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

func (p *Proxy) onlyDelegate(c *call, track domain.Track) error {
	if !p.st.Tracks.IsDelegate(track, c.caller) {
		return fmt.Errorf("%w: %s is not the %s delegate", domain.ErrUnauthorized, c.caller.Hex(), track)
	}
	return nil
}

func (p *Proxy) onlyConfirmer(c *call, track domain.Track) error {
	if !p.st.Tracks.IsConfirmer(track, c.caller) {
		return fmt.Errorf("%w: %s is not the %s confirmer", domain.ErrUnauthorized, c.caller.Hex(), track)
	}
	return nil
}

func (p *Proxy) addRelease(c *call, release common.Hash, track domain.Track) error {
	if err := p.onlyDelegate(c, track); err != nil {
		return err
	}
	return p.propose(c, track, &release)
}

// addChecksum proposes on the track of the release: the track of a waiting addRelease
// if there is one, else the track the registry recorded for it.
func (p *Proxy) addChecksum(c *call, release common.Hash) error {
	track, err := p.trackOf(c, release)
	if err != nil {
		return err
	}
	if err := p.onlyDelegate(c, track); err != nil {
		return err
	}
	return p.propose(c, track, nil)
}

func (p *Proxy) trackOf(c *call, release common.Hash) (domain.Track, error) {
	if track, ok := p.st.TrackOfPendingRelease[release]; ok {
		return track, nil
	}

	out, err := p.queryRegistry(c, p.ops.PackClientOwner(c.self))
	if err != nil {
		return domain.TrackNone, fmt.Errorf("failed to look up proxy client: %w", err)
	}
	client, err := p.ops.UnpackClientOwner(out)
	if err != nil {
		return domain.TrackNone, err
	}
	out, err = p.queryRegistry(c, p.ops.PackTrack(client, release))
	if err != nil {
		return domain.TrackNone, fmt.Errorf("failed to look up release track: %w", err)
	}
	track, err := p.ops.UnpackTrack(out)
	if err != nil {
		return domain.TrackNone, err
	}
	if track == domain.TrackNone {
		return domain.TrackNone, fmt.Errorf("%w: %s", domain.ErrUnknownRelease, release.Hex())
	}
	return track, nil
}

// propose either relays the caller's payload right away, when track has no confirmer, or
// stores it until the confirmer resolves it. release is set for addRelease proposals.
func (p *Proxy) propose(c *call, track domain.Track, release *common.Hash) error {
	hash := bindings.RequestHash(c.payload)

	if !p.st.Tracks.RequiresConfirmation(track) {
		success := p.execute(c, hash, c.payload)
		return c.emit(&domain.RequestConfirmed{Track: track, Hash: hash, Success: success})
	}

	p.st.store(models.PendingRequest{
		Hash:       hash,
		Track:      track,
		Payload:    common.CopyBytes(c.payload),
		ProposedBy: c.caller,
		ProposedAt: c.env.BlockNumber(),
		ProposalTx: c.env.TxHash(),
	}, release)
	p.log.Debug("Request waiting", "track", track, "hash", hash.Hex(), "delegate", c.caller.Hex())
	return c.emit(&domain.NewRequestWaiting{Track: track, Hash: hash})
}

func (p *Proxy) confirm(c *call, track domain.Track, hash common.Hash) error {
	if err := p.onlyConfirmer(c, track); err != nil {
		return err
	}
	req, ok := p.st.waiting(track, hash)
	if !ok {
		return fmt.Errorf("%w: %s on %s", domain.ErrUnknownRequest, hash.Hex(), track)
	}

	p.st.clear(track, hash)
	success := p.execute(c, hash, req.Payload)
	return c.emit(&domain.RequestConfirmed{Track: track, Hash: hash, Success: success})
}

func (p *Proxy) reject(c *call, track domain.Track, hash common.Hash) error {
	if err := p.onlyConfirmer(c, track); err != nil {
		return err
	}
	if _, ok := p.st.waiting(track, hash); !ok {
		return fmt.Errorf("%w: %s on %s", domain.ErrUnknownRequest, hash.Hex(), track)
	}

	p.st.clear(track, hash)
	p.log.Debug("Request rejected", "track", track, "hash", hash.Hex())
	return c.emit(&domain.RequestRejected{Track: track, Hash: hash})
}

// execute relays an accepted request. A failing registry call is reported, not raised.
func (p *Proxy) execute(c *call, hash common.Hash, payload []byte) bool {
	if _, err := p.registry(c, payload); err != nil {
		p.log.Debug("Request failed in registry", "hash", hash.Hex(), "error", err)
		return false
	}
	p.log.Debug("Request executed", "hash", hash.Hex())
	return true
}
