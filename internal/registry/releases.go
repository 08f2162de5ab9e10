package registry

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// callerClient returns the client owned by the caller
func (r *Registry) callerClient(c *call) (domain.ClientName, error) {
	name, ok := r.st.Identities.clientOf(c.caller)
	if !ok {
		return name, fmt.Errorf("%w: %s owns no client", domain.ErrUnauthorized, c.caller.Hex())
	}
	return name, nil
}

func (r *Registry) addRelease(c *call, id common.Hash, forkBlock uint32, track domain.Track, semver domain.Semver, critical bool) error {
	client, err := r.callerClient(c)
	if err != nil {
		return err
	}
	if track == domain.TrackNone {
		return fmt.Errorf("%w: release must be on a track", domain.ErrInvalidTrack)
	}
	if _, ok := r.st.release(client, id); ok {
		return fmt.Errorf("%w: release %s of %s", domain.ErrAlreadyExists, id.Hex(), client)
	}

	rel := models.Release{
		ForkBlock: forkBlock,
		Track:     track,
		Semver:    semver,
		Critical:  critical,
	}
	r.st.putRelease(client, id, rel)
	r.log.Debug("Release added", "client", client.String(), "release", id.Hex(), "track", track, "semver", semver)
	return c.emit(&domain.ReleaseAdded{
		Client:    client,
		ForkBlock: forkBlock,
		Release:   id,
		Track:     track,
		Semver:    semver,
		Critical:  critical,
	})
}

func (r *Registry) addChecksum(c *call, id, platform, checksum common.Hash) error {
	client, err := r.callerClient(c)
	if err != nil {
		return err
	}
	if _, ok := r.st.release(client, id); !ok {
		return fmt.Errorf("%w: release %s of %s", domain.ErrUnknownRelease, id.Hex(), client)
	}

	r.st.putChecksum(client, id, platform, checksum)
	r.log.Debug("Checksum added", "client", client.String(), "release", id.Hex(), "platform", platform.Hex())
	return c.emit(&domain.ChecksumAdded{
		Client:   client,
		Release:  id,
		Platform: platform,
		Checksum: checksum,
	})
}
