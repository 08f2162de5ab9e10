package registry

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/bindings"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

type (
	clientQuery struct {
		Client [32]byte
	}
	ownerQuery struct {
		Owner common.Address
	}
	releaseQuery struct {
		Client  [32]byte
		Release [32]byte
	}
	checksumQuery struct {
		Client   [32]byte
		Release  [32]byte
		Platform [32]byte
	}
	buildQuery struct {
		Client   [32]byte
		Checksum [32]byte
	}
	latestQuery struct {
		Client [32]byte
		Track  uint8
	}
)

// view answers read calls. Data under a client without an owner reads as zero.
func (r *Registry) view(method *abi.Method, data []byte) ([]byte, error) {
	switch method.Name {
	case "client":
		var q clientQuery
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		return bindings.PackResult(method, r.st.Identities.ownerOf(q.Client))

	case "clientRequired":
		var q clientQuery
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		return bindings.PackResult(method, r.owned(q.Client) && !r.st.Optional[q.Client])

	case "clientOwner":
		var q ownerQuery
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		name, _ := r.st.Identities.clientOf(q.Owner)
		return bindings.PackResult(method, [32]byte(name))

	case "release":
		var q releaseQuery
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		rel := r.lookupRelease(q.Client, q.Release)
		return bindings.PackResult(method, rel.ForkBlock, uint8(rel.Track), big.NewInt(int64(rel.Semver)), rel.Critical)

	case "checksum":
		var q checksumQuery
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		var sum common.Hash
		if r.owned(q.Client) {
			sum = r.st.checksum(q.Client, q.Release, q.Platform)
		}
		return bindings.PackResult(method, [32]byte(sum))

	case "build":
		var q buildQuery
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		var build models.Build
		if r.owned(q.Client) {
			build = r.st.Builds[q.Client][q.Checksum]
		}
		return bindings.PackResult(method, [32]byte(build.Release), [32]byte(build.Platform))

	case "latestInTrack":
		var q latestQuery
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		var id common.Hash
		if r.owned(q.Client) {
			id = r.st.LatestInTrack[q.Client][domain.Track(q.Track)]
		}
		return bindings.PackResult(method, [32]byte(id))

	case "isLatest":
		var q releaseQuery
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		return bindings.PackResult(method, r.isLatest(q.Client, q.Release))

	case "track":
		var q releaseQuery
		if err := bindings.UnpackArgs(method, data, &q); err != nil {
			return nil, err
		}
		rel := r.lookupRelease(q.Client, q.Release)
		return bindings.PackResult(method, uint8(rel.Track))

	case "latestFork":
		return bindings.PackResult(method, r.st.LatestFork)

	case "grandOwner":
		return bindings.PackResult(method, r.st.GrandOwner)
	}
	return nil, fmt.Errorf("%w: unhandled view %s", domain.ErrMalformedCall, method.Name)
}

func (r *Registry) owned(name domain.ClientName) bool {
	return r.st.Identities.ownerOf(name) != (common.Address{})
}

func (r *Registry) lookupRelease(name domain.ClientName, id common.Hash) models.Release {
	if !r.owned(name) {
		return models.Release{}
	}
	rel, _ := r.st.release(name, id)
	return rel
}

func (r *Registry) isLatest(name domain.ClientName, id common.Hash) bool {
	rel := r.lookupRelease(name, id)
	if rel.IsZero() {
		return false
	}
	return r.st.LatestInTrack[name][rel.Track] == id
}
