package registry

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// identities is the client <-> owner table. Both directions are always written together,
// so a name has at most one owner and an owner at most one name.
type identities struct {
	Owners  map[domain.ClientName]common.Address `json:"owners"`
	Clients map[common.Address]domain.ClientName `json:"clients"`
}

func newIdentities() identities {
	return identities{
		Owners:  make(map[domain.ClientName]common.Address),
		Clients: make(map[common.Address]domain.ClientName),
	}
}

// ownerOf returns the owner of name, or the zero address
func (id *identities) ownerOf(name domain.ClientName) common.Address {
	return id.Owners[name]
}

// clientOf returns the client owned by owner
func (id *identities) clientOf(owner common.Address) (domain.ClientName, bool) {
	name, ok := id.Clients[owner]
	return name, ok
}

// conflicts reports whether owner already owns a client other than name
func (id *identities) conflicts(owner common.Address, name domain.ClientName) bool {
	current, ok := id.Clients[owner]
	return ok && current != name
}

// assign binds name to owner, dropping the reverse entry of the previous owner
func (id *identities) assign(name domain.ClientName, owner common.Address) (previous common.Address) {
	previous = id.Owners[name]
	if previous != (common.Address{}) {
		delete(id.Clients, previous)
	}
	id.Owners[name] = owner
	id.Clients[owner] = name
	return previous
}

// release unbinds name from its owner
func (id *identities) release(name domain.ClientName) (previous common.Address) {
	previous = id.Owners[name]
	delete(id.Owners, name)
	delete(id.Clients, previous)
	return previous
}

// state is the registry storage. Release data is keyed by client name and survives the
// removal of the client.
type state struct {
	GrandOwner common.Address `json:"grandOwner"`
	LatestFork uint32         `json:"latestFork"`
	Identities identities     `json:"identities"`
	// Optional holds the clients flagged as not required; clients are required by default
	Optional map[domain.ClientName]bool `json:"optional,omitempty"`

	Releases      map[domain.ClientName]map[common.Hash]models.Release              `json:"releases"`
	Checksums     map[domain.ClientName]map[common.Hash]map[common.Hash]common.Hash `json:"checksums"`
	Builds        map[domain.ClientName]map[common.Hash]models.Build                `json:"builds"`
	LatestInTrack map[domain.ClientName]map[domain.Track]common.Hash                `json:"latestInTrack"`
}

func newState(grandOwner common.Address) state {
	st := state{GrandOwner: grandOwner}
	st.init()
	return st
}

// init allocates the maps a decoded snapshot may lack
func (st *state) init() {
	if st.Identities.Owners == nil || st.Identities.Clients == nil {
		owners, clients := st.Identities.Owners, st.Identities.Clients
		st.Identities = newIdentities()
		for k, v := range owners {
			st.Identities.Owners[k] = v
		}
		for k, v := range clients {
			st.Identities.Clients[k] = v
		}
	}
	if st.Optional == nil {
		st.Optional = make(map[domain.ClientName]bool)
	}
	if st.Releases == nil {
		st.Releases = make(map[domain.ClientName]map[common.Hash]models.Release)
	}
	if st.Checksums == nil {
		st.Checksums = make(map[domain.ClientName]map[common.Hash]map[common.Hash]common.Hash)
	}
	if st.Builds == nil {
		st.Builds = make(map[domain.ClientName]map[common.Hash]models.Build)
	}
	if st.LatestInTrack == nil {
		st.LatestInTrack = make(map[domain.ClientName]map[domain.Track]common.Hash)
	}
}

func (st *state) release(client domain.ClientName, id common.Hash) (models.Release, bool) {
	r, ok := st.Releases[client][id]
	return r, ok
}

func (st *state) putRelease(client domain.ClientName, id common.Hash, r models.Release) {
	if st.Releases[client] == nil {
		st.Releases[client] = make(map[common.Hash]models.Release)
	}
	st.Releases[client][id] = r
	if st.LatestInTrack[client] == nil {
		st.LatestInTrack[client] = make(map[domain.Track]common.Hash)
	}
	st.LatestInTrack[client][r.Track] = id
}

func (st *state) checksum(client domain.ClientName, id, platform common.Hash) common.Hash {
	return st.Checksums[client][id][platform]
}

// putChecksum records checksum for (id, platform). A checksum replaced on the same
// platform loses its reverse entry unless another build took it over.
func (st *state) putChecksum(client domain.ClientName, id, platform, checksum common.Hash) {
	if st.Checksums[client] == nil {
		st.Checksums[client] = make(map[common.Hash]map[common.Hash]common.Hash)
	}
	if st.Checksums[client][id] == nil {
		st.Checksums[client][id] = make(map[common.Hash]common.Hash)
	}
	if st.Builds[client] == nil {
		st.Builds[client] = make(map[common.Hash]models.Build)
	}

	build := models.Build{Release: id, Platform: platform}
	if stale, ok := st.Checksums[client][id][platform]; ok && stale != checksum {
		if st.Builds[client][stale] == build {
			delete(st.Builds[client], stale)
		}
	}
	st.Checksums[client][id][platform] = checksum
	st.Builds[client][checksum] = build
}
