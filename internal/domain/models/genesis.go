package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
)

// TrackAssignment is the delegate and confirmer of one track
type TrackAssignment struct {
	Track     domain.Track   `json:"track"`
	Delegate  common.Address `json:"delegate"`
	Confirmer common.Address `json:"confirmer"`
}

// RequiresConfirmation reports whether proposals on the track wait for a confirmer
func (a TrackAssignment) RequiresConfirmation() bool {
	return a.Confirmer != (common.Address{})
}

// Genesis describes the initial contents of a ledger
type Genesis struct {
	RegistryOwner common.Address
	Clients       []GenesisClient
	Proxy         *GenesisProxy
}

// GenesisClient is a client registered at genesis
type GenesisClient struct {
	Name  domain.ClientName
	Owner common.Address
	// Optional registers the client as not required
	Optional bool
}

// GenesisProxy configures the governance proxy deployed at genesis
type GenesisProxy struct {
	Owner  common.Address
	Tracks []TrackAssignment

	// Client is handed over to the proxy, so releases for it go through governance
	Client domain.ClientName
	// OwnsRegistry makes the proxy the registry owner; registry administration is then
	// relayed through the proxy
	OwnsRegistry bool
}
