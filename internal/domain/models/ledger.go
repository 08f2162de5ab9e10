package models

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerState is the persisted state of every contract on the ledger
type LedgerState struct {
	Nonce       uint64          `json:"nonce"`
	BlockNumber uint64          `json:"blockNumber"`
	Contracts   []ContractState `json:"contracts"`
}

// ContractState is the serialized storage of one contract
type ContractState struct {
	Kind    string          `json:"kind"`
	Address common.Address  `json:"address"`
	Storage json.RawMessage `json:"storage"`
}

// Contract returns the first contract of the given kind
func (s *LedgerState) Contract(kind string) (ContractState, bool) {
	for _, c := range s.Contracts {
		if c.Kind == kind {
			return c, true
		}
	}
	return ContractState{}, false
}

// Contract kinds stored in LedgerState
const (
	KindRegistry = "operations"
	KindProxy    = "proxy"
)

// Deployment locates the governed contracts on a ledger
type Deployment struct {
	Registry common.Address `json:"registry"`
	Proxy    common.Address `json:"proxy,omitempty"`
}

// HasProxy reports whether a governance proxy is deployed
func (d Deployment) HasProxy() bool {
	return d.Proxy != (common.Address{})
}
