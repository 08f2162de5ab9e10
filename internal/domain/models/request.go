package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/opsgov/internal/domain"
)

// PendingRequest is a proposed call waiting for its track's confirmer
type PendingRequest struct {
	// Hash is keccak256 of Payload
	Hash    common.Hash   `json:"hash"`
	Track   domain.Track  `json:"track"`
	Payload hexutil.Bytes `json:"payload"`

	// Proposal details of the most recent proposer of this payload
	ProposedBy common.Address `json:"proposedBy"`
	ProposedAt uint64         `json:"proposedAt"`
	ProposalTx common.Hash    `json:"proposalTx"`
}
