package domain

import "github.com/ethereum/go-ethereum/common"

// EventFilter defines filtering options for journaled events
type EventFilter struct {
	// Address restricts to events emitted by one contract (zero means any)
	Address common.Address
	// Names restricts to the given event names (empty means any)
	Names []string
	// FromBlock and ToBlock bound the block range (ToBlock zero means latest)
	FromBlock uint64
	ToBlock   uint64
	// Limit keeps only the most recent events (zero means no limit)
	Limit int
}
