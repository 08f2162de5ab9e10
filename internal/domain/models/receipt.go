package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/opsgov/internal/domain"
)

const (
	ReceiptStatusFailed     uint64 = 0
	ReceiptStatusSuccessful uint64 = 1
)

// Receipt is the outcome of one transaction
type Receipt struct {
	TxHash      common.Hash    `json:"transactionHash"`
	BlockNumber uint64         `json:"blockNumber"`
	From        common.Address `json:"from"`
	To          common.Address `json:"to"`
	Status      uint64         `json:"status"`
	Logs        []*Log         `json:"logs"`
	ReturnData  hexutil.Bytes  `json:"returnData,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// Succeeded reports whether the transaction committed
func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}

// Log is an event emitted by a contract during a committed transaction
type Log struct {
	Address     common.Address `json:"address"`
	BlockNumber uint64         `json:"blockNumber"`
	TxHash      common.Hash    `json:"transactionHash"`
	Index       uint           `json:"logIndex"`
	Name        string         `json:"event"`
	Event       domain.Event   `json:"args"`
}

// Events returns the events in logs with the given name, in emission order
func Events[T domain.Event](logs []*Log) []T {
	var out []T
	for _, log := range logs {
		if ev, ok := log.Event.(T); ok {
			out = append(out, ev)
		}
	}
	return out
}
