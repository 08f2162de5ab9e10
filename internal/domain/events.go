package domain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Event is implemented by every event a contract emits
type Event interface {
	ContractEventName() string
	String() string
}

const (
	EventClientAdded        = "ClientAdded"
	EventClientRemoved      = "ClientRemoved"
	EventClientOwnerChanged = "ClientOwnerChanged"
	EventClientRequired     = "ClientRequiredChanged"
	EventOwnerChanged       = "OwnerChanged"
	EventDelegateChanged    = "DelegateChanged"
	EventConfirmerChanged   = "ConfirmerChanged"
	EventForkRatified       = "ForkRatified"
	EventReleaseAdded       = "ReleaseAdded"
	EventChecksumAdded      = "ChecksumAdded"
	EventNewRequestWaiting  = "NewRequestWaiting"
	EventRequestConfirmed   = "RequestConfirmed"
	EventRequestRejected    = "RequestRejected"
	EventReceived           = "Received"
)

// NewEvent returns an empty event value for name, used when decoding stored events.
func NewEvent(name string) (Event, error) {
	switch name {
	case EventClientAdded:
		return &ClientAdded{}, nil
	case EventClientRemoved:
		return &ClientRemoved{}, nil
	case EventClientOwnerChanged:
		return &ClientOwnerChanged{}, nil
	case EventClientRequired:
		return &ClientRequiredChanged{}, nil
	case EventOwnerChanged:
		return &OwnerChanged{}, nil
	case EventDelegateChanged:
		return &DelegateChanged{}, nil
	case EventConfirmerChanged:
		return &ConfirmerChanged{}, nil
	case EventForkRatified:
		return &ForkRatified{}, nil
	case EventReleaseAdded:
		return &ReleaseAdded{}, nil
	case EventChecksumAdded:
		return &ChecksumAdded{}, nil
	case EventNewRequestWaiting:
		return &NewRequestWaiting{}, nil
	case EventRequestConfirmed:
		return &RequestConfirmed{}, nil
	case EventRequestRejected:
		return &RequestRejected{}, nil
	case EventReceived:
		return &Received{}, nil
	default:
		return nil, fmt.Errorf("unknown event %q", name)
	}
}

// ClientAdded is emitted when a client is assigned its first owner
type ClientAdded struct {
	Client ClientName     `json:"client"`
	Owner  common.Address `json:"owner"`
}

func (ClientAdded) ContractEventName() string { return EventClientAdded }

func (e *ClientAdded) String() string {
	return fmt.Sprintf("%s: client=%s owner=%s", e.ContractEventName(), e.Client, e.Owner.Hex())
}

// ClientRemoved is emitted when a client loses its owner
type ClientRemoved struct {
	Client ClientName `json:"client"`
}

func (ClientRemoved) ContractEventName() string { return EventClientRemoved }

func (e *ClientRemoved) String() string {
	return fmt.Sprintf("%s: client=%s", e.ContractEventName(), e.Client)
}

// ClientOwnerChanged is emitted when an owned client moves to another owner
type ClientOwnerChanged struct {
	Client ClientName     `json:"client"`
	Old    common.Address `json:"old"`
	Now    common.Address `json:"now"`
}

func (ClientOwnerChanged) ContractEventName() string { return EventClientOwnerChanged }

func (e *ClientOwnerChanged) String() string {
	return fmt.Sprintf("%s: client=%s old=%s now=%s", e.ContractEventName(), e.Client, e.Old.Hex(), e.Now.Hex())
}

// ClientRequiredChanged is emitted when the registry owner flags whether a client's
// releases are required
type ClientRequiredChanged struct {
	Client   ClientName `json:"client"`
	Required bool       `json:"required"`
}

func (ClientRequiredChanged) ContractEventName() string { return EventClientRequired }

func (e *ClientRequiredChanged) String() string {
	return fmt.Sprintf("%s: client=%s required=%t", e.ContractEventName(), e.Client, e.Required)
}

// OwnerChanged is emitted when a contract's owner is transferred
type OwnerChanged struct {
	Old common.Address `json:"old"`
	Now common.Address `json:"now"`
}

func (OwnerChanged) ContractEventName() string { return EventOwnerChanged }

func (e *OwnerChanged) String() string {
	return fmt.Sprintf("%s: old=%s now=%s", e.ContractEventName(), e.Old.Hex(), e.Now.Hex())
}

// DelegateChanged is emitted when a track's delegate is reassigned
type DelegateChanged struct {
	Track Track          `json:"track"`
	Was   common.Address `json:"was"`
	Who   common.Address `json:"who"`
}

func (DelegateChanged) ContractEventName() string { return EventDelegateChanged }

func (e *DelegateChanged) String() string {
	return fmt.Sprintf("%s: track=%s was=%s who=%s", e.ContractEventName(), e.Track, e.Was.Hex(), e.Who.Hex())
}

// ConfirmerChanged is emitted when a track's confirmer is reassigned
type ConfirmerChanged struct {
	Track Track          `json:"track"`
	Was   common.Address `json:"was"`
	Who   common.Address `json:"who"`
}

func (ConfirmerChanged) ContractEventName() string { return EventConfirmerChanged }

func (e *ConfirmerChanged) String() string {
	return fmt.Sprintf("%s: track=%s was=%s who=%s", e.ContractEventName(), e.Track, e.Was.Hex(), e.Who.Hex())
}

// ForkRatified is emitted when the latest supported fork is set
type ForkRatified struct {
	ForkNumber uint32 `json:"forkNumber"`
}

func (ForkRatified) ContractEventName() string { return EventForkRatified }

func (e *ForkRatified) String() string {
	return fmt.Sprintf("%s: fork=%d", e.ContractEventName(), e.ForkNumber)
}

// ReleaseAdded is emitted when a release is recorded for a client
type ReleaseAdded struct {
	Client    ClientName  `json:"client"`
	ForkBlock uint32      `json:"forkBlock"`
	Release   common.Hash `json:"release"`
	Track     Track       `json:"track"`
	Semver    Semver      `json:"semver"`
	Critical  bool        `json:"critical"`
}

func (ReleaseAdded) ContractEventName() string { return EventReleaseAdded }

func (e *ReleaseAdded) String() string {
	return fmt.Sprintf("%s: client=%s release=%s track=%s semver=%s fork=%d critical=%t",
		e.ContractEventName(), e.Client, e.Release.Hex(), e.Track, e.Semver, e.ForkBlock, e.Critical)
}

// ChecksumAdded is emitted when a platform checksum is recorded for a release
type ChecksumAdded struct {
	Client   ClientName  `json:"client"`
	Release  common.Hash `json:"release"`
	Platform common.Hash `json:"platform"`
	Checksum common.Hash `json:"checksum"`
}

func (ChecksumAdded) ContractEventName() string { return EventChecksumAdded }

func (e *ChecksumAdded) String() string {
	return fmt.Sprintf("%s: client=%s release=%s platform=%s checksum=%s",
		e.ContractEventName(), e.Client, e.Release.Hex(), e.Platform.Hex(), e.Checksum.Hex())
}

// NewRequestWaiting is emitted when a proposal is stored for confirmation
type NewRequestWaiting struct {
	Track Track       `json:"track"`
	Hash  common.Hash `json:"hash"`
}

func (NewRequestWaiting) ContractEventName() string { return EventNewRequestWaiting }

func (e *NewRequestWaiting) String() string {
	return fmt.Sprintf("%s: track=%s hash=%s", e.ContractEventName(), e.Track, e.Hash.Hex())
}

// RequestConfirmed is emitted when a request is relayed, reporting the relay outcome
type RequestConfirmed struct {
	Track   Track       `json:"track"`
	Hash    common.Hash `json:"hash"`
	Success bool        `json:"success"`
}

func (RequestConfirmed) ContractEventName() string { return EventRequestConfirmed }

func (e *RequestConfirmed) String() string {
	return fmt.Sprintf("%s: track=%s hash=%s success=%t", e.ContractEventName(), e.Track, e.Hash.Hex(), e.Success)
}

// RequestRejected is emitted when a confirmer discards a waiting request
type RequestRejected struct {
	Track Track       `json:"track"`
	Hash  common.Hash `json:"hash"`
}

func (RequestRejected) ContractEventName() string { return EventRequestRejected }

func (e *RequestRejected) String() string {
	return fmt.Sprintf("%s: track=%s hash=%s", e.ContractEventName(), e.Track, e.Hash.Hex())
}

// Received is emitted by the registry fallback for value transfers and unknown calls
type Received struct {
	From  common.Address `json:"from"`
	Value *big.Int       `json:"value"`
	Data  hexutil.Bytes  `json:"data"`
}

func (Received) ContractEventName() string { return EventReceived }

func (e *Received) String() string {
	return fmt.Sprintf("%s: from=%s value=%s data=%s", e.ContractEventName(), e.From.Hex(), e.Value, e.Data)
}
