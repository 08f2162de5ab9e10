package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
)

// OperationsProxyMetaData contains the ABI of the governance proxy contract. Calls whose
// selector is not listed here are relayed to the registry.
var OperationsProxyMetaData = bind.MetaData{
	ABI: `[
  {"type":"function","name":"addRelease","stateMutability":"nonpayable","inputs":[{"name":"release","type":"bytes32"},{"name":"forkBlock","type":"uint32"},{"name":"track","type":"uint8"},{"name":"semver","type":"uint24"},{"name":"critical","type":"bool"}],"outputs":[]},
  {"type":"function","name":"addChecksum","stateMutability":"nonpayable","inputs":[{"name":"release","type":"bytes32"},{"name":"platform","type":"bytes32"},{"name":"checksum","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"confirm","stateMutability":"nonpayable","inputs":[{"name":"track","type":"uint8"},{"name":"hash","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"reject","stateMutability":"nonpayable","inputs":[{"name":"track","type":"uint8"},{"name":"hash","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"setOwner","stateMutability":"nonpayable","inputs":[{"name":"owner","type":"address"}],"outputs":[]},
  {"type":"function","name":"setDelegate","stateMutability":"nonpayable","inputs":[{"name":"delegate","type":"address"},{"name":"track","type":"uint8"}],"outputs":[]},
  {"type":"function","name":"setConfirmer","stateMutability":"nonpayable","inputs":[{"name":"confirmer","type":"address"},{"name":"track","type":"uint8"}],"outputs":[]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"owner","type":"address"}]},
  {"type":"function","name":"delegate","stateMutability":"view","inputs":[{"name":"track","type":"uint8"}],"outputs":[{"name":"delegate","type":"address"}]},
  {"type":"function","name":"confirmer","stateMutability":"view","inputs":[{"name":"track","type":"uint8"}],"outputs":[{"name":"confirmer","type":"address"}]},
  {"type":"function","name":"pendingRelease","stateMutability":"view","inputs":[{"name":"hash","type":"bytes32"}],"outputs":[{"name":"release","type":"bytes32"}]},
  {"type":"function","name":"trackOfPendingRelease","stateMutability":"view","inputs":[{"name":"release","type":"bytes32"}],"outputs":[{"name":"track","type":"uint8"}]},
  {"type":"function","name":"waiting","stateMutability":"view","inputs":[{"name":"track","type":"uint8"},{"name":"hash","type":"bytes32"}],"outputs":[{"name":"payload","type":"bytes"}]},
  {"type":"function","name":"operations","stateMutability":"view","inputs":[],"outputs":[{"name":"operations","type":"address"}]}
]`,
	ID: "OperationsProxy",
}

// OperationsProxy is a Go binding around the governance proxy contract.
type OperationsProxy struct {
	abi abi.ABI
}

// NewOperationsProxy creates a new instance of OperationsProxy.
func NewOperationsProxy() *OperationsProxy {
	parsed, err := OperationsProxyMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &OperationsProxy{abi: *parsed}
}

// ABI returns the parsed contract ABI.
func (c *OperationsProxy) ABI() *abi.ABI {
	return &c.abi
}

func (c *OperationsProxy) pack(method string, args ...interface{}) []byte {
	enc, err := c.abi.Pack(method, args...)
	if err != nil {
		panic(err)
	}
	return enc
}

type (
	RequestArgs struct {
		Track uint8
		Hash  [32]byte
	}
	SetDelegateArgs struct {
		Delegate common.Address
		Track    uint8
	}
	SetConfirmerArgs struct {
		Confirmer common.Address
		Track     uint8
	}
)

// Solidity: function addRelease(bytes32 release, uint32 forkBlock, uint8 track, uint24 semver, bool critical) returns()
func (c *OperationsProxy) PackAddRelease(release common.Hash, forkBlock uint32, track domain.Track, semver domain.Semver, critical bool) []byte {
	return c.pack("addRelease", [32]byte(release), forkBlock, uint8(track), new(big.Int).SetUint64(uint64(semver)), critical)
}

// Solidity: function addChecksum(bytes32 release, bytes32 platform, bytes32 checksum) returns()
func (c *OperationsProxy) PackAddChecksum(release, platform, checksum common.Hash) []byte {
	return c.pack("addChecksum", [32]byte(release), [32]byte(platform), [32]byte(checksum))
}

// Solidity: function confirm(uint8 track, bytes32 hash) returns()
func (c *OperationsProxy) PackConfirm(track domain.Track, hash common.Hash) []byte {
	return c.pack("confirm", uint8(track), [32]byte(hash))
}

// Solidity: function reject(uint8 track, bytes32 hash) returns()
func (c *OperationsProxy) PackReject(track domain.Track, hash common.Hash) []byte {
	return c.pack("reject", uint8(track), [32]byte(hash))
}

// Solidity: function setOwner(address owner) returns()
func (c *OperationsProxy) PackSetOwner(owner common.Address) []byte {
	return c.pack("setOwner", owner)
}

// Solidity: function setDelegate(address delegate, uint8 track) returns()
func (c *OperationsProxy) PackSetDelegate(delegate common.Address, track domain.Track) []byte {
	return c.pack("setDelegate", delegate, uint8(track))
}

// Solidity: function setConfirmer(address confirmer, uint8 track) returns()
func (c *OperationsProxy) PackSetConfirmer(confirmer common.Address, track domain.Track) []byte {
	return c.pack("setConfirmer", confirmer, uint8(track))
}

// Solidity: function owner() view returns(address owner)
func (c *OperationsProxy) PackOwner() []byte {
	return c.pack("owner")
}

func (c *OperationsProxy) UnpackOwner(data []byte) (common.Address, error) {
	return c.unpackAddress("owner", data)
}

// Solidity: function delegate(uint8 track) view returns(address delegate)
func (c *OperationsProxy) PackDelegate(track domain.Track) []byte {
	return c.pack("delegate", uint8(track))
}

func (c *OperationsProxy) UnpackDelegate(data []byte) (common.Address, error) {
	return c.unpackAddress("delegate", data)
}

// Solidity: function confirmer(uint8 track) view returns(address confirmer)
func (c *OperationsProxy) PackConfirmer(track domain.Track) []byte {
	return c.pack("confirmer", uint8(track))
}

func (c *OperationsProxy) UnpackConfirmer(data []byte) (common.Address, error) {
	return c.unpackAddress("confirmer", data)
}

// Solidity: function pendingRelease(bytes32 hash) view returns(bytes32 release)
func (c *OperationsProxy) PackPendingRelease(hash common.Hash) []byte {
	return c.pack("pendingRelease", [32]byte(hash))
}

func (c *OperationsProxy) UnpackPendingRelease(data []byte) (common.Hash, error) {
	out, err := c.abi.Unpack("pendingRelease", data)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)), nil
}

// Solidity: function trackOfPendingRelease(bytes32 release) view returns(uint8 track)
func (c *OperationsProxy) PackTrackOfPendingRelease(release common.Hash) []byte {
	return c.pack("trackOfPendingRelease", [32]byte(release))
}

func (c *OperationsProxy) UnpackTrackOfPendingRelease(data []byte) (domain.Track, error) {
	out, err := c.abi.Unpack("trackOfPendingRelease", data)
	if err != nil {
		return domain.TrackNone, err
	}
	return domain.Track(*abi.ConvertType(out[0], new(uint8)).(*uint8)), nil
}

// Solidity: function waiting(uint8 track, bytes32 hash) view returns(bytes payload)
func (c *OperationsProxy) PackWaiting(track domain.Track, hash common.Hash) []byte {
	return c.pack("waiting", uint8(track), [32]byte(hash))
}

func (c *OperationsProxy) UnpackWaiting(data []byte) ([]byte, error) {
	out, err := c.abi.Unpack("waiting", data)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]byte)).(*[]byte), nil
}

// Solidity: function operations() view returns(address operations)
func (c *OperationsProxy) PackOperations() []byte {
	return c.pack("operations")
}

func (c *OperationsProxy) UnpackOperations(data []byte) (common.Address, error) {
	return c.unpackAddress("operations", data)
}

func (c *OperationsProxy) unpackAddress(method string, data []byte) (common.Address, error) {
	out, err := c.abi.Unpack(method, data)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
