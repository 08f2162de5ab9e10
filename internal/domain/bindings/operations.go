package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// OperationsMetaData contains the ABI of the release registry contract.
var OperationsMetaData = bind.MetaData{
	ABI: `[
  {"type":"function","name":"addClient","stateMutability":"nonpayable","inputs":[{"name":"client","type":"bytes32"},{"name":"owner","type":"address"}],"outputs":[]},
  {"type":"function","name":"setClient","stateMutability":"nonpayable","inputs":[{"name":"client","type":"bytes32"},{"name":"owner","type":"address"}],"outputs":[]},
  {"type":"function","name":"resetClientOwner","stateMutability":"nonpayable","inputs":[{"name":"client","type":"bytes32"},{"name":"owner","type":"address"}],"outputs":[]},
  {"type":"function","name":"setClientRequired","stateMutability":"nonpayable","inputs":[{"name":"client","type":"bytes32"},{"name":"required","type":"bool"}],"outputs":[]},
  {"type":"function","name":"removeClient","stateMutability":"nonpayable","inputs":[{"name":"client","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"setClientOwner","stateMutability":"nonpayable","inputs":[{"name":"owner","type":"address"}],"outputs":[]},
  {"type":"function","name":"addRelease","stateMutability":"nonpayable","inputs":[{"name":"release","type":"bytes32"},{"name":"forkBlock","type":"uint32"},{"name":"track","type":"uint8"},{"name":"semver","type":"uint24"},{"name":"critical","type":"bool"}],"outputs":[]},
  {"type":"function","name":"addChecksum","stateMutability":"nonpayable","inputs":[{"name":"release","type":"bytes32"},{"name":"platform","type":"bytes32"},{"name":"checksum","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"setOwner","stateMutability":"nonpayable","inputs":[{"name":"owner","type":"address"}],"outputs":[]},
  {"type":"function","name":"setLatestFork","stateMutability":"nonpayable","inputs":[{"name":"forkNumber","type":"uint32"}],"outputs":[]},
  {"type":"function","name":"client","stateMutability":"view","inputs":[{"name":"client","type":"bytes32"}],"outputs":[{"name":"owner","type":"address"}]},
  {"type":"function","name":"clientRequired","stateMutability":"view","inputs":[{"name":"client","type":"bytes32"}],"outputs":[{"name":"required","type":"bool"}]},
  {"type":"function","name":"clientOwner","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"client","type":"bytes32"}]},
  {"type":"function","name":"release","stateMutability":"view","inputs":[{"name":"client","type":"bytes32"},{"name":"release","type":"bytes32"}],"outputs":[{"name":"forkBlock","type":"uint32"},{"name":"track","type":"uint8"},{"name":"semver","type":"uint24"},{"name":"critical","type":"bool"}]},
  {"type":"function","name":"checksum","stateMutability":"view","inputs":[{"name":"client","type":"bytes32"},{"name":"release","type":"bytes32"},{"name":"platform","type":"bytes32"}],"outputs":[{"name":"checksum","type":"bytes32"}]},
  {"type":"function","name":"build","stateMutability":"view","inputs":[{"name":"client","type":"bytes32"},{"name":"checksum","type":"bytes32"}],"outputs":[{"name":"release","type":"bytes32"},{"name":"platform","type":"bytes32"}]},
  {"type":"function","name":"latestInTrack","stateMutability":"view","inputs":[{"name":"client","type":"bytes32"},{"name":"track","type":"uint8"}],"outputs":[{"name":"release","type":"bytes32"}]},
  {"type":"function","name":"isLatest","stateMutability":"view","inputs":[{"name":"client","type":"bytes32"},{"name":"release","type":"bytes32"}],"outputs":[{"name":"latest","type":"bool"}]},
  {"type":"function","name":"track","stateMutability":"view","inputs":[{"name":"client","type":"bytes32"},{"name":"release","type":"bytes32"}],"outputs":[{"name":"track","type":"uint8"}]},
  {"type":"function","name":"latestFork","stateMutability":"view","inputs":[],"outputs":[{"name":"forkNumber","type":"uint32"}]},
  {"type":"function","name":"grandOwner","stateMutability":"view","inputs":[],"outputs":[{"name":"owner","type":"address"}]}
]`,
	ID: "Operations",
}

// Operations is a Go binding around the release registry contract.
type Operations struct {
	abi abi.ABI
}

// NewOperations creates a new instance of Operations.
func NewOperations() *Operations {
	parsed, err := OperationsMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &Operations{abi: *parsed}
}

// ABI returns the parsed contract ABI.
func (c *Operations) ABI() *abi.ABI {
	return &c.abi
}

func (c *Operations) pack(method string, args ...interface{}) []byte {
	enc, err := c.abi.Pack(method, args...)
	if err != nil {
		panic(err)
	}
	return enc
}

// Argument layouts of the mutating methods, filled by UnpackArgs.
type (
	ClientArgs struct {
		Client [32]byte
		Owner  common.Address
	}
	ClientRequiredArgs struct {
		Client   [32]byte
		Required bool
	}
	RemoveClientArgs struct {
		Client [32]byte
	}
	OwnerArgs struct {
		Owner common.Address
	}
	AddReleaseArgs struct {
		Release   [32]byte
		ForkBlock uint32
		Track     uint8
		Semver    *big.Int
		Critical  bool
	}
	AddChecksumArgs struct {
		Release  [32]byte
		Platform [32]byte
		Checksum [32]byte
	}
	SetLatestForkArgs struct {
		ForkNumber uint32
	}
)

// PackAddClient is the Go binding used to pack the parameters required for calling
// the contract method addClient.
//
// Solidity: function addClient(bytes32 client, address owner) returns()
func (c *Operations) PackAddClient(client domain.ClientName, owner common.Address) []byte {
	return c.pack("addClient", [32]byte(client), owner)
}

// Solidity: function setClient(bytes32 client, address owner) returns()
func (c *Operations) PackSetClient(client domain.ClientName, owner common.Address) []byte {
	return c.pack("setClient", [32]byte(client), owner)
}

// Solidity: function resetClientOwner(bytes32 client, address owner) returns()
func (c *Operations) PackResetClientOwner(client domain.ClientName, owner common.Address) []byte {
	return c.pack("resetClientOwner", [32]byte(client), owner)
}

// Solidity: function setClientRequired(bytes32 client, bool required) returns()
func (c *Operations) PackSetClientRequired(client domain.ClientName, required bool) []byte {
	return c.pack("setClientRequired", [32]byte(client), required)
}

// Solidity: function removeClient(bytes32 client) returns()
func (c *Operations) PackRemoveClient(client domain.ClientName) []byte {
	return c.pack("removeClient", [32]byte(client))
}

// Solidity: function setClientOwner(address owner) returns()
func (c *Operations) PackSetClientOwner(owner common.Address) []byte {
	return c.pack("setClientOwner", owner)
}

// PackAddRelease packs addRelease. The proxy exposes the same signature, so the result is
// valid calldata for both contracts.
//
// Solidity: function addRelease(bytes32 release, uint32 forkBlock, uint8 track, uint24 semver, bool critical) returns()
func (c *Operations) PackAddRelease(release common.Hash, forkBlock uint32, track domain.Track, semver domain.Semver, critical bool) []byte {
	return c.pack("addRelease", [32]byte(release), forkBlock, uint8(track), new(big.Int).SetUint64(uint64(semver)), critical)
}

// Solidity: function addChecksum(bytes32 release, bytes32 platform, bytes32 checksum) returns()
func (c *Operations) PackAddChecksum(release, platform, checksum common.Hash) []byte {
	return c.pack("addChecksum", [32]byte(release), [32]byte(platform), [32]byte(checksum))
}

// Solidity: function setOwner(address owner) returns()
func (c *Operations) PackSetOwner(owner common.Address) []byte {
	return c.pack("setOwner", owner)
}

// Solidity: function setLatestFork(uint32 forkNumber) returns()
func (c *Operations) PackSetLatestFork(forkNumber uint32) []byte {
	return c.pack("setLatestFork", forkNumber)
}

// Solidity: function client(bytes32 client) view returns(address owner)
func (c *Operations) PackClient(client domain.ClientName) []byte {
	return c.pack("client", [32]byte(client))
}

func (c *Operations) UnpackClient(data []byte) (common.Address, error) {
	out, err := c.abi.Unpack("client", data)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// Solidity: function clientRequired(bytes32 client) view returns(bool required)
func (c *Operations) PackClientRequired(client domain.ClientName) []byte {
	return c.pack("clientRequired", [32]byte(client))
}

func (c *Operations) UnpackClientRequired(data []byte) (bool, error) {
	out, err := c.abi.Unpack("clientRequired", data)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// Solidity: function clientOwner(address owner) view returns(bytes32 client)
func (c *Operations) PackClientOwner(owner common.Address) []byte {
	return c.pack("clientOwner", owner)
}

func (c *Operations) UnpackClientOwner(data []byte) (domain.ClientName, error) {
	out, err := c.abi.Unpack("clientOwner", data)
	if err != nil {
		return domain.ClientName{}, err
	}
	return domain.ClientName(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)), nil
}

// Solidity: function release(bytes32 client, bytes32 release) view returns(uint32 forkBlock, uint8 track, uint24 semver, bool critical)
func (c *Operations) PackRelease(client domain.ClientName, release common.Hash) []byte {
	return c.pack("release", [32]byte(client), [32]byte(release))
}

func (c *Operations) UnpackRelease(data []byte) (models.Release, error) {
	out, err := c.abi.Unpack("release", data)
	if err != nil {
		return models.Release{}, err
	}
	return models.Release{
		ForkBlock: *abi.ConvertType(out[0], new(uint32)).(*uint32),
		Track:     domain.Track(*abi.ConvertType(out[1], new(uint8)).(*uint8)),
		Semver:    domain.Semver(abi.ConvertType(out[2], new(big.Int)).(*big.Int).Uint64()),
		Critical:  *abi.ConvertType(out[3], new(bool)).(*bool),
	}, nil
}

// Solidity: function checksum(bytes32 client, bytes32 release, bytes32 platform) view returns(bytes32 checksum)
func (c *Operations) PackChecksum(client domain.ClientName, release, platform common.Hash) []byte {
	return c.pack("checksum", [32]byte(client), [32]byte(release), [32]byte(platform))
}

func (c *Operations) UnpackChecksum(data []byte) (common.Hash, error) {
	return c.unpackHash("checksum", data)
}

// Solidity: function build(bytes32 client, bytes32 checksum) view returns(bytes32 release, bytes32 platform)
func (c *Operations) PackBuild(client domain.ClientName, checksum common.Hash) []byte {
	return c.pack("build", [32]byte(client), [32]byte(checksum))
}

func (c *Operations) UnpackBuild(data []byte) (models.Build, error) {
	out, err := c.abi.Unpack("build", data)
	if err != nil {
		return models.Build{}, err
	}
	return models.Build{
		Release:  common.Hash(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)),
		Platform: common.Hash(*abi.ConvertType(out[1], new([32]byte)).(*[32]byte)),
	}, nil
}

// Solidity: function latestInTrack(bytes32 client, uint8 track) view returns(bytes32 release)
func (c *Operations) PackLatestInTrack(client domain.ClientName, track domain.Track) []byte {
	return c.pack("latestInTrack", [32]byte(client), uint8(track))
}

func (c *Operations) UnpackLatestInTrack(data []byte) (common.Hash, error) {
	return c.unpackHash("latestInTrack", data)
}

// Solidity: function isLatest(bytes32 client, bytes32 release) view returns(bool latest)
func (c *Operations) PackIsLatest(client domain.ClientName, release common.Hash) []byte {
	return c.pack("isLatest", [32]byte(client), [32]byte(release))
}

func (c *Operations) UnpackIsLatest(data []byte) (bool, error) {
	out, err := c.abi.Unpack("isLatest", data)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// Solidity: function track(bytes32 client, bytes32 release) view returns(uint8 track)
func (c *Operations) PackTrack(client domain.ClientName, release common.Hash) []byte {
	return c.pack("track", [32]byte(client), [32]byte(release))
}

func (c *Operations) UnpackTrack(data []byte) (domain.Track, error) {
	out, err := c.abi.Unpack("track", data)
	if err != nil {
		return domain.TrackNone, err
	}
	return domain.Track(*abi.ConvertType(out[0], new(uint8)).(*uint8)), nil
}

// Solidity: function latestFork() view returns(uint32 forkNumber)
func (c *Operations) PackLatestFork() []byte {
	return c.pack("latestFork")
}

func (c *Operations) UnpackLatestFork(data []byte) (uint32, error) {
	out, err := c.abi.Unpack("latestFork", data)
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint32)).(*uint32), nil
}

// Solidity: function grandOwner() view returns(address owner)
func (c *Operations) PackGrandOwner() []byte {
	return c.pack("grandOwner")
}

func (c *Operations) UnpackGrandOwner(data []byte) (common.Address, error) {
	out, err := c.abi.Unpack("grandOwner", data)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (c *Operations) unpackHash(method string, data []byte) (common.Hash, error) {
	out, err := c.abi.Unpack(method, data)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)), nil
}
