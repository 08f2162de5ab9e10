package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

const genesisTOML = `
[senders.owner]
private_key = "${TEST_GENESIS_OWNER_KEY}"

[senders.stable]
address = "0x00000000000000000000000000000000000000a1"

[genesis.registry]
owner = "owner"

[[genesis.clients]]
name = "parity"
owner = "owner"

[[genesis.clients]]
name = "geth"
owner = "0x00000000000000000000000000000000000000b1"
required = false

[genesis.proxy]
owner = "owner"
client = "parity"
owns_registry = true

[[genesis.proxy.tracks]]
track = "stable"
delegate = "stable"
confirmer = "0x00000000000000000000000000000000000000c1"

[[genesis.proxy.tracks]]
track = "nightly"
delegate = "stable"
`

const genesisYAML = `
senders:
  owner:
    private_key: "${TEST_GENESIS_OWNER_KEY}"
genesis:
  registry:
    owner: owner
  clients:
    - name: parity
      owner: owner
      required: true
  proxy:
    owner: owner
    tracks:
      - track: beta
        delegate: "0x00000000000000000000000000000000000000a1"
`

func TestBuildGenesis(t *testing.T) {
	t.Setenv("TEST_GENESIS_OWNER_KEY", anvilKey0)
	owner := common.HexToAddress(anvilAddress0)
	delegate := common.HexToAddress("0x00000000000000000000000000000000000000a1")

	t.Run("toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "opsgov.toml")
		require.NoError(t, os.WriteFile(path, []byte(genesisTOML), 0644))

		file, err := LoadFileConfig(path)
		require.NoError(t, err)

		genesis, err := BuildGenesis(file)
		require.NoError(t, err)

		assert.Equal(t, owner, genesis.RegistryOwner)
		assert.Equal(t, []models.GenesisClient{
			{Name: domain.MustClientName("parity"), Owner: owner},
			{Name: domain.MustClientName("geth"), Owner: common.HexToAddress("0x00000000000000000000000000000000000000b1"), Optional: true},
		}, genesis.Clients)

		require.NotNil(t, genesis.Proxy)
		assert.Equal(t, owner, genesis.Proxy.Owner)
		assert.Equal(t, domain.MustClientName("parity"), genesis.Proxy.Client)
		assert.True(t, genesis.Proxy.OwnsRegistry)
		assert.Equal(t, []models.TrackAssignment{
			{Track: domain.TrackStable, Delegate: delegate, Confirmer: common.HexToAddress("0x00000000000000000000000000000000000000c1")},
			{Track: domain.TrackNightly, Delegate: delegate},
		}, genesis.Proxy.Tracks)
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "opsgov.yaml")
		require.NoError(t, os.WriteFile(path, []byte(genesisYAML), 0644))

		file, err := LoadFileConfig(path)
		require.NoError(t, err)

		genesis, err := BuildGenesis(file)
		require.NoError(t, err)
		assert.Equal(t, owner, genesis.RegistryOwner)
		require.Len(t, genesis.Clients, 1)
		assert.False(t, genesis.Clients[0].Optional)
		require.NotNil(t, genesis.Proxy)
		assert.True(t, genesis.Proxy.Client.IsZero())
		assert.False(t, genesis.Proxy.OwnsRegistry)
		assert.Equal(t, []models.TrackAssignment{{Track: domain.TrackBeta, Delegate: delegate}}, genesis.Proxy.Tracks)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name        string
			genesis     *config.GenesisConfig
			expectedErr string
		}{
			{
				name:        "missing owner",
				genesis:     &config.GenesisConfig{},
				expectedErr: "genesis.registry.owner is required",
			},
			{
				name: "zero owner",
				genesis: &config.GenesisConfig{
					Registry: config.GenesisRegistryConfig{Owner: "0x0000000000000000000000000000000000000000"},
				},
				expectedErr: "invalid owner",
			},
			{
				name: "duplicate client",
				genesis: &config.GenesisConfig{
					Registry: config.GenesisRegistryConfig{Owner: anvilAddress0},
					Clients: []config.GenesisClientConfig{
						{Name: "parity", Owner: anvilAddress0},
						{Name: "parity", Owner: anvilAddress1},
					},
				},
				expectedErr: "listed twice",
			},
			{
				name: "proxy client not registered",
				genesis: &config.GenesisConfig{
					Registry: config.GenesisRegistryConfig{Owner: anvilAddress0},
					Proxy:    &config.GenesisProxyConfig{Owner: anvilAddress0, Client: "parity"},
				},
				expectedErr: "is not among genesis.clients",
			},
			{
				name: "invalid track",
				genesis: &config.GenesisConfig{
					Registry: config.GenesisRegistryConfig{Owner: anvilAddress0},
					Proxy: &config.GenesisProxyConfig{
						Owner:  anvilAddress0,
						Tracks: []config.GenesisTrackConfig{{Track: "0"}},
					},
				},
				expectedErr: "invalid track",
			},
			{
				name: "unknown delegate",
				genesis: &config.GenesisConfig{
					Registry: config.GenesisRegistryConfig{Owner: anvilAddress0},
					Proxy: &config.GenesisProxyConfig{
						Owner:  anvilAddress0,
						Tracks: []config.GenesisTrackConfig{{Track: "stable", Delegate: "nobody"}},
					},
				},
				expectedErr: "unknown sender",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := BuildGenesis(&config.FileConfig{Genesis: tt.genesis})
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
			})
		}
	})

	t.Run("no genesis", func(t *testing.T) {
		_, err := BuildGenesis(&config.FileConfig{})
		assert.ErrorIs(t, err, ErrNoGenesis)
		_, err = BuildGenesis(nil)
		assert.ErrorIs(t, err, ErrNoGenesis)
	})
}

func TestLoadFileConfig_UnsupportedType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opsgov.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	_, err := LoadFileConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file type")
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, FindConfigFile(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "opsgov.yaml"), []byte(""), 0644))
	assert.Equal(t, filepath.Join(dir, "opsgov.yaml"), FindConfigFile(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "opsgov.toml"), []byte(""), 0644))
	assert.Equal(t, filepath.Join(dir, "opsgov.toml"), FindConfigFile(dir))
}
