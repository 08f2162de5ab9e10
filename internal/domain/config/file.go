package config

// FileConfig represents the opsgov.toml (or opsgov.yaml) configuration file
type FileConfig struct {
	Senders map[string]SenderConfig `toml:"senders" yaml:"senders"`
	Genesis *GenesisConfig          `toml:"genesis,omitempty" yaml:"genesis,omitempty"`
}

// GenesisConfig is the [genesis] section. Every account field takes either a sender name
// or a hex address.
type GenesisConfig struct {
	Registry GenesisRegistryConfig `toml:"registry" yaml:"registry"`
	Clients  []GenesisClientConfig `toml:"clients" yaml:"clients"`
	Proxy    *GenesisProxyConfig   `toml:"proxy,omitempty" yaml:"proxy,omitempty"`
}

// GenesisRegistryConfig is the [genesis.registry] section
type GenesisRegistryConfig struct {
	Owner string `toml:"owner" yaml:"owner"`
}

// GenesisClientConfig is one [[genesis.clients]] entry
type GenesisClientConfig struct {
	Name  string `toml:"name" yaml:"name"`
	Owner string `toml:"owner" yaml:"owner"`
	// Required defaults to true
	Required *bool `toml:"required,omitempty" yaml:"required,omitempty"`
}

// GenesisProxyConfig is the [genesis.proxy] section
type GenesisProxyConfig struct {
	Owner        string               `toml:"owner" yaml:"owner"`
	Client       string               `toml:"client,omitempty" yaml:"client,omitempty"`
	OwnsRegistry bool                 `toml:"owns_registry,omitempty" yaml:"owns_registry,omitempty"`
	Tracks       []GenesisTrackConfig `toml:"tracks" yaml:"tracks"`
}

// GenesisTrackConfig is one [[genesis.proxy.tracks]] entry
type GenesisTrackConfig struct {
	Track     string `toml:"track" yaml:"track"`
	Delegate  string `toml:"delegate,omitempty" yaml:"delegate,omitempty"`
	Confirmer string `toml:"confirmer,omitempty" yaml:"confirmer,omitempty"`
}
