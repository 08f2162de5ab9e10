package config

// SenderConfig is a named account in the [senders.<name>] section of the config file.
// Exactly one of PrivateKey or Address is set; both support ${VAR} expansion.
type SenderConfig struct {
	PrivateKey string `toml:"private_key,omitempty" yaml:"private_key,omitempty"`
	Address    string `toml:"address,omitempty" yaml:"address,omitempty"`
}
