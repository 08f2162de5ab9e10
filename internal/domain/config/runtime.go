package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	DataDir    string
	StateFile  string // ledger snapshot (JSON)
	EventsFile string // event journal (SQLite)
	ConfigFile string // opsgov.toml or opsgov.yaml, empty when absent

	// Sender every transaction is sent from; zero when none is configured
	Sender     common.Address
	SenderName string // named sender from the config file, if one was used

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Resolved configurations
	File *FileConfig // nil when no config file exists
}

// HasSender reports whether a sender is configured
func (c *RuntimeConfig) HasSender() bool {
	return c.Sender != (common.Address{})
}
