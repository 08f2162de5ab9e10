package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/opsgov/internal/adapters/blockchain"
	"github.com/trebuchet-org/opsgov/internal/adapters/eventlog"
	"github.com/trebuchet-org/opsgov/internal/adapters/fs"
	"github.com/trebuchet-org/opsgov/internal/adapters/interactive"
	"github.com/trebuchet-org/opsgov/internal/adapters/progress"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLedgerStoreAdapter,
	wire.Bind(new(usecase.LedgerStore), new(*fs.LedgerStoreAdapter)),
)

// EventLogSet provides the SQLite event journal
var EventLogSet = wire.NewSet(
	eventlog.NewJournalAdapter,
	wire.Bind(new(usecase.EventJournal), new(*eventlog.JournalAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.RequestSelector), new(*interactive.SelectorAdapter)),
	progress.NewProgressSink,
)

// BlockchainSet provides the in-process ledger
var BlockchainSet = wire.NewSet(
	blockchain.NewLedgerFactoryAdapter,
	wire.Bind(new(usecase.LedgerFactory), new(*blockchain.LedgerFactoryAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	EventLogSet,
	InteractiveSet,
	BlockchainSet,
)
