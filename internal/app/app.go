package app

import (
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector usecase.RequestSelector

	// Use cases
	InitLedger        *usecase.InitLedger
	ManageClients     *usecase.ManageClients
	ProposeRelease    *usecase.ProposeRelease
	ProposeChecksum   *usecase.ProposeChecksum
	ListRequests      *usecase.ListRequests
	ResolveRequest    *usecase.ResolveRequest
	ConfigureTracks   *usecase.ConfigureTracks
	TransferOwnership *usecase.TransferOwnership
	RatifyFork        *usecase.RatifyFork
	RelayCall         *usecase.RelayCall
	QueryRegistry     *usecase.QueryRegistry
	ListEvents        *usecase.ListEvents
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.RequestSelector,
	initLedger *usecase.InitLedger,
	manageClients *usecase.ManageClients,
	proposeRelease *usecase.ProposeRelease,
	proposeChecksum *usecase.ProposeChecksum,
	listRequests *usecase.ListRequests,
	resolveRequest *usecase.ResolveRequest,
	configureTracks *usecase.ConfigureTracks,
	transferOwnership *usecase.TransferOwnership,
	ratifyFork *usecase.RatifyFork,
	relayCall *usecase.RelayCall,
	queryRegistry *usecase.QueryRegistry,
	listEvents *usecase.ListEvents,
) *App {
	return &App{
		Config:            cfg,
		Selector:          selector,
		InitLedger:        initLedger,
		ManageClients:     manageClients,
		ProposeRelease:    proposeRelease,
		ProposeChecksum:   proposeChecksum,
		ListRequests:      listRequests,
		ResolveRequest:    resolveRequest,
		ConfigureTracks:   configureTracks,
		TransferOwnership: transferOwnership,
		RatifyFork:        ratifyFork,
		RelayCall:         relayCall,
		QueryRegistry:     queryRegistry,
		ListEvents:        listEvents,
	}
}
