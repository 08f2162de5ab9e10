package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
)

// LedgerStore handles persistence of the ledger snapshot
type LedgerStore interface {
	// Load returns the saved state, or domain.ErrNotFound if none was saved yet
	Load(ctx context.Context) (*models.LedgerState, error)
	Save(ctx context.Context, state *models.LedgerState) error
	Exists(ctx context.Context) (bool, error)
	// Lock takes the exclusive write lock shared by every process using the same store.
	// It blocks until the lock is held or ctx is done.
	Lock(ctx context.Context) (unlock func(), err error)
}

// LedgerFactory opens ledgers on top of a snapshot
type LedgerFactory interface {
	// New returns an empty ledger
	New() Ledger
	// Open rebuilds the ledger recorded in state
	Open(state *models.LedgerState) (Ledger, error)
}

// Ledger executes transactions and reads against the registry and proxy contracts
type Ledger interface {
	// Send executes data against to as one transaction from from. A reverted transaction
	// returns its failed receipt together with the error.
	Send(ctx context.Context, from, to common.Address, data []byte) (*models.Receipt, error)
	// Call executes data read-only and returns the encoded result
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	// Pending lists the requests waiting on the proxy at proxy
	Pending(ctx context.Context, proxy common.Address, track domain.Track) ([]models.PendingRequest, error)

	DeployRegistry(owner common.Address) common.Address
	DeployProxy(owner, operations common.Address, tracks []models.TrackAssignment) common.Address

	Deployment() models.Deployment
	Export() (*models.LedgerState, error)
}

// EventJournal keeps the events of committed transactions
type EventJournal interface {
	Append(ctx context.Context, receipts ...*models.Receipt) error
	List(ctx context.Context, filter domain.EventFilter) ([]*models.Log, error)
	Reset(ctx context.Context) error
}

// RequestSelector lets an operator pick one of several waiting requests
type RequestSelector interface {
	SelectRequest(ctx context.Context, prompt string, requests []*RequestView) (*RequestView, error)
	// Confirm asks a yes/no question
	Confirm(label string) bool
}

// ProgressEvent describes a step of a long-running operation
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	// Done ends the progress display
	Done()
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Done()                                     {}
