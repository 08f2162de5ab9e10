package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
	"github.com/trebuchet-org/opsgov/internal/usecase"
)

const lockRetryDelay = 10 * time.Millisecond

// LedgerStoreAdapter implements LedgerStore using a JSON file
type LedgerStoreAdapter struct {
	statePath string
}

// NewLedgerStoreAdapter creates a new LedgerStoreAdapter
func NewLedgerStoreAdapter(cfg *config.RuntimeConfig) *LedgerStoreAdapter {
	return &LedgerStoreAdapter{
		statePath: cfg.StateFile,
	}
}

// Load reads the ledger state from disk. Returns domain.ErrNotFound if the file does not exist.
func (s *LedgerStoreAdapter) Load(_ context.Context) (*models.LedgerState, error) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("ledger state %s: %w", s.statePath, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read ledger state file: %w", err)
	}

	var state models.LedgerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse ledger state file: %w", err)
	}

	return &state, nil
}

// Save writes the ledger state to disk, creating the directory if needed. The file is
// replaced atomically so a crash never leaves a partial snapshot.
func (s *LedgerStoreAdapter) Save(_ context.Context, state *models.LedgerState) error {
	dir := filepath.Dir(s.statePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create ledger state directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary ledger state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write ledger state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write ledger state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.statePath); err != nil {
		return fmt.Errorf("failed to replace ledger state file: %w", err)
	}

	return nil
}

// Exists reports whether a ledger state has been saved
func (s *LedgerStoreAdapter) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(s.statePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat ledger state file: %w", err)
}

// Lock takes an exclusive flock on the state file's sibling .lock file. The lock file
// outlives the state file's atomic renames, so every writer contends on the same inode.
func (s *LedgerStoreAdapter) Lock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.statePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger state directory: %w", err)
	}

	fl := flock.New(s.lockPath())
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s: %w", s.lockPath(), err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire %s: %w", s.lockPath(), ctx.Err())
	}
	return func() { _ = fl.Unlock() }, nil
}

func (s *LedgerStoreAdapter) lockPath() string {
	return s.statePath + ".lock"
}

// Ensure LedgerStoreAdapter implements LedgerStore
var _ usecase.LedgerStore = (*LedgerStoreAdapter)(nil)
