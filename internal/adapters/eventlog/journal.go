// Package eventlog keeps the events of committed transactions in a SQLite journal.
package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/opsgov/internal/adapters/eventlog/migrations"
	"github.com/trebuchet-org/opsgov/internal/domain"
	"github.com/trebuchet-org/opsgov/internal/domain/config"
	"github.com/trebuchet-org/opsgov/internal/domain/models"
	"github.com/trebuchet-org/opsgov/internal/usecase"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// JournalAdapter stores journaled events in SQLite
type JournalAdapter struct {
	sqlDB *sql.DB
	log   *slog.Logger
}

// NewJournalAdapter opens the journal at the configured events file
func NewJournalAdapter(cfg *config.RuntimeConfig, log *slog.Logger) (*JournalAdapter, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.EventsFile), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	j, err := Open(cfg.EventsFile)
	if err != nil {
		return nil, nil, err
	}
	j.log = log.With("component", "EventJournal")
	cleanup := func() {
		if err := j.Close(); err != nil {
			j.log.Warn("Failed to close event journal", "error", err)
		}
	}
	return j, cleanup, nil
}

const connectionPragmas = "_pragma=foreign_keys(1)" +
	"&_pragma=journal_mode(WAL)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=synchronous(NORMAL)"

// Open opens a SQLite journal at path and applies migrations
func Open(path string) (*JournalAdapter, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	// The driver runs each _pragma on every new connection of the pool
	dsn := filepath.Clean(path) + "?" + connectionPragmas
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &JournalAdapter{sqlDB: sqlDB, log: slog.New(slog.DiscardHandler)}, nil
}

// Close closes the underlying database
func (j *JournalAdapter) Close() error {
	if j == nil || j.sqlDB == nil {
		return nil
	}
	return j.sqlDB.Close()
}

// Append records the logs of every successful receipt in one transaction
func (j *JournalAdapter) Append(ctx context.Context, receipts ...*models.Receipt) error {
	tx, err := j.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO events (block_number, tx_hash, log_index, address, name, args)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare journal insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, receipt := range receipts {
		if receipt == nil || !receipt.Succeeded() {
			continue
		}
		for _, entry := range receipt.Logs {
			args, err := json.Marshal(entry.Event)
			if err != nil {
				return fmt.Errorf("encode %s args: %w", entry.Name, err)
			}
			if _, err := stmt.ExecContext(ctx,
				int64(entry.BlockNumber),
				entry.TxHash.Hex(),
				int64(entry.Index),
				addressKey(entry.Address),
				entry.Name,
				string(args),
			); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: event %s#%d", domain.ErrAlreadyExists, entry.TxHash.Hex(), entry.Index)
				}
				return fmt.Errorf("insert event: %w", err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal transaction: %w", err)
	}
	j.log.Debug("Journaled events", "count", count)
	return nil
}

// List returns the journaled events matching filter, oldest first
func (j *JournalAdapter) List(ctx context.Context, filter domain.EventFilter) ([]*models.Log, error) {
	var (
		where []string
		args  []any
	)
	if filter.Address != (common.Address{}) {
		where = append(where, "address = ?")
		args = append(args, addressKey(filter.Address))
	}
	if len(filter.Names) > 0 {
		where = append(where, "name IN ("+strings.TrimSuffix(strings.Repeat("?,", len(filter.Names)), ",")+")")
		for _, name := range filter.Names {
			args = append(args, name)
		}
	}
	if filter.FromBlock > 0 {
		where = append(where, "block_number >= ?")
		args = append(args, int64(filter.FromBlock))
	}
	if filter.ToBlock > 0 {
		where = append(where, "block_number <= ?")
		args = append(args, int64(filter.ToBlock))
	}

	query := "SELECT block_number, tx_hash, log_index, address, name, args FROM events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := j.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var logs []*models.Log
	for rows.Next() {
		var (
			block, index       int64
			txHash, addr, name string
			encoded            string
		)
		if err := rows.Scan(&block, &txHash, &index, &addr, &name, &encoded); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		event, err := domain.NewEvent(name)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(encoded), event); err != nil {
			return nil, fmt.Errorf("decode %s args: %w", name, err)
		}
		logs = append(logs, &models.Log{
			Address:     common.HexToAddress(addr),
			BlockNumber: uint64(block),
			TxHash:      common.HexToHash(txHash),
			Index:       uint(index),
			Name:        name,
			Event:       event,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	// Newest were selected first so the limit keeps the most recent
	for i, k := 0, len(logs)-1; i < k; i, k = i+1, k-1 {
		logs[i], logs[k] = logs[k], logs[i]
	}
	return logs, nil
}

// Reset removes every journaled event
func (j *JournalAdapter) Reset(ctx context.Context) error {
	if _, err := j.sqlDB.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return fmt.Errorf("reset events: %w", err)
	}
	return nil
}

func addressKey(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY
}

var _ usecase.EventJournal = (*JournalAdapter)(nil)
