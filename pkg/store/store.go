// Package store removes plugin records from editor state databases.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the pure-Go sqlite driver

	"github.com/vsweep/vsweep/pkg/fs"
	"github.com/vsweep/vsweep/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=store.go -destination=mocks/cleaner.gen.go -package=mocks

// itemTable is the key-value table used by VSCode-family editors in
// their state.vscdb databases.
const itemTable = "ItemTable"

// busyTimeoutMillis bounds how long a statement waits on a locked
// database before failing. A running editor holds its state database
// for much longer than this, so a locked store surfaces quickly.
const busyTimeoutMillis = 1000

// DefaultKeyPatterns returns the SQL LIKE patterns used when the
// caller supplies none.
func DefaultKeyPatterns() []string {
	return []string{"%augment%", "%Augment%"}
}

// CleanResult reports the effect of one Clean call.
type CleanResult struct {
	Path        string
	TableExists bool
	RowsDeleted int64
}

// Cleaner deletes plugin rows from editor state databases.
type Cleaner interface {
	// CountMatches returns how many rows match any of the key
	// patterns. A database without the expected table yields zero.
	CountMatches(ctx context.Context, dbPath string, keyPatterns []string) (int64, error)

	// Clean deletes every row whose key matches any of the patterns.
	// All deletions run in a single transaction; on any failure the
	// database is left exactly as found.
	Clean(ctx context.Context, dbPath string, keyPatterns []string) (CleanResult, error)
}

type realCleaner struct {
	fs     fs.FS
	logger logger.Logger
}

// NewCleanerParams contains parameters for creating a new Cleaner.
type NewCleanerParams struct {
	FS     fs.FS
	Logger logger.Logger
}

// NewCleaner creates a new Cleaner.
func NewCleaner(params NewCleanerParams) Cleaner {
	log := params.Logger
	if log == nil {
		log = logger.NewNoopLogger()
	}

	return &realCleaner{
		fs:     params.FS,
		logger: log,
	}
}

// CountMatches reports the number of rows Clean would delete.
func (c *realCleaner) CountMatches(ctx context.Context, dbPath string, keyPatterns []string) (int64, error) {
	patterns, err := normalizePatterns(keyPatterns)
	if err != nil {
		return 0, err
	}

	db, err := c.openDatabase(ctx, dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	hasTable, err := tableExists(ctx, db, itemTable)
	if err != nil {
		return 0, wrapUnavailable(dbPath, err)
	}
	if !hasTable {
		return 0, nil
	}

	query, args := buildCountQuery(patterns)
	var count int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapUnavailable(dbPath, err)
	}

	return count, nil
}

// Clean deletes matching rows inside one transaction. A missing table
// is not an error: editors create it lazily and an absent table simply
// means there is nothing to delete.
func (c *realCleaner) Clean(ctx context.Context, dbPath string, keyPatterns []string) (CleanResult, error) {
	patterns, err := normalizePatterns(keyPatterns)
	if err != nil {
		return CleanResult{}, err
	}

	db, err := c.openDatabase(ctx, dbPath)
	if err != nil {
		return CleanResult{}, err
	}
	defer db.Close()

	hasTable, err := tableExists(ctx, db, itemTable)
	if err != nil {
		return CleanResult{}, wrapUnavailable(dbPath, err)
	}
	if !hasTable {
		c.logger.Logf("no %s table in %s, nothing to clean", itemTable, dbPath)
		return CleanResult{Path: dbPath, TableExists: false}, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return CleanResult{}, wrapUnavailable(dbPath, err)
	}
	defer func() { _ = tx.Rollback() }()

	var total int64
	for _, pattern := range patterns {
		res, err := tx.ExecContext(ctx, "DELETE FROM "+itemTable+" WHERE key LIKE ?", pattern)
		if err != nil {
			return CleanResult{}, wrapUnavailable(dbPath, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return CleanResult{}, wrapUnavailable(dbPath, err)
		}
		total += affected
	}

	if err := tx.Commit(); err != nil {
		return CleanResult{}, wrapUnavailable(dbPath, err)
	}

	c.logger.Logf("removed %d rows from %s", total, dbPath)

	return CleanResult{
		Path:        dbPath,
		TableExists: true,
		RowsDeleted: total,
	}, nil
}

// openDatabase opens dbPath with a single connection and a bounded
// busy timeout so a locked database fails fast instead of blocking.
func (c *realCleaner) openDatabase(ctx context.Context, dbPath string) (*sql.DB, error) {
	exists, err := c.fs.Exists(dbPath)
	if err != nil {
		return nil, wrapUnavailable(dbPath, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, wrapUnavailable(dbPath, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMillis)); err != nil {
		_ = db.Close()
		return nil, wrapUnavailable(dbPath, err)
	}

	return db, nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	row := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name)

	var found string
	err := row.Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func buildCountQuery(patterns []string) (string, []any) {
	clauses := make([]string, len(patterns))
	args := make([]any, len(patterns))
	for i, pattern := range patterns {
		clauses[i] = "key LIKE ?"
		args[i] = pattern
	}
	return "SELECT COUNT(*) FROM " + itemTable + " WHERE " + strings.Join(clauses, " OR "), args
}

// normalizePatterns trims the given patterns and substitutes the
// defaults for an empty list. A list of only blank patterns is
// rejected rather than silently matching nothing.
func normalizePatterns(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return DefaultKeyPatterns(), nil
	}

	cleaned := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		cleaned = append(cleaned, pattern)
	}
	if len(cleaned) == 0 {
		return nil, ErrNoPatterns
	}

	return cleaned, nil
}

func wrapUnavailable(dbPath string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, dbPath, err)
}
