package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mnogodumalon/habits/internal/model"
)

// Collection names used for sync bookkeeping.
const (
	CollectionHabits    = "habits"
	CollectionHabitLogs = "habit_logs"
)

// SQLiteStore keeps a local snapshot of the last successfully loaded
// habit and habit log collections.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReplaceHabits swaps the cached habit collection for habits.
func (s *SQLiteStore) ReplaceHabits(ctx context.Context, habits []model.Habit) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM habits"); err != nil {
		return fmt.Errorf("clearing cached habits: %w", err)
	}

	const query = `
		INSERT OR REPLACE INTO habits (
			id, name, description, frequency,
			target_count, color, icon, created_at
		) VALUES (
			:id, :name, :description, :frequency,
			:target_count, :color, :icon, :created_at
		)`

	for _, h := range habits {
		if _, err := tx.NamedExecContext(ctx, query, h); err != nil {
			return fmt.Errorf("caching habit %s: %w", h.ID, err)
		}
	}

	if err := markSynced(ctx, tx, CollectionHabits); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceHabitLogs swaps the cached habit log collection for logs.
func (s *SQLiteStore) ReplaceHabitLogs(ctx context.Context, logs []model.HabitLog) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM habit_logs"); err != nil {
		return fmt.Errorf("clearing cached habit logs: %w", err)
	}

	const query = `
		INSERT OR REPLACE INTO habit_logs (id, habit_id, date, completed, notes)
		VALUES (?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, l := range logs {
		_, err := stmt.ExecContext(ctx,
			l.ID, l.HabitID, string(l.Date), boolToInt(l.Completed), l.Notes,
		)
		if err != nil {
			return fmt.Errorf("caching habit log %s: %w", l.ID, err)
		}
	}

	if err := markSynced(ctx, tx, CollectionHabitLogs); err != nil {
		return err
	}

	return tx.Commit()
}

// CachedHabits returns the cached habits ordered by id.
func (s *SQLiteStore) CachedHabits(ctx context.Context) ([]model.Habit, error) {
	habits := []model.Habit{}
	err := s.db.SelectContext(ctx, &habits, "SELECT * FROM habits ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying cached habits: %w", err)
	}
	return habits, nil
}

// CachedHabitLogs returns the cached habit logs ordered by id.
func (s *SQLiteStore) CachedHabitLogs(ctx context.Context) ([]model.HabitLog, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, habit_id, date, completed, notes FROM habit_logs ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("querying cached habit logs: %w", err)
	}
	defer rows.Close()

	logs := []model.HabitLog{}
	for rows.Next() {
		l, err := scanHabitLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

// SyncedAt reports when a collection was last written to the cache. The
// boolean is false if it never was.
func (s *SQLiteStore) SyncedAt(ctx context.Context, collection string) (time.Time, bool, error) {
	var unix int64
	err := s.db.GetContext(ctx, &unix,
		"SELECT synced_at FROM sync_state WHERE collection = ?", collection,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading sync state for %s: %w", collection, err)
	}
	return time.Unix(unix, 0), true, nil
}

func markSynced(ctx context.Context, tx *sqlx.Tx, collection string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO sync_state (collection, synced_at) VALUES (?, ?)",
		collection, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording sync of %s: %w", collection, err)
	}
	return nil
}

// scanHabitLog scans a habit log row from a sqlx.Rows result set.
func scanHabitLog(rows *sqlx.Rows) (model.HabitLog, error) {
	var (
		l         model.HabitLog
		date      string
		completed int
	)

	if err := rows.Scan(&l.ID, &l.HabitID, &date, &completed, &l.Notes); err != nil {
		return model.HabitLog{}, fmt.Errorf("scanning habit log row: %w", err)
	}

	l.Date = model.Day(date)
	l.Completed = completed != 0

	return l, nil
}

// boolToInt converts a boolean to an integer (1 for true, 0 for false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
