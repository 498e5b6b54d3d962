package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/dayplan/internal/model"
)

// settingDefaultDueTime is the settings key for the default due time value.
const settingDefaultDueTime = "default_due_time"

// dayKeyFormat is the format of the day_lists primary key. The key is only
// used for row identity; the payload carries the authoritative date.
const dayKeyFormat = "2006-01-02"

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
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

// LoadDayLists reads every stored day snapshot. Rows whose payload fails to
// decode are skipped: a corrupt day behaves as if it was never saved.
func (s *SQLiteStore) LoadDayLists(ctx context.Context) ([]model.DayList, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT payload FROM day_lists ORDER BY day")
	if err != nil {
		return nil, fmt.Errorf("querying day lists: %w", err)
	}
	defer rows.Close()

	var lists []model.DayList
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning day list row: %w", err)
		}
		var list model.DayList
		if err := json.Unmarshal([]byte(payload), &list); err != nil {
			continue
		}
		lists = append(lists, list)
	}

	return lists, rows.Err()
}

// SaveDayLists replaces the stored snapshot with the given day lists in a
// single transaction.
func (s *SQLiteStore) SaveDayLists(ctx context.Context, lists []model.DayList) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM day_lists"); err != nil {
		return fmt.Errorf("clearing day lists: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx,
		"INSERT INTO day_lists (day, payload, updated_at) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, list := range lists {
		payload, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("marshaling day list %s: %w", list.Date.Format(dayKeyFormat), err)
		}
		_, err = stmt.ExecContext(ctx, list.Date.Format(dayKeyFormat), string(payload), now)
		if err != nil {
			return fmt.Errorf("saving day list %s: %w", list.Date.Format(dayKeyFormat), err)
		}
	}

	return tx.Commit()
}

// GetDefaultDueTime returns the stored default due time, or nil when unset
// or unparsable.
func (s *SQLiteStore) GetDefaultDueTime(ctx context.Context) (*model.TimeOfDay, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		"SELECT value FROM settings WHERE key = ?", settingDefaultDueTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading default due time: %w", err)
	}

	t, err := model.ParseTimeOfDay(value)
	if err != nil {
		return nil, nil
	}
	return &t, nil
}

// SetDefaultDueTime stores the default due time.
func (s *SQLiteStore) SetDefaultDueTime(ctx context.Context, t model.TimeOfDay) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)`,
		settingDefaultDueTime, t.String(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving default due time: %w", err)
	}
	return nil
}
