package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend stores keys in a single two-column table.
type SQLiteBackend struct {
	DB *sql.DB
}

// NewSQLiteBackend opens (or creates) the database at dataSourceName and makes
// sure the kv table exists. ":memory:" is accepted.
func NewSQLiteBackend(dataSourceName string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database '%s': %w", dataSourceName, err)
	}
	// One connection: every ":memory:" connection would otherwise see its own database,
	// and SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach sqlite database '%s': %w", dataSourceName, err)
	}

	s := &SQLiteBackend{DB: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("INFO: SQLite storage ready at %s", dataSourceName)
	return s, nil
}

func (s *SQLiteBackend) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.DB.Exec(query); err != nil {
		log.Printf("ERROR: Error creating kv schema: %v", err)
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

const upsertQuery = `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (s *SQLiteBackend) Get(key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapSQLiteErr("get", key, err)
	}
	return value, true, nil
}

func (s *SQLiteBackend) Set(key, value string) error {
	if _, err := s.DB.Exec(upsertQuery, key, value); err != nil {
		return wrapSQLiteErr("set", key, err)
	}
	return nil
}

// SetMany upserts every key inside one transaction.
func (s *SQLiteBackend) SetMany(values map[string]string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return wrapSQLiteErr("begin", "", err)
	}
	defer tx.Rollback() // No-op after Commit

	stmt, err := tx.Prepare(upsertQuery)
	if err != nil {
		return wrapSQLiteErr("prepare", "", err)
	}
	defer stmt.Close()

	for k, v := range values {
		if _, err := stmt.Exec(k, v); err != nil {
			return wrapSQLiteErr("set", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return wrapSQLiteErr("commit", "", err)
	}
	return nil
}

func (s *SQLiteBackend) Remove(key string) error {
	if _, err := s.DB.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return wrapSQLiteErr("remove", key, err)
	}
	return nil
}

func (s *SQLiteBackend) Close() error {
	return s.DB.Close()
}

func wrapSQLiteErr(op, key string, err error) error {
	if err.Error() == "sql: database is closed" {
		return ErrClosed
	}
	if key == "" {
		return fmt.Errorf("sqlite %s: %w", op, err)
	}
	return fmt.Errorf("sqlite %s '%s': %w", op, key, err)
}
