// Package walletsql persists wallets in SQLite, one JSON-encoded row per
// user. Still snapshot semantics: every save replaces the full table in a
// single transaction.
package walletsql

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"b3vision/internal/model"
)

// Store satisfies model.WalletStore on top of a SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database with WAL mode and a single-writer
// connection pool, and ensures the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("walletsql: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS wallets (
			user_id TEXT PRIMARY KEY,
			data    TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("walletsql: schema: %w", err)
	}
	slog.Info("wallet database opened", "path", dbPath)
	return &Store{db: db}, nil
}

// LoadAll reads every wallet row.
func (s *Store) LoadAll() (map[string]*model.Wallet, error) {
	rows, err := s.db.Query(`SELECT user_id, data FROM wallets`)
	if err != nil {
		return nil, fmt.Errorf("walletsql: query: %w", err)
	}
	defer rows.Close()

	wallets := make(map[string]*model.Wallet)
	for rows.Next() {
		var userID, data string
		if err := rows.Scan(&userID, &data); err != nil {
			return nil, fmt.Errorf("walletsql: scan: %w", err)
		}
		var w model.Wallet
		if err := json.Unmarshal([]byte(data), &w); err != nil {
			return nil, fmt.Errorf("walletsql: decode wallet %s: %w", userID, err)
		}
		wallets[userID] = &w
	}
	return wallets, rows.Err()
}

// SaveAll replaces the full table in one transaction.
func (s *Store) SaveAll(wallets map[string]*model.Wallet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("walletsql: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM wallets`); err != nil {
		return fmt.Errorf("walletsql: clear: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO wallets (user_id, data) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("walletsql: prepare: %w", err)
	}
	defer stmt.Close()

	for userID, w := range wallets {
		data, err := json.Marshal(w)
		if err != nil {
			return fmt.Errorf("walletsql: encode wallet %s: %w", userID, err)
		}
		if _, err := stmt.Exec(userID, string(data)); err != nil {
			return fmt.Errorf("walletsql: insert %s: %w", userID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("walletsql: commit: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
